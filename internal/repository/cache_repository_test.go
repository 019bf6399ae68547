package repository_test

import (
	"context"
	"testing"
	"time"

	"jokes-web-server/internal/model"
	"jokes-web-server/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1. Шутка читается из кэша такой же, какой была записана
func TestCache_SetAndGetJoke(t *testing.T) {
	repo := repository.NewCacheRepository(newTestRedis(t), 5*time.Minute)
	ctx := context.Background()

	joke := &model.Joke{UUID: "j1", Name: "name", Content: "content", JokesterUUID: "u1"}
	require.NoError(t, repo.SetJoke(ctx, joke))

	cached, err := repo.GetJoke(ctx, "j1")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, joke.Name, cached.Name)
	assert.Equal(t, joke.Content, cached.Content)
	assert.Equal(t, joke.JokesterUUID, cached.JokesterUUID)
}

// 2. Промах кэша возвращает nil без ошибки
func TestCache_GetMissingJoke(t *testing.T) {
	repo := repository.NewCacheRepository(newTestRedis(t), 5*time.Minute)

	cached, err := repo.GetJoke(context.Background(), "ghost")

	require.NoError(t, err)
	assert.Nil(t, cached)
}

// 3. Удалённая шутка исчезает из кэша
func TestCache_DeleteJoke(t *testing.T) {
	repo := repository.NewCacheRepository(newTestRedis(t), 5*time.Minute)
	ctx := context.Background()

	joke := &model.Joke{UUID: "j1", Name: "name", Content: "content"}
	require.NoError(t, repo.SetJoke(ctx, joke))
	require.NoError(t, repo.DeleteJoke(ctx, "j1"))

	cached, err := repo.GetJoke(ctx, "j1")
	require.NoError(t, err)
	assert.Nil(t, cached)
}
