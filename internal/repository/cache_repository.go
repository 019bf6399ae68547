package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jokes-web-server/config"
	"jokes-web-server/internal/model"
	"jokes-web-server/internal/util"

	"github.com/redis/go-redis/v9"
)

type CacheRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{rdb, ttl}
}

func (r *CacheRepository) SetJoke(ctx context.Context, joke *model.Joke) error {
	data, err := json.Marshal(joke)
	if err != nil {
		return util.LogError("ошибка сериализации шутки", err)
	}

	cmd := r.client.Client.Set(ctx, r.key(joke.UUID), data, r.ttl)
	if err = cmd.Err(); err != nil {
		return util.LogError("ошибка сохранения в Redis", err)
	}
	if cmd.Val() != "OK" {
		return fmt.Errorf("неожиданный ответ Redis: %s", cmd.Val())
	}

	return nil
}

func (r *CacheRepository) GetJoke(ctx context.Context, uuid string) (*model.Joke, error) {
	val, err := r.client.Client.Get(ctx, r.key(uuid)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // нет в кэше
	} else if err != nil {
		return nil, util.LogError("ошибка получения шутки из Redis", err)
	}

	var joke model.Joke
	if err := json.Unmarshal([]byte(val), &joke); err != nil {
		return nil, util.LogError("ошибка десериализации шутки из кэша", err)
	}
	return &joke, nil
}

func (r *CacheRepository) DeleteJoke(ctx context.Context, uuid string) error {
	if err := r.client.Client.Del(ctx, r.key(uuid)).Err(); err != nil {
		return util.LogError("ошибка удаления шутки из Redis", err)
	}
	return nil
}

func (r *CacheRepository) key(uuid string) string {
	return fmt.Sprintf("joke:%s", uuid)
}
