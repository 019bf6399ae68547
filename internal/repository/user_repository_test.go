package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"jokes-web-server/config"
	"jokes-web-server/internal/apperror"
	"jokes-web-server/internal/model"
	"jokes-web-server/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDatabase(t *testing.T) (*config.Database, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &config.Database{DB: sqlx.NewDb(db, "sqlmock")}, mock
}

// 1. Успешное создание пользователя
func TestUserRepository_CreateUser(t *testing.T) {
	database, mock := newTestDatabase(t)
	repo := repository.NewUserRepository(database)
	ctx := context.Background()

	createdAt := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("u1", "alice", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"uuid", "username", "created_at"}).
			AddRow("u1", "alice", createdAt))

	user, err := repo.CreateUser(ctx, &model.User{UUID: "u1", Username: "alice", PasswordHash: "hash"})

	require.NoError(t, err)
	assert.Equal(t, "u1", user.UUID)
	assert.Equal(t, "alice", user.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 2. Поиск по username
func TestUserRepository_FindByUsername(t *testing.T) {
	database, mock := newTestDatabase(t)
	repo := repository.NewUserRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT uuid, username, password_hash, created_at FROM users WHERE username = $1")).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"uuid", "username", "password_hash", "created_at"}).
			AddRow("u1", "alice", "hash", time.Now()))

	user, err := repo.FindByUsername(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, "u1", user.UUID)
	assert.Equal(t, "hash", user.PasswordHash)
}

// 3. Отсутствующий пользователь: ErrNotFound
func TestUserRepository_FindByUsername_NotFound(t *testing.T) {
	database, mock := newTestDatabase(t)
	repo := repository.NewUserRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT uuid, username, password_hash, created_at FROM users WHERE username = $1")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"uuid", "username", "password_hash", "created_at"}))

	_, err := repo.FindByUsername(context.Background(), "ghost")

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

// 4. Поиск по UUID: ErrNotFound для несуществующего
func TestUserRepository_FindByUUID_NotFound(t *testing.T) {
	database, mock := newTestDatabase(t)
	repo := repository.NewUserRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT uuid, username, password_hash, created_at FROM users WHERE uuid = $1")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"uuid", "username", "password_hash", "created_at"}))

	_, err := repo.FindByUUID(context.Background(), "ghost")

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

// 5. Проверка занятости username
func TestUserRepository_UsernameExists(t *testing.T) {
	database, mock := newTestDatabase(t)
	repo := repository.NewUserRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)")).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.UsernameExists(context.Background(), "alice")

	require.NoError(t, err)
	assert.True(t, exists)
}

// 6. Ошибка БД пробрасывается
func TestUserRepository_CreateUser_DBError(t *testing.T) {
	database, mock := newTestDatabase(t)
	repo := repository.NewUserRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("u1", "alice", "hash").
		WillReturnError(errors.New("db down"))

	_, err := repo.CreateUser(context.Background(), &model.User{UUID: "u1", Username: "alice", PasswordHash: "hash"})

	assert.Error(t, err)
}
