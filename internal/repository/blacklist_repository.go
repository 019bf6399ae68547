package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jokes-web-server/config"
	"jokes-web-server/internal/util"

	"github.com/redis/go-redis/v9"
)

// BlacklistRepository хранит реестр отозванных refresh токенов в Redis.
// Одна запись на пользователя: значением лежит последний разлогиненный токен,
// TTL записи равен времени жизни refresh токена, так что реестр не растёт бесконечно.
type BlacklistRepository struct {
	client *config.RedisClient
}

func NewBlacklistRepository(rdb *config.RedisClient) *BlacklistRepository {
	return &BlacklistRepository{rdb}
}

// Blacklist : блокирует refresh токен пользователя. Прежняя запись перезаписывается.
func (r *BlacklistRepository) Blacklist(ctx context.Context, userUUID string, refreshToken string, ttl time.Duration) error {
	cmd := r.client.Client.Set(ctx, r.key(userUUID), refreshToken, ttl)
	if err := cmd.Err(); err != nil {
		return util.LogError("ошибка записи в чёрный список Redis", err)
	}
	if cmd.Val() != "OK" {
		return fmt.Errorf("неожиданный ответ Redis: %s", cmd.Val())
	}

	return nil
}

// Get : возвращает заблокированный токен пользователя либо пустую строку, если записи нет
func (r *BlacklistRepository) Get(ctx context.Context, userUUID string) (string, error) {
	val, err := r.client.Client.Get(ctx, r.key(userUUID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil // записи нет, токен не заблокирован
	} else if err != nil {
		return "", util.LogError("ошибка чтения чёрного списка из Redis", err)
	}

	return val, nil
}

// Clear : снимает блокировку с пользователя. Вызывается при успешном логине.
func (r *BlacklistRepository) Clear(ctx context.Context, userUUID string) error {
	if err := r.client.Client.Del(ctx, r.key(userUUID)).Err(); err != nil {
		return util.LogError("ошибка удаления записи чёрного списка из Redis", err)
	}
	return nil
}

func (r *BlacklistRepository) key(userUUID string) string {
	return fmt.Sprintf("blacklist:%s", userUUID)
}
