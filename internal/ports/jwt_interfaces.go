package ports

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type JWTServiceInterface interface {
	GenerateAccessToken(userUUID string) (string, error)
	GenerateRefreshToken(userUUID string) (string, error)
	ValidateAccessToken(tokenString string) (*jwt.RegisteredClaims, error)
	ValidateRefreshToken(tokenString string) (*jwt.RegisteredClaims, error)
}

// BlacklistRepository : реестр отозванных refresh токенов, одна запись на пользователя
type BlacklistRepository interface {
	Blacklist(ctx context.Context, userUUID string, refreshToken string, ttl time.Duration) error
	Get(ctx context.Context, userUUID string) (string, error)
	Clear(ctx context.Context, userUUID string) error
}
