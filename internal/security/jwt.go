package security

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"jokes-web-server/config"
	"jokes-web-server/internal/util"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	UserContextKey contextKey = "user"
)

// JWTService выпускает и проверяет обе разновидности токенов.
// Секреты подписи независимы: утечка access-секрета не даёт подделать
// долгоживущий refresh токен, и наоборот.
type JWTService struct {
	issuer        string
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewJWTService(cfg *config.JWTConfig) (*JWTService, error) {
	if cfg.AccessSecret == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET не задан")
	}
	if cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("REFRESH_TOKEN_SECRET не задан")
	}

	accessTTL, err := time.ParseDuration(cfg.AccessTokenTTL)
	if err != nil {
		return nil, util.LogError("ошибка парсинга access_token_ttl", err)
	}

	refreshTTL, err := time.ParseDuration(cfg.RefreshTokenTTL)
	if err != nil {
		return nil, util.LogError("ошибка парсинга refresh_token_ttl", err)
	}

	return &JWTService{
		issuer:        cfg.Issuer,
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// GenerateAccessToken выпускает access токен на 30 минут.
// Состояние на сервере не хранится: валидность определяется подписью и exp.
func (service *JWTService) GenerateAccessToken(userUUID string) (string, error) {
	return service.sign(userUUID, service.accessSecret, service.accessTTL)
}

// GenerateRefreshToken выпускает refresh токен на 1 год.
// Подпись тоже stateless, но приём токена дополнительно ограничен чёрным списком.
func (service *JWTService) GenerateRefreshToken(userUUID string) (string, error) {
	return service.sign(userUUID, service.refreshSecret, service.refreshTTL)
}

func (service *JWTService) sign(userUUID string, secret []byte, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userUUID,
		Issuer:    service.issuer,
		Audience:  jwt.ClaimStrings{userUUID},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := jwtToken.SignedString(secret)
	if err != nil {
		return "", util.LogError("ошибка подписи токена", err)
	}

	return signed, nil
}

func (service *JWTService) ValidateAccessToken(jwtTokenStr string) (*jwt.RegisteredClaims, error) {
	return validate(jwtTokenStr, service.accessSecret)
}

func (service *JWTService) ValidateRefreshToken(jwtTokenStr string) (*jwt.RegisteredClaims, error) {
	return validate(jwtTokenStr, service.refreshSecret)
}

func validate(jwtTokenStr string, secretKey []byte) (*jwt.RegisteredClaims, error) {
	var claims = &jwt.RegisteredClaims{}

	jwtToken, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return secretKey, nil
	})

	if err != nil || !jwtToken.Valid {
		return nil, util.LogError("невалидный токен", err)
	}

	return claims, nil
}

// JWTMiddleware защищает маршруты API: без валидного access токена запрос не проходит.
// Клиент, получивший 401, должен пройти через flow обновления токена.
func JWTMiddleware(jwtService *JWTService) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authorizationHeader := request.Header.Get("Authorization")
			if !strings.HasPrefix(authorizationHeader, "Bearer ") {
				http.Error(writer, "unauthorized", http.StatusUnauthorized)
				return
			}

			token := strings.TrimPrefix(authorizationHeader, "Bearer ")

			claims, err := jwtService.ValidateAccessToken(token)
			if err != nil {
				log.Printf("невалидный access токен: %v", err)
				http.Error(writer, "unauthorized", http.StatusUnauthorized)
				return
			}

			req := request.WithContext(context.WithValue(request.Context(), UserContextKey, claims))
			next.ServeHTTP(writer, req)
		})
	}
}

func GetClaimsFromContext(ctx context.Context) (*jwt.RegisteredClaims, error) {
	claims, ok := ctx.Value(UserContextKey).(*jwt.RegisteredClaims)
	if !ok || claims == nil {
		return nil, fmt.Errorf("пользователь не авторизован")
	}
	return claims, nil
}
