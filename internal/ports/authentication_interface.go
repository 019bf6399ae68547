package ports

import (
	"context"

	"jokes-web-server/internal/model"
)

type AuthenticationService interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.TokensPair, error)
	Refresh(ctx context.Context, refreshToken string) (*model.TokensPair, error)
	Logout(ctx context.Context, refreshToken string) error
	GetUser(ctx context.Context, userUUID string) (*model.User, error)
}
