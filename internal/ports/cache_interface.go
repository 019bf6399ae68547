package ports

import (
	"context"

	"jokes-web-server/internal/model"
)

// CacheRepository : Redis слой для кэширования шуток
type CacheRepository interface {
	SetJoke(ctx context.Context, joke *model.Joke) error
	GetJoke(ctx context.Context, uuid string) (*model.Joke, error)
	DeleteJoke(ctx context.Context, uuid string) error
}
