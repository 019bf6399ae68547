package ports

import (
	"context"

	"jokes-web-server/internal/model"
)

type JokeRepository interface {
	Create(ctx context.Context, joke *model.Joke) (*model.Joke, error)
	GetByUUID(ctx context.Context, uuid string) (*model.Joke, error)
	List(ctx context.Context, limit int) ([]*model.Joke, error)
	ListByJokester(ctx context.Context, jokesterUUID string, limit int) ([]*model.Joke, error)
	GetRandom(ctx context.Context) (*model.Joke, error)
	Delete(ctx context.Context, uuid string) error
}

type JokeService interface {
	CreateJoke(ctx context.Context, name, content string) (*model.Joke, error)
	GetJoke(ctx context.Context, uuid string) (*model.Joke, error)
	ListJokes(ctx context.Context) ([]*model.Joke, error)
	ListMyJokes(ctx context.Context) ([]*model.Joke, error)
	GetRandomJoke(ctx context.Context) (*model.Joke, error)
	DeleteJoke(ctx context.Context, uuid string) error
}
