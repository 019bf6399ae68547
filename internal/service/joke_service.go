package service

import (
	"context"
	"fmt"
	"log"

	"jokes-web-server/internal/apperror"
	"jokes-web-server/internal/model"
	"jokes-web-server/internal/ports"
	"jokes-web-server/internal/security"
	"jokes-web-server/internal/util"

	"github.com/google/uuid"
)

const jokeListLimit = 50

type JokeService struct {
	jokeRepository  ports.JokeRepository
	cacheRepository ports.CacheRepository
}

func NewJokeService(jokeRepository ports.JokeRepository, cacheRepository ports.CacheRepository) *JokeService {
	return &JokeService{
		jokeRepository:  jokeRepository,
		cacheRepository: cacheRepository,
	}
}

// CreateJoke : создаёт шутку от имени авторизованного пользователя
func (s *JokeService) CreateJoke(ctx context.Context, name, content string) (*model.Joke, error) {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("[JokeService] %w: %w", apperror.ErrAuthentication, err)
	}

	if name == "" || content == "" {
		return nil, fmt.Errorf("[JokeService] name и content обязательны: %w", apperror.ErrValidation)
	}

	joke, err := s.jokeRepository.Create(ctx, &model.Joke{
		UUID:         uuid.New().String(),
		Name:         name,
		Content:      content,
		JokesterUUID: claims.Subject,
	})
	if err != nil {
		return nil, util.LogError("[JokeService] не удалось сохранить шутку в БД", err)
	}

	if err := s.cacheRepository.SetJoke(ctx, joke); err != nil {
		log.Printf("[JokeService] ошибка кэширования шутки: %v", err)
	}

	return joke, nil
}

// GetJoke : возвращает шутку, сначала из кэша, затем из БД
func (s *JokeService) GetJoke(ctx context.Context, jokeUUID string) (*model.Joke, error) {
	joke, err := s.cacheRepository.GetJoke(ctx, jokeUUID)
	if err != nil {
		log.Printf("[JokeService] ошибка кэширования: %v", err)
	}
	if joke != nil {
		return joke, nil
	}

	joke, err = s.jokeRepository.GetByUUID(ctx, jokeUUID)
	if err != nil {
		return nil, fmt.Errorf("[JokeService] шутка не найдена: %w", err)
	}

	if err := s.cacheRepository.SetJoke(ctx, joke); err != nil {
		log.Printf("[JokeService] ошибка кэширования шутки: %v", err)
	}

	return joke, nil
}

// ListJokes : публичный список последних шуток
func (s *JokeService) ListJokes(ctx context.Context) ([]*model.Joke, error) {
	jokes, err := s.jokeRepository.List(ctx, jokeListLimit)
	if err != nil {
		return nil, util.LogError("[JokeService] не удалось получить список шуток", err)
	}
	return jokes, nil
}

// ListMyJokes : шутки текущего пользователя
func (s *JokeService) ListMyJokes(ctx context.Context) ([]*model.Joke, error) {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("[JokeService] %w: %w", apperror.ErrAuthentication, err)
	}

	jokes, err := s.jokeRepository.ListByJokester(ctx, claims.Subject, jokeListLimit)
	if err != nil {
		return nil, util.LogError("[JokeService] не удалось получить шутки пользователя", err)
	}
	return jokes, nil
}

// GetRandomJoke : случайная шутка для главной страницы
func (s *JokeService) GetRandomJoke(ctx context.Context) (*model.Joke, error) {
	joke, err := s.jokeRepository.GetRandom(ctx)
	if err != nil {
		return nil, fmt.Errorf("[JokeService] не удалось получить случайную шутку: %w", err)
	}
	return joke, nil
}

// DeleteJoke : удаляет шутку, доступно только её автору
func (s *JokeService) DeleteJoke(ctx context.Context, jokeUUID string) error {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil {
		return fmt.Errorf("[JokeService] %w: %w", apperror.ErrAuthentication, err)
	}

	joke, err := s.jokeRepository.GetByUUID(ctx, jokeUUID)
	if err != nil {
		return fmt.Errorf("[JokeService] шутка не найдена: %w", err)
	}

	if joke.JokesterUUID != claims.Subject {
		return fmt.Errorf("[JokeService] шутка принадлежит другому пользователю: %w", apperror.ErrForbidden)
	}

	if err := s.jokeRepository.Delete(ctx, jokeUUID); err != nil {
		return util.LogError("[JokeService] не удалось удалить шутку", err)
	}

	if err := s.cacheRepository.DeleteJoke(ctx, jokeUUID); err != nil {
		log.Printf("[JokeService] ошибка удаления шутки из кэша: %v", err)
	}

	return nil
}
