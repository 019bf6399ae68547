package repository

import (
	"context"
	"database/sql"
	"errors"

	"jokes-web-server/config"
	"jokes-web-server/internal/apperror"
	"jokes-web-server/internal/model"
	"jokes-web-server/internal/util"

	"github.com/jmoiron/sqlx"
)

type JokeRepository struct {
	*config.Database
}

func NewJokeRepository(database *config.Database) *JokeRepository {
	return &JokeRepository{database}
}

// Create : сохраняет новую шутку
func (r *JokeRepository) Create(ctx context.Context, joke *model.Joke) (*model.Joke, error) {
	query := `
		INSERT INTO jokes (uuid, name, content, jokester_uuid)
		VALUES ($1, $2, $3, $4)
		RETURNING uuid, name, content, jokester_uuid, created_at
	`

	created := &model.Joke{}
	err := r.DB.QueryRowxContext(ctx, query, joke.UUID, joke.Name, joke.Content, joke.JokesterUUID).
		StructScan(created)
	if err != nil {
		return nil, util.LogError("[JokeRepo] ошибка вставки данных в БД", err)
	}

	return created, nil
}

// GetByUUID : ищет шутку по UUID
func (r *JokeRepository) GetByUUID(ctx context.Context, uuid string) (*model.Joke, error) {
	query := `SELECT uuid, name, content, jokester_uuid, created_at FROM jokes WHERE uuid = $1`
	var joke model.Joke
	err := sqlx.GetContext(ctx, r.DB, &joke, query, uuid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}
		return nil, util.LogError("[JokeRepo] не удалось найти шутку в БД", err)
	}
	return &joke, nil
}

// List : последние шутки, новые первыми
func (r *JokeRepository) List(ctx context.Context, limit int) ([]*model.Joke, error) {
	query := `
		SELECT uuid, name, content, jokester_uuid, created_at
		FROM jokes
		ORDER BY created_at DESC, uuid DESC
		LIMIT $1
	`

	var jokes []*model.Joke
	if err := sqlx.SelectContext(ctx, r.DB, &jokes, query, limit); err != nil {
		return nil, util.LogError("[JokeRepo] не удалось получить список шуток", err)
	}
	return jokes, nil
}

// ListByJokester : шутки конкретного пользователя
func (r *JokeRepository) ListByJokester(ctx context.Context, jokesterUUID string, limit int) ([]*model.Joke, error) {
	query := `
		SELECT uuid, name, content, jokester_uuid, created_at
		FROM jokes
		WHERE jokester_uuid = $1
		ORDER BY created_at DESC, uuid DESC
		LIMIT $2
	`

	var jokes []*model.Joke
	if err := sqlx.SelectContext(ctx, r.DB, &jokes, query, jokesterUUID, limit); err != nil {
		return nil, util.LogError("[JokeRepo] не удалось получить шутки пользователя", err)
	}
	return jokes, nil
}

// GetRandom : одна случайная шутка
func (r *JokeRepository) GetRandom(ctx context.Context) (*model.Joke, error) {
	query := `SELECT uuid, name, content, jokester_uuid, created_at FROM jokes ORDER BY RANDOM() LIMIT 1`
	var joke model.Joke
	err := sqlx.GetContext(ctx, r.DB, &joke, query)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}
		return nil, util.LogError("[JokeRepo] не удалось получить случайную шутку", err)
	}
	return &joke, nil
}

// Delete : удаляет шутку по UUID
func (r *JokeRepository) Delete(ctx context.Context, uuid string) error {
	query := `DELETE FROM jokes WHERE uuid = $1`
	result, err := r.DB.ExecContext(ctx, query, uuid)
	if err != nil {
		return util.LogError("[JokeRepo] не удалось удалить шутку", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[JokeRepo] не удалось проверить, удалена ли шутка", err)
	}
	if rowsAffected == 0 {
		return apperror.ErrNotFound
	}

	return nil
}
