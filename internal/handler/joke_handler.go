package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"jokes-web-server/internal/apperror"
	"jokes-web-server/internal/model/requestresponse"
	"jokes-web-server/internal/ports"

	"github.com/go-chi/chi/v5"
)

type JokeHandler struct {
	ports.JokeService
}

func NewJokeHandler(jokeService ports.JokeService) *JokeHandler {
	return &JokeHandler{jokeService}
}

// CreateJoke godoc
// @Summary Создание шутки
// @Description Сохраняет новую шутку от имени авторизованного пользователя
// @Tags Jokes
// @Accept json
// @Produce json
// @Param body body requestresponse.CreateJokeRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.JokeResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /jokes [post]
func (h *JokeHandler) CreateJoke(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.CreateJokeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	joke, err := h.JokeService.CreateJoke(r.Context(), req.Name, req.Content)
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, apperror.ErrValidation):
			sendErrorResponse(w, http.StatusBadRequest, "name и content обязательны")
		case errors.Is(err, apperror.ErrAuthentication):
			sendErrorResponse(w, http.StatusUnauthorized, "unauthorized")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.JokeResponse{Joke: joke})
}

// ListJokes godoc
// @Summary Список шуток
// @Description Публичный список последних шуток
// @Tags Jokes
// @Produce json
// @Success 200 {object} requestresponse.JokeListResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /jokes [get]
func (h *JokeHandler) ListJokes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	jokes, err := h.JokeService.ListJokes(r.Context())
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.JokeListResponse{JokeListItems: jokes})
}

// ListMyJokes godoc
// @Summary Шутки текущего пользователя
// @Tags Jokes
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.JokeListResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /jokes/mine [get]
func (h *JokeHandler) ListMyJokes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	jokes, err := h.JokeService.ListMyJokes(r.Context())
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, apperror.ErrAuthentication):
			sendErrorResponse(w, http.StatusUnauthorized, "unauthorized")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.JokeListResponse{JokeListItems: jokes})
}

// GetRandomJoke godoc
// @Summary Случайная шутка
// @Tags Jokes
// @Produce json
// @Success 200 {object} requestresponse.JokeResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /jokes/random [get]
func (h *JokeHandler) GetRandomJoke(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	joke, err := h.JokeService.GetRandomJoke(r.Context())
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, apperror.ErrNotFound):
			sendErrorResponse(w, http.StatusNotFound, "шуток пока нет")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.JokeResponse{Joke: joke})
}

// GetJoke godoc
// @Summary Получение шутки по UUID
// @Tags Jokes
// @Produce json
// @Param joke_id path string true "UUID шутки"
// @Success 200 {object} requestresponse.JokeResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /jokes/{joke_id} [get]
func (h *JokeHandler) GetJoke(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	joke, err := h.JokeService.GetJoke(r.Context(), chi.URLParam(r, "joke_id"))
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, apperror.ErrNotFound):
			sendErrorResponse(w, http.StatusNotFound, "шутка не найдена")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.JokeResponse{Joke: joke})
}

// DeleteJoke godoc
// @Summary Удаление шутки
// @Description Удаляет шутку, доступно только её автору
// @Tags Jokes
// @Produce json
// @Param joke_id path string true "UUID шутки"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.DeleteJokeResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /jokes/{joke_id} [delete]
func (h *JokeHandler) DeleteJoke(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	jokeUUID := chi.URLParam(r, "joke_id")

	if err := h.JokeService.DeleteJoke(r.Context(), jokeUUID); err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, apperror.ErrAuthentication):
			sendErrorResponse(w, http.StatusUnauthorized, "unauthorized")
		case errors.Is(err, apperror.ErrForbidden):
			sendErrorResponse(w, http.StatusForbidden, "доступ запрещён")
		case errors.Is(err, apperror.ErrNotFound):
			sendErrorResponse(w, http.StatusNotFound, "шутка не найдена")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.DeleteJokeResponse{JokeUUID: jokeUUID, Deleted: true})
}
