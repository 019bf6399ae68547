package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"jokes-web-server/internal/apperror"
	"jokes-web-server/internal/model/requestresponse"
	"jokes-web-server/internal/ports"
	"jokes-web-server/internal/security"
)

type AuthenticationHandler struct {
	ports.AuthenticationService
}

func NewAuthenticationHandler(authenticationService ports.AuthenticationService) *AuthenticationHandler {
	return &AuthenticationHandler{authenticationService}
}

// Register godoc
// @Summary Регистрация нового пользователя
// @Description Создает нового пользователя с логином и паролем. Токены не выдаются, после регистрации нужно отдельно выполнить вход.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.CredentialsRequest true "Тело запроса"
// @Success 200 {object} requestresponse.RegisterResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или ошибка создания"
// @Failure 422 {object} requestresponse.ErrorResponse "Пустые поля или логин уже занят"
// @Router /auth/register [post]
func (h *AuthenticationHandler) Register(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.CredentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	user, err := h.AuthenticationService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, apperror.ErrValidation):
			sendErrorResponse(w, http.StatusUnprocessableEntity, "username и password обязательны")
		case errors.Is(err, apperror.ErrConflict):
			sendErrorResponse(w, http.StatusUnprocessableEntity, "пользователь уже существует")
		default:
			sendErrorResponse(w, http.StatusBadRequest, "не удалось создать пользователя")
		}
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.RegisterResponse{User: user})
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Выдаёт пару access/refresh токенов по логину и паролю
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.CredentialsRequest true "Тело запроса"
// @Success 200 {object} requestresponse.LoginResponse
// @Failure 403 {object} requestresponse.ErrorResponse "Неверный логин или пароль"
// @Failure 422 {object} requestresponse.ErrorResponse "Пустые поля"
// @Failure 500 {object} requestresponse.ErrorResponse "Не удалось сгенерировать токены"
// @Router /auth/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.CredentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	tokens, err := h.AuthenticationService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, apperror.ErrValidation):
			sendErrorResponse(w, http.StatusUnprocessableEntity, "username и password обязательны")
		case errors.Is(err, apperror.ErrAuthentication):
			// причина (нет пользователя / неверный пароль) остаётся в логе
			sendErrorResponse(w, http.StatusForbidden, "неверный логин или пароль")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.LoginResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// RefreshToken godoc
// @Summary Обновление access токена
// @Description Выдаёт новый access токен по действующему refresh токену. Refresh токен возвращается тем же.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RefreshTokenRequest true "Тело запроса"
// @Success 200 {object} requestresponse.RefreshTokenResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Refresh токен не передан"
// @Failure 403 {object} requestresponse.ErrorResponse "Невалидный или заблокированный токен"
// @Router /auth/token [post]
func (h *AuthenticationHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.RefreshTokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if req.RefreshToken == "" {
		sendErrorResponse(w, http.StatusUnauthorized, "refresh токен не передан")
		return
	}

	tokens, err := h.AuthenticationService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, apperror.ErrAuthentication):
			sendErrorResponse(w, http.StatusForbidden, "необходимо войти заново")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.RefreshTokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// Logout godoc
// @Summary Завершение сессии
// @Description Блокирует refresh токен пользователя до следующего входа
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LogoutRequest true "Тело запроса"
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Refresh токен не передан"
// @Failure 403 {object} requestresponse.ErrorResponse "Невалидный токен"
// @Router /auth/logout [delete]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.LogoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if req.RefreshToken == "" {
		sendErrorResponse(w, http.StatusUnauthorized, "refresh токен не передан")
		return
	}

	if err := h.AuthenticationService.Logout(r.Context(), req.RefreshToken); err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, apperror.ErrAuthentication):
			sendErrorResponse(w, http.StatusForbidden, "невалидный токен")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.MessageResponse{Message: "Successfully logged out manually"})
}

// TestAuth godoc
// @Summary Проверка access токена
// @Description Пример защищенного маршрута: отвечает 200 только с валидным access токеном
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /auth/test [get]
func (h *AuthenticationHandler) TestAuth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if _, err := security.GetClaimsFromContext(r.Context()); err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.MessageResponse{Message: "Authorized"})
}

// GetCurrentUser godoc
// @Summary Текущий пользователь
// @Description Возвращает запись пользователя по subject access токена
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.CurrentUserResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /user [get]
func (h *AuthenticationHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.AuthenticationService.GetUser(r.Context(), claims.Subject)
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, apperror.ErrNotFound):
			sendErrorResponse(w, http.StatusNotFound, "пользователь не найден")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.CurrentUserResponse{User: user})
}
