package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"jokes-web-server/config"
	"jokes-web-server/internal/model"
	"jokes-web-server/internal/model/requestresponse"
	"jokes-web-server/internal/util"
)

// ErrSessionExpired : восстановить сессию не удалось, пользователя нужно разлогинить
var ErrSessionExpired = errors.New("сессия истекла, требуется повторный вход")

// ErrBadCredentials : бэкенд отклонил логин или регистрацию
var ErrBadCredentials = errors.New("неверный логин или пароль")

// Client ходит на бэкенд от имени фронтенда.
// Авторизованные вызовы при 401 делают ровно одну попытку silent refresh
// и один повтор запроса; второй отказ означает принудительный logout.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   *SessionManager
}

func NewClient(cfg *config.FrontendConfig, sessions *SessionManager) (*Client, error) {
	timeout, err := time.ParseDuration(cfg.RequestTimeout)
	if err != nil {
		return nil, util.LogError("ошибка парсинга request_timeout", err)
	}

	return &Client{
		baseURL: cfg.APIURL,
		// таймаут ограничивает каждый вызов: зависший бэкенд означает
		// транспортную ошибку и разлогин, а не бесконечное ожидание
		httpClient: &http.Client{Timeout: timeout},
		sessions:   sessions,
	}, nil
}

func (c *Client) Sessions() *SessionManager {
	return c.sessions
}

// Login обменивает учетные данные на пару токенов
func (c *Client) Login(ctx context.Context, username, password string) (*model.TokensPair, error) {
	resp, err := c.postJSON(ctx, "/auth/login", requestresponse.CredentialsRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("логин отклонён со статусом %d: %w", resp.StatusCode, ErrBadCredentials)
	}

	var body requestresponse.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, util.LogError("ошибка декодирования ответа логина", err)
	}

	if body.AccessToken == "" || body.RefreshToken == "" {
		return nil, fmt.Errorf("бэкенд не вернул токены: %w", ErrBadCredentials)
	}

	return &model.TokensPair{
		AccessToken:  body.AccessToken,
		RefreshToken: body.RefreshToken,
	}, nil
}

// Register создаёт пользователя. Токены не возвращаются, после регистрации нужен вход.
func (c *Client) Register(ctx context.Context, username, password string) (*model.User, error) {
	resp, err := c.postJSON(ctx, "/auth/register", requestresponse.CredentialsRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("регистрация отклонена со статусом %d: %w", resp.StatusCode, ErrBadCredentials)
	}

	var body requestresponse.RegisterResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, util.LogError("ошибка декодирования ответа регистрации", err)
	}

	return body.User, nil
}

// Logout блокирует refresh токен на бэкенде. Ошибка не мешает стереть куку локально.
func (c *Client) Logout(ctx context.Context, r *http.Request) error {
	session, err := c.sessions.Get(r)
	if err != nil || session == nil || session.RefreshToken == "" {
		return nil // сессии нет, блокировать нечего
	}

	payload, err := json.Marshal(requestresponse.LogoutRequest{RefreshToken: session.RefreshToken})
	if err != nil {
		return util.LogError("ошибка сериализации запроса logout", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/auth/logout", bytes.NewReader(payload))
	if err != nil {
		return util.LogError("ошибка создания запроса logout", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return util.LogError("ошибка запроса logout", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("logout отклонён со статусом %d", resp.StatusCode)
	}

	return nil
}

// RefreshAccessToken обменивает refresh токен из сессии на новый access токен
func (c *Client) RefreshAccessToken(ctx context.Context, r *http.Request) (string, error) {
	session, err := c.sessions.Get(r)
	if err != nil || session == nil || session.RefreshToken == "" {
		return "", fmt.Errorf("refresh токен не найден в сессии: %w", ErrSessionExpired)
	}

	resp, err := c.postJSON(ctx, "/auth/token", requestresponse.RefreshTokenRequest{
		RefreshToken: session.RefreshToken,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("обновление токена отклонено со статусом %d: %w", resp.StatusCode, ErrSessionExpired)
	}

	var body requestresponse.RefreshTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", util.LogError("ошибка декодирования ответа обновления токена", err)
	}

	if body.AccessToken == "" {
		return "", fmt.Errorf("бэкенд не вернул access токен: %w", ErrSessionExpired)
	}

	return body.AccessToken, nil
}

// RefreshSession проверяет access токен из сессии локально и при необходимости
// обновляет его через бэкенд. Возвращает новую куку для установки на ответе
// либо nil, если сессия не менялась.
func (c *Client) RefreshSession(ctx context.Context, r *http.Request) (*http.Cookie, error) {
	session, err := c.sessions.Get(r)
	if err != nil || session == nil || session.AccessToken == "" || session.RefreshToken == "" {
		return nil, nil
	}

	if c.sessions.accessTokenValid(session.AccessToken) {
		return nil, nil
	}

	newAccessToken, err := c.RefreshAccessToken(ctx, r)
	if err != nil {
		return nil, err
	}

	session.AccessToken = newAccessToken
	return c.sessions.Commit(session)
}

// CurrentUser : запись текущего пользователя
func (c *Client) CurrentUser(ctx context.Context, r *http.Request) (*model.User, error) {
	resp, err := c.doAuthorized(ctx, r, http.MethodGet, "/user", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body requestresponse.CurrentUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, util.LogError("ошибка декодирования пользователя", err)
	}
	return body.User, nil
}

// ListJokes : публичный список шуток, авторизация не нужна
func (c *Client) ListJokes(ctx context.Context) ([]*model.Joke, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/jokes", nil)
	if err != nil {
		return nil, util.LogError("ошибка создания запроса списка шуток", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, util.LogError("ошибка запроса списка шуток", err)
	}
	defer resp.Body.Close()

	var body requestresponse.JokeListResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, util.LogError("ошибка декодирования списка шуток", err)
	}
	return body.JokeListItems, nil
}

// RandomJoke : случайная шутка, авторизация не нужна
func (c *Client) RandomJoke(ctx context.Context) (*model.Joke, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/jokes/random", nil)
	if err != nil {
		return nil, util.LogError("ошибка создания запроса случайной шутки", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, util.LogError("ошибка запроса случайной шутки", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("случайная шутка недоступна, статус %d", resp.StatusCode)
	}

	var body requestresponse.JokeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, util.LogError("ошибка декодирования шутки", err)
	}
	return body.Joke, nil
}

// MyJokes : шутки текущего пользователя
func (c *Client) MyJokes(ctx context.Context, r *http.Request) ([]*model.Joke, error) {
	resp, err := c.doAuthorized(ctx, r, http.MethodGet, "/jokes/mine", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body requestresponse.JokeListResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, util.LogError("ошибка декодирования списка шуток", err)
	}
	return body.JokeListItems, nil
}

// CreateJoke : создаёт шутку от имени текущего пользователя
func (c *Client) CreateJoke(ctx context.Context, r *http.Request, name, content string) (*model.Joke, error) {
	payload, err := json.Marshal(requestresponse.CreateJokeRequest{Name: name, Content: content})
	if err != nil {
		return nil, util.LogError("ошибка сериализации шутки", err)
	}

	resp, err := c.doAuthorized(ctx, r, http.MethodPost, "/jokes", payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body requestresponse.JokeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, util.LogError("ошибка декодирования шутки", err)
	}
	return body.Joke, nil
}

// DeleteJoke : удаляет шутку текущего пользователя
func (c *Client) DeleteJoke(ctx context.Context, r *http.Request, jokeUUID string) error {
	resp, err := c.doAuthorized(ctx, r, http.MethodDelete, "/jokes/"+jokeUUID, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// doAuthorized выполняет вызов с access токеном из сессии.
// На 401 делается один silent refresh и один повтор; счётчик попыток явный,
// чтобы исключить бесконечную рекурсию при стойком отказе в авторизации.
func (c *Client) doAuthorized(ctx context.Context, r *http.Request, method, path string, payload []byte) (*http.Response, error) {
	accessToken := c.sessions.AccessToken(r)
	if accessToken == "" {
		return nil, ErrSessionExpired
	}

	for attempt := 0; attempt < 2; attempt++ {
		resp, err := c.send(ctx, method, path, payload, accessToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSessionExpired, err)
		}

		if resp.StatusCode != http.StatusUnauthorized {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if attempt == 1 {
			break
		}

		newToken, err := c.RefreshAccessToken(ctx, r)
		if err != nil {
			return nil, ErrSessionExpired
		}
		log.Printf("access токен обновлён после 401, повтор запроса %s %s", method, path)
		accessToken = newToken
	}

	return nil, ErrSessionExpired
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, accessToken string) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	return c.httpClient.Do(req)
}

func (c *Client) postJSON(ctx context.Context, path string, payload interface{}) (*http.Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, util.LogError("ошибка сериализации запроса", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, util.LogError("ошибка создания запроса", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, util.LogError("ошибка запроса к бэкенду", err)
	}

	return resp, nil
}
