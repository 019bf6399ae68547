package relay

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"time"

	"jokes-web-server/config"
	"jokes-web-server/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/securecookie"
)

// AuthSession : содержимое зашифрованной сессионной куки.
// Для бэкенда кука непрозрачна, токены извлекает только фронтенд.
type AuthSession struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// SessionManager кодирует пару токенов в httpOnly куку с шифрованием securecookie.
type SessionManager struct {
	codec        *securecookie.SecureCookie
	cookieName   string
	maxAge       time.Duration
	accessSecret []byte
}

func NewSessionManager(cfg *config.SessionConfig, accessSecret string) (*SessionManager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET не задан")
	}
	if accessSecret == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET не задан")
	}

	maxAge, err := time.ParseDuration(cfg.MaxAge)
	if err != nil {
		return nil, util.LogError("ошибка парсинга max_age сессии", err)
	}

	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = "rj_auth_session"
	}

	// из одного секрета детерминированно выводятся ключ подписи и ключ шифрования
	hashKey := sha256.Sum256([]byte(cfg.Secret))
	blockKey := sha256.Sum256([]byte(cfg.Secret + "/encrypt"))

	codec := securecookie.New(hashKey[:], blockKey[:])
	codec.MaxAge(int(maxAge.Seconds()))

	return &SessionManager{
		codec:        codec,
		cookieName:   cookieName,
		maxAge:       maxAge,
		accessSecret: []byte(accessSecret),
	}, nil
}

// Commit сериализует сессию в куку для установки на ответе
func (m *SessionManager) Commit(session *AuthSession) (*http.Cookie, error) {
	encoded, err := m.codec.Encode(m.cookieName, session)
	if err != nil {
		return nil, util.LogError("ошибка кодирования сессионной куки", err)
	}

	return &http.Cookie{
		Name:     m.cookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(m.maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Get читает сессию из куки запроса. Отсутствие куки не ошибка: сессии просто нет.
// Берётся последняя кука с этим именем: свежая, добавленная после silent refresh,
// перекрывает присланную браузером.
func (m *SessionManager) Get(r *http.Request) (*AuthSession, error) {
	var cookie *http.Cookie
	for _, c := range r.Cookies() {
		if c.Name == m.cookieName {
			cookie = c
		}
	}
	if cookie == nil {
		return nil, nil
	}

	session := &AuthSession{}
	if err := m.codec.Decode(m.cookieName, cookie.Value, session); err != nil {
		return nil, util.LogError("ошибка декодирования сессионной куки", err)
	}

	return session, nil
}

// Destroy возвращает куку, стирающую сессию в браузере
func (m *SessionManager) Destroy() *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// AccessToken возвращает access токен из сессии, если в ней лежат оба токена.
// Срок действия здесь не проверяется: протухший токен поймает бэкенд,
// а вызывающий обработает 401 через silent refresh.
func (m *SessionManager) AccessToken(r *http.Request) string {
	session, err := m.Get(r)
	if err != nil || session == nil {
		return ""
	}

	if session.AccessToken == "" || session.RefreshToken == "" {
		return ""
	}

	return session.AccessToken
}

// accessTokenValid локально проверяет подпись и срок действия access токена,
// чтобы не ходить на бэкенд при каждой загрузке страницы
func (m *SessionManager) accessTokenValid(tokenStr string) bool {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return m.accessSecret, nil
	})

	return err == nil && token.Valid
}
