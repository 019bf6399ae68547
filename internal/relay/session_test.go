package relay

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"jokes-web-server/config"
	"jokes-web-server/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAccessSecret = "access-secret"

func newTestSessionManager(t *testing.T) *SessionManager {
	t.Helper()

	manager, err := NewSessionManager(&config.SessionConfig{
		CookieName: "rj_auth_session",
		MaxAge:     "8760h",
		Secret:     "session-secret",
	}, testAccessSecret)
	require.NoError(t, err)

	return manager
}

func requestWithSession(t *testing.T, manager *SessionManager, session *AuthSession) *http.Request {
	t.Helper()

	cookie, err := manager.Commit(session)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(cookie)
	return request
}

func issueAccessToken(t *testing.T, ttl string) string {
	t.Helper()

	svc, err := security.NewJWTService(&config.JWTConfig{
		Issuer:          "jokes-web-server",
		AccessTokenTTL:  ttl,
		RefreshTokenTTL: "8760h",
		AccessSecret:    testAccessSecret,
		RefreshSecret:   "refresh-secret",
	})
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken("u1")
	require.NoError(t, err)
	return token
}

// ===== КОНСТРУКТОР =====

func TestNewSessionManager_MissingSecrets(t *testing.T) {
	cfg := &config.SessionConfig{CookieName: "c", MaxAge: "1h"}

	_, err := NewSessionManager(cfg, testAccessSecret)
	assert.Error(t, err)

	cfg.Secret = "s"
	_, err = NewSessionManager(cfg, "")
	assert.Error(t, err)
}

// ===== КУКА =====

// 1. Сессия переживает цикл кодирования в куку и обратно
func TestSession_RoundTrip(t *testing.T) {
	manager := newTestSessionManager(t)

	request := requestWithSession(t, manager, &AuthSession{
		AccessToken:  "acc",
		RefreshToken: "ref",
	})

	session, err := manager.Get(request)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "acc", session.AccessToken)
	assert.Equal(t, "ref", session.RefreshToken)
}

// 2. Токены не лежат в куке открытым текстом
func TestSession_CookieIsOpaque(t *testing.T) {
	manager := newTestSessionManager(t)

	cookie, err := manager.Commit(&AuthSession{AccessToken: "acc-secret-value", RefreshToken: "ref"})
	require.NoError(t, err)

	assert.NotContains(t, cookie.Value, "acc-secret-value")
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

// 3. Отсутствие куки не ошибка
func TestSession_GetMissing(t *testing.T) {
	manager := newTestSessionManager(t)

	session, err := manager.Get(httptest.NewRequest(http.MethodGet, "/", nil))

	require.NoError(t, err)
	assert.Nil(t, session)
}

// 4. Подделанная кука отклоняется
func TestSession_GetTampered(t *testing.T) {
	manager := newTestSessionManager(t)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: "rj_auth_session", Value: "garbage"})

	_, err := manager.Get(request)

	assert.Error(t, err)
}

// 5. Destroy стирает куку в браузере
func TestSession_Destroy(t *testing.T) {
	manager := newTestSessionManager(t)

	cookie := manager.Destroy()

	assert.Equal(t, -1, cookie.MaxAge)
	assert.Equal(t, "", cookie.Value)
}

// 6. При дублировании куки побеждает добавленная последней:
// так обновлённая после silent refresh сессия перекрывает присланную браузером
func TestSession_LastCookieWins(t *testing.T) {
	manager := newTestSessionManager(t)

	staleCookie, err := manager.Commit(&AuthSession{AccessToken: "stale", RefreshToken: "ref"})
	require.NoError(t, err)
	freshCookie, err := manager.Commit(&AuthSession{AccessToken: "fresh", RefreshToken: "ref"})
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(staleCookie)
	request.AddCookie(freshCookie)

	session, err := manager.Get(request)
	require.NoError(t, err)
	assert.Equal(t, "fresh", session.AccessToken)
}

// ===== ACCESS TOKEN =====

// 1. Токен возвращается без проверки срока действия:
// протухший токен обнаружит бэкенд через 401
func TestAccessToken_NoExpiryCheck(t *testing.T) {
	manager := newTestSessionManager(t)

	expired := issueAccessToken(t, "-1m")
	request := requestWithSession(t, manager, &AuthSession{
		AccessToken:  expired,
		RefreshToken: "ref",
	})

	assert.Equal(t, expired, manager.AccessToken(request))
}

// 2. Неполная сессия не отдаёт токен
func TestAccessToken_RequiresBothTokens(t *testing.T) {
	manager := newTestSessionManager(t)

	request := requestWithSession(t, manager, &AuthSession{AccessToken: "acc"})
	assert.Equal(t, "", manager.AccessToken(request))

	request = requestWithSession(t, manager, &AuthSession{RefreshToken: "ref"})
	assert.Equal(t, "", manager.AccessToken(request))
}

// 3. Без куки токена нет
func TestAccessToken_NoSession(t *testing.T) {
	manager := newTestSessionManager(t)

	assert.Equal(t, "", manager.AccessToken(httptest.NewRequest(http.MethodGet, "/", nil)))
}

// ===== ЛОКАЛЬНАЯ ПРОВЕРКА =====

func TestAccessTokenValid(t *testing.T) {
	manager := newTestSessionManager(t)

	assert.True(t, manager.accessTokenValid(issueAccessToken(t, "30m")))
	assert.False(t, manager.accessTokenValid(issueAccessToken(t, "-1m")))
	assert.False(t, manager.accessTokenValid("not-a-jwt"))
}
