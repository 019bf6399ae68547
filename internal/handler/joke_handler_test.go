package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"jokes-web-server/internal/apperror"
	"jokes-web-server/internal/handler"
	"jokes-web-server/internal/model"
	"jokes-web-server/internal/model/requestresponse"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ===== MOCKS =====

// MockJokeService
type MockJokeService struct {
	mock.Mock
}

func (m *MockJokeService) CreateJoke(ctx context.Context, name, content string) (*model.Joke, error) {
	args := m.Called(ctx, name, content)
	if j, ok := args.Get(0).(*model.Joke); ok {
		return j, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJokeService) GetJoke(ctx context.Context, uuid string) (*model.Joke, error) {
	args := m.Called(ctx, uuid)
	if j, ok := args.Get(0).(*model.Joke); ok {
		return j, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJokeService) ListJokes(ctx context.Context) ([]*model.Joke, error) {
	args := m.Called(ctx)
	if jokes, ok := args.Get(0).([]*model.Joke); ok {
		return jokes, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJokeService) ListMyJokes(ctx context.Context) ([]*model.Joke, error) {
	args := m.Called(ctx)
	if jokes, ok := args.Get(0).([]*model.Joke); ok {
		return jokes, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJokeService) GetRandomJoke(ctx context.Context) (*model.Joke, error) {
	args := m.Called(ctx)
	if j, ok := args.Get(0).(*model.Joke); ok {
		return j, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJokeService) DeleteJoke(ctx context.Context, uuid string) error {
	args := m.Called(ctx, uuid)
	return args.Error(0)
}

// ===== HELPERS =====

func requestWithURLParam(r *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}

// ===== CREATE =====

func TestCreateJokeHandler_Success(t *testing.T) {
	mockService := new(MockJokeService)
	h := handler.NewJokeHandler(mockService)

	mockService.On("CreateJoke", mock.Anything, "name", "content").
		Return(&model.Joke{UUID: "j1", Name: "name", Content: "content"}, nil)

	recorder := httptest.NewRecorder()
	h.CreateJoke(recorder, jsonRequest(t, http.MethodPost, "/jokes",
		requestresponse.CreateJokeRequest{Name: "name", Content: "content"}))

	require.Equal(t, http.StatusOK, recorder.Code)

	var body requestresponse.JokeResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, "j1", body.Joke.UUID)
}

func TestCreateJokeHandler_Unauthorized(t *testing.T) {
	mockService := new(MockJokeService)
	h := handler.NewJokeHandler(mockService)

	mockService.On("CreateJoke", mock.Anything, "name", "content").
		Return(nil, fmt.Errorf("нет пользователя: %w", apperror.ErrAuthentication))

	recorder := httptest.NewRecorder()
	h.CreateJoke(recorder, jsonRequest(t, http.MethodPost, "/jokes",
		requestresponse.CreateJokeRequest{Name: "name", Content: "content"}))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestCreateJokeHandler_MissingFields(t *testing.T) {
	mockService := new(MockJokeService)
	h := handler.NewJokeHandler(mockService)

	mockService.On("CreateJoke", mock.Anything, "", "").
		Return(nil, apperror.ErrValidation)

	recorder := httptest.NewRecorder()
	h.CreateJoke(recorder, jsonRequest(t, http.MethodPost, "/jokes",
		requestresponse.CreateJokeRequest{}))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

// ===== LIST =====

func TestListJokesHandler(t *testing.T) {
	mockService := new(MockJokeService)
	h := handler.NewJokeHandler(mockService)

	mockService.On("ListJokes", mock.Anything).
		Return([]*model.Joke{{UUID: "j1"}, {UUID: "j2"}}, nil)

	recorder := httptest.NewRecorder()
	h.ListJokes(recorder, httptest.NewRequest(http.MethodGet, "/jokes", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var body requestresponse.JokeListResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Len(t, body.JokeListItems, 2)
}

// ===== RANDOM =====

func TestGetRandomJokeHandler_Empty(t *testing.T) {
	mockService := new(MockJokeService)
	h := handler.NewJokeHandler(mockService)

	mockService.On("GetRandomJoke", mock.Anything).Return(nil, apperror.ErrNotFound)

	recorder := httptest.NewRecorder()
	h.GetRandomJoke(recorder, httptest.NewRequest(http.MethodGet, "/jokes/random", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

// ===== GET =====

func TestGetJokeHandler_NotFound(t *testing.T) {
	mockService := new(MockJokeService)
	h := handler.NewJokeHandler(mockService)

	mockService.On("GetJoke", mock.Anything, "ghost").Return(nil, apperror.ErrNotFound)

	request := requestWithURLParam(httptest.NewRequest(http.MethodGet, "/jokes/ghost", nil), "joke_id", "ghost")
	recorder := httptest.NewRecorder()
	h.GetJoke(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

// ===== DELETE =====

func TestDeleteJokeHandler_Success(t *testing.T) {
	mockService := new(MockJokeService)
	h := handler.NewJokeHandler(mockService)

	mockService.On("DeleteJoke", mock.Anything, "j1").Return(nil)

	request := requestWithURLParam(httptest.NewRequest(http.MethodDelete, "/jokes/j1", nil), "joke_id", "j1")
	recorder := httptest.NewRecorder()
	h.DeleteJoke(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body requestresponse.DeleteJokeResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.True(t, body.Deleted)
	assert.Equal(t, "j1", body.JokeUUID)
}

func TestDeleteJokeHandler_Forbidden(t *testing.T) {
	mockService := new(MockJokeService)
	h := handler.NewJokeHandler(mockService)

	mockService.On("DeleteJoke", mock.Anything, "j1").
		Return(fmt.Errorf("чужая шутка: %w", apperror.ErrForbidden))

	request := requestWithURLParam(httptest.NewRequest(http.MethodDelete, "/jokes/j1", nil), "joke_id", "j1")
	recorder := httptest.NewRecorder()
	h.DeleteJoke(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestDeleteJokeHandler_NotFound(t *testing.T) {
	mockService := new(MockJokeService)
	h := handler.NewJokeHandler(mockService)

	mockService.On("DeleteJoke", mock.Anything, "ghost").Return(apperror.ErrNotFound)

	request := requestWithURLParam(httptest.NewRequest(http.MethodDelete, "/jokes/ghost", nil), "joke_id", "ghost")
	recorder := httptest.NewRecorder()
	h.DeleteJoke(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
