package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"jokes-web-server/internal/apperror"
	"jokes-web-server/internal/model"
	"jokes-web-server/internal/ports"
	"jokes-web-server/internal/security"
	"jokes-web-server/internal/util"

	"github.com/google/uuid"
)

type AuthenticationService struct {
	userRepository      ports.UserRepository
	blacklistRepository ports.BlacklistRepository
	jwtServiceInterface ports.JWTServiceInterface
	refreshTokenTTL     time.Duration
}

func NewAuthenticationService(
	userRepository ports.UserRepository,
	blacklistRepository ports.BlacklistRepository,
	jwtService ports.JWTServiceInterface,
	refreshTokenTTL time.Duration,
) *AuthenticationService {
	return &AuthenticationService{
		userRepository,
		blacklistRepository,
		jwtService,
		refreshTokenTTL,
	}
}

// Register создаёт нового пользователя.
// Токены при регистрации не выдаются, клиент должен отдельно выполнить вход.
// Асимметрия с Login унаследована от исходного поведения и сохранена сознательно.
func (s *AuthenticationService) Register(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("username и password обязательны: %w", apperror.ErrValidation)
	}

	exists, err := s.userRepository.UsernameExists(ctx, username)
	if err != nil {
		return nil, util.LogError("не удалось проверить существование пользователя", err)
	}
	if exists {
		return nil, fmt.Errorf("пользователь %s уже существует: %w", username, apperror.ErrConflict)
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepository.CreateUser(ctx, &model.User{
		UUID:         uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return nil, util.LogError("не удалось создать пользователя", err)
	}

	return user, nil
}

// Login проверяет учетные данные и выпускает пару токенов.
// При успехе запись чёрного списка пользователя снимается: предыдущий logout
// больше не блокирует свежевыданные refresh токены.
func (s *AuthenticationService) Login(ctx context.Context, username, password string) (*model.TokensPair, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("username и password обязательны: %w", apperror.ErrValidation)
	}

	user, err := s.userRepository.FindByUsername(ctx, username)
	if err != nil {
		// для клиента неотличимо от неверного пароля, причина остаётся в логе
		return nil, util.WrapError("пользователь не найден", apperror.ErrAuthentication, err)
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		log.Printf("неверный пароль для пользователя %s", user.UUID)
		return nil, fmt.Errorf("неверный логин или пароль: %w", apperror.ErrAuthentication)
	}

	accessToken, err := s.jwtServiceInterface.GenerateAccessToken(user.UUID)
	if err != nil {
		return nil, util.LogError("ошибка генерации access токена", err)
	}

	refreshToken, err := s.jwtServiceInterface.GenerateRefreshToken(user.UUID)
	if err != nil {
		return nil, util.LogError("ошибка генерации refresh токена", err)
	}

	if err := s.blacklistRepository.Clear(ctx, user.UUID); err != nil {
		return nil, util.WrapError("не удалось очистить чёрный список", apperror.ErrService, err)
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh выпускает новый access токен по действующему refresh токену.
// Refresh токен возвращается клиенту тем же, ротации нет.
// Если у пользователя есть любая запись в чёрном списке, обновление запрещено
// до следующего логина, даже для другого корректно подписанного токена.
func (s *AuthenticationService) Refresh(ctx context.Context, refreshToken string) (*model.TokensPair, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh токен не передан: %w", apperror.ErrValidation)
	}

	claims, err := s.jwtServiceInterface.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, util.WrapError("невалидный refresh токен", apperror.ErrAuthentication, err)
	}

	userUUID := claims.Subject

	blocked, err := s.blacklistRepository.Get(ctx, userUUID)
	if err != nil {
		// недоступный реестр трактуется как отсутствие записи;
		// известный риск, унаследованный от исходного поведения
		log.Printf("ошибка чтения чёрного списка для %s: %v", userUUID, err)
		blocked = ""
	}
	if blocked != "" {
		log.Printf("refresh для %s заблокирован до следующего входа", userUUID)
		return nil, fmt.Errorf("необходимо войти заново: %w", apperror.ErrAuthentication)
	}

	accessToken, err := s.jwtServiceInterface.GenerateAccessToken(userUUID)
	if err != nil {
		return nil, util.LogError("ошибка генерации access токена", err)
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout блокирует refresh токен пользователя на весь срок его жизни.
// При недоступном реестре операция завершается ошибкой, а не молча пропускается.
func (s *AuthenticationService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return fmt.Errorf("refresh токен не передан: %w", apperror.ErrValidation)
	}

	claims, err := s.jwtServiceInterface.ValidateRefreshToken(refreshToken)
	if err != nil {
		return util.WrapError("невалидный refresh токен", apperror.ErrAuthentication, err)
	}

	if err := s.blacklistRepository.Blacklist(ctx, claims.Subject, refreshToken, s.refreshTokenTTL); err != nil {
		return util.WrapError("не удалось заблокировать refresh токен", apperror.ErrService, err)
	}

	return nil
}

// GetUser возвращает запись пользователя по его UUID из access токена
func (s *AuthenticationService) GetUser(ctx context.Context, userUUID string) (*model.User, error) {
	user, err := s.userRepository.FindByUUID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("пользователь не найден: %w", err)
	}
	return user, nil
}
