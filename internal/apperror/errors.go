package apperror

import "errors"

// Категории ошибок, на которые обработчики отображают статусы HTTP.
// Сервисный слой всегда заворачивает низкоуровневую ошибку в одну из них через %w.
var (
	// ErrValidation : запрос не прошёл проверку входных данных, клиент должен исправить запрос
	ErrValidation = errors.New("ошибка валидации")

	// ErrAuthentication : неверные учетные данные либо невалидный/просроченный/заблокированный токен
	ErrAuthentication = errors.New("ошибка аутентификации")

	// ErrConflict : повторная регистрация существующего логина
	ErrConflict = errors.New("конфликт")

	// ErrNotFound : запрошенный ресурс не существует
	ErrNotFound = errors.New("не найдено")

	// ErrForbidden : ресурс существует, но принадлежит другому пользователю
	ErrForbidden = errors.New("доступ запрещён")

	// ErrService : хранилище или реестр недоступны
	ErrService = errors.New("сервис недоступен")
)
