package config

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	ServerAddr     string         `yaml:"serverAddr"`
	DatabaseConfig DatabaseConfig `yaml:"databaseConfig"`
	RedisConfig    RedisConfig    `yaml:"redisConfig"`
	JWT            JWTConfig      `yaml:"jwt"`
	Session        SessionConfig  `yaml:"session"`
	Frontend       FrontendConfig `yaml:"frontend"`
	TTL            TTL            `yaml:"TTL"`
}

func LoadConfig(path string) (*AppConfig, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, err
	}

	if err := loadSecrets(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadSecrets читает секреты подписи и шифрования из окружения.
// Процесс не должен стартовать без них: отсутствие любого секрета считается ошибкой.
func loadSecrets(cfg *AppConfig) error {
	_ = godotenv.Load() // .env опционален, нужен только для локальной разработки

	var missing []string

	if cfg.JWT.AccessSecret = os.Getenv("ACCESS_TOKEN_SECRET"); cfg.JWT.AccessSecret == "" {
		missing = append(missing, "ACCESS_TOKEN_SECRET")
	}
	if cfg.JWT.RefreshSecret = os.Getenv("REFRESH_TOKEN_SECRET"); cfg.JWT.RefreshSecret == "" {
		missing = append(missing, "REFRESH_TOKEN_SECRET")
	}
	if cfg.Session.Secret = os.Getenv("SESSION_SECRET"); cfg.Session.Secret == "" {
		missing = append(missing, "SESSION_SECRET")
	}

	if len(missing) > 0 {
		return fmt.Errorf("не заданы обязательные переменные окружения: %v", missing)
	}

	return nil
}

func SetupServer(serverAddress string) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:    serverAddress,
		Handler: router,
	}

	return server, router
}

func SetupDatabase(dsn string) (*Database, error) {
	return NewDatabaseConnection("postgres", dsn)
}

func SetupRedis(cfg *RedisConfig) (*RedisClient, error) {
	return NewRedisClient(cfg)
}
