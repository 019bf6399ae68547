package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jokes-web-server/config"
	_ "jokes-web-server/docs"
	"jokes-web-server/internal/handler"
	"jokes-web-server/internal/repository"
	"jokes-web-server/internal/security"
	"jokes-web-server/internal/service"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Jokes-web-server
// @version 1.0
// @description REST API для шуток с двухтокенной аутентификацией

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	jwtService, err := security.NewJWTService(&cfg.JWT)
	if err != nil {
		log.Fatalf("Ошибка создания JWT сервиса: %v", err)
	}

	refreshTokenTTL, err := time.ParseDuration(cfg.JWT.RefreshTokenTTL)
	if err != nil {
		log.Fatalf("Ошибка парсинга refresh_token_ttl: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	jokeRepo := repository.NewJokeRepository(db)
	blacklistRepo := repository.NewBlacklistRepository(redisClient)
	cacheRepo := repository.NewCacheRepository(redisClient, time.Duration(cfg.TTL.JokeCache)*time.Second)

	authService := service.NewAuthenticationService(userRepo, blacklistRepo, jwtService, refreshTokenTTL)
	jokeService := service.NewJokeService(jokeRepo, cacheRepo)

	authHandler := handler.NewAuthenticationHandler(authService)
	jokeHandler := handler.NewJokeHandler(jokeService)

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	setupAuthRoutes(router, authHandler, jwtService)
	setupJokeRoutes(router, jokeHandler, jwtService)

	runServer(ctx, srv)
}

func setupAuthRoutes(r chi.Router, h *handler.AuthenticationHandler, jwtService *security.JWTService) {
	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.Post("/token", h.RefreshToken)
			r.Delete("/logout", h.Logout)
		})
		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware(jwtService))
			r.Get("/test", h.TestAuth)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(security.JWTMiddleware(jwtService))
		r.Get("/user", h.GetCurrentUser)
	})
}

func setupJokeRoutes(r chi.Router, h *handler.JokeHandler, jwtService *security.JWTService) {
	r.Route("/jokes", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Get("/", h.ListJokes)
			r.Get("/random", h.GetRandomJoke)
			r.Get("/{joke_id}", h.GetJoke)
		})
		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware(jwtService))
			r.Post("/", h.CreateJoke)
			r.Get("/mine", h.ListMyJokes)
			r.Delete("/{joke_id}", h.DeleteJoke)
		})
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
