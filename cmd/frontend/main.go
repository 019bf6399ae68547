package main

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jokes-web-server/config"
	"jokes-web-server/internal/model"
	"jokes-web-server/internal/relay"

	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.html
var templateFS embed.FS

type frontendServer struct {
	client    *relay.Client
	templates *template.Template
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	sessions, err := relay.NewSessionManager(&cfg.Session, cfg.JWT.AccessSecret)
	if err != nil {
		log.Fatalf("Ошибка создания менеджера сессий: %v", err)
	}

	client, err := relay.NewClient(&cfg.Frontend, sessions)
	if err != nil {
		log.Fatalf("Ошибка создания API клиента: %v", err)
	}

	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		log.Fatalf("Ошибка парсинга шаблонов: %v", err)
	}

	srv, router := config.SetupServer(cfg.Frontend.Addr)

	app := &frontendServer{client: client, templates: templates}

	router.Get("/", app.indexPage)
	router.Get("/login", app.loginPage)
	router.Post("/login", app.login)
	router.Get("/register", app.registerPage)
	router.Post("/register", app.register)
	router.Get("/jokes/new", app.newJokePage)
	router.Post("/jokes/new", app.createJoke)
	router.Get("/jokes/mine", app.myJokesPage)
	router.Post("/jokes/{joke_id}/delete", app.deleteJoke)
	router.Post("/logout", app.logout)

	runServer(ctx, srv)
}

type pageData struct {
	User   *model.User
	Jokes  []*model.Joke
	Error  string
	Random *model.Joke
}

// withSession обновляет access токен в куке перед рендером страницы,
// чтобы остальные вызовы страницы не ловили 401 на протухшем токене
func (s *frontendServer) withSession(w http.ResponseWriter, r *http.Request) {
	if cookie, err := s.client.RefreshSession(r.Context(), r); err == nil && cookie != nil {
		http.SetCookie(w, cookie)
		r.AddCookie(cookie)
	}
}

func (s *frontendServer) indexPage(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r)

	data := pageData{}

	jokes, err := s.client.ListJokes(r.Context())
	if err != nil {
		log.Printf("не удалось получить список шуток: %v", err)
	}
	data.Jokes = jokes

	if random, err := s.client.RandomJoke(r.Context()); err == nil {
		data.Random = random
	}

	if s.client.Sessions().AccessToken(r) != "" {
		// ошибка здесь не критична, страница остаётся анонимной
		if user, err := s.client.CurrentUser(r.Context(), r); err == nil {
			data.User = user
		}
	}

	s.render(w, "index.html", data)
}

func (s *frontendServer) loginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "login.html", pageData{})
}

func (s *frontendServer) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, "login.html", pageData{Error: "некорректная форма"})
		return
	}

	tokens, err := s.client.Login(r.Context(), r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		log.Printf("логин не удался: %v", err)
		s.render(w, "login.html", pageData{Error: "неверный логин или пароль"})
		return
	}

	cookie, err := s.client.Sessions().Commit(&relay.AuthSession{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
	if err != nil {
		s.render(w, "login.html", pageData{Error: "не удалось создать сессию"})
		return
	}

	http.SetCookie(w, cookie)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *frontendServer) registerPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "register.html", pageData{})
}

func (s *frontendServer) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, "register.html", pageData{Error: "некорректная форма"})
		return
	}

	// регистрация не выдаёт токены, после неё пользователь входит отдельно
	if _, err := s.client.Register(r.Context(), r.FormValue("username"), r.FormValue("password")); err != nil {
		log.Printf("регистрация не удалась: %v", err)
		s.render(w, "register.html", pageData{Error: "не удалось зарегистрироваться"})
		return
	}

	http.Redirect(w, r, "/login", http.StatusFound)
}

func (s *frontendServer) newJokePage(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r)

	if s.client.Sessions().AccessToken(r) == "" {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	s.render(w, "new_joke.html", pageData{})
}

func (s *frontendServer) createJoke(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, "new_joke.html", pageData{Error: "некорректная форма"})
		return
	}

	_, err := s.client.CreateJoke(r.Context(), r, r.FormValue("name"), r.FormValue("content"))
	if err != nil {
		if errors.Is(err, relay.ErrSessionExpired) {
			s.forceLogout(w, r)
			return
		}
		s.render(w, "new_joke.html", pageData{Error: "не удалось сохранить шутку"})
		return
	}

	http.Redirect(w, r, "/jokes/mine", http.StatusFound)
}

func (s *frontendServer) myJokesPage(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r)

	jokes, err := s.client.MyJokes(r.Context(), r)
	if err != nil {
		if errors.Is(err, relay.ErrSessionExpired) {
			s.forceLogout(w, r)
			return
		}
		s.render(w, "my_jokes.html", pageData{Error: "не удалось получить шутки"})
		return
	}

	s.render(w, "my_jokes.html", pageData{Jokes: jokes})
}

func (s *frontendServer) deleteJoke(w http.ResponseWriter, r *http.Request) {
	if err := s.client.DeleteJoke(r.Context(), r, chi.URLParam(r, "joke_id")); err != nil {
		if errors.Is(err, relay.ErrSessionExpired) {
			s.forceLogout(w, r)
			return
		}
		log.Printf("не удалось удалить шутку: %v", err)
	}

	http.Redirect(w, r, "/jokes/mine", http.StatusFound)
}

func (s *frontendServer) logout(w http.ResponseWriter, r *http.Request) {
	// блокируем refresh токен на бэкенде; кука стирается в любом случае
	if err := s.client.Logout(r.Context(), r); err != nil {
		log.Printf("logout на бэкенде не удался: %v", err)
	}

	s.forceLogout(w, r)
}

// forceLogout стирает сессионную куку и отправляет пользователя на вход
func (s *frontendServer) forceLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, s.client.Sessions().Destroy())
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (s *frontendServer) render(w http.ResponseWriter, name string, data pageData) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("ошибка рендера шаблона %s: %v", name, err)
		http.Error(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("фронтенд запущен на " + server.Addr)
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
