package handlers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"teamblog/internal/config"
	"teamblog/internal/middleware"
	"teamblog/internal/service"
)

// Renderer — контракт слоя представления: имя шаблона плюс данные.
type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	postService *service.PostService,
	userService *service.UserService,
	renderer Renderer,
	logger *zap.SugaredLogger,
	cfg *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(cfg.AuthSecret))

	// Handlers
	pages := NewPageHandler(postService, renderer, logger, cfg)
	admin := NewAdminHandler(postService, userService, renderer, logger, cfg)

	// Публичные страницы
	r.Get("/", pages.Index)
	r.Get("/team", pages.Team)
	r.Get("/blog", pages.Blog)
	r.Get("/post/{id}", pages.Post)

	// Вход/выход
	r.Get("/login", admin.LoginForm)
	r.Post("/login", admin.Login)
	r.Get("/logout", admin.Logout)

	// Админка — только с валидной сессией
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/admin", admin.Panel)
		r.Post("/admin", admin.CreatePost)
		r.Post("/delete_post/{id}", admin.DeletePost)
	})

	// Загрузки раздаём статикой только при локальном бэкенде;
	// S3 отдаёт картинки по собственным URL
	if cfg.AssetBackend == "local" {
		fs := http.StripPrefix(cfg.StaticPrefix+"/", http.FileServer(http.Dir(cfg.UploadDir)))
		r.Get(cfg.StaticPrefix+"/*", fs.ServeHTTP)
	}

	return &Handler{Router: r}
}
