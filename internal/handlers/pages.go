package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"teamblog/internal/config"
	"teamblog/internal/middleware"
	"teamblog/internal/model"
	"teamblog/internal/service"
	"teamblog/internal/view"
)

// PageHandler обслуживает публичные страницы блога.
type PageHandler struct {
	Posts    *service.PostService
	Renderer Renderer
	Logger   *zap.SugaredLogger
	Config   *config.Config
}

// NewPageHandler создаёт хендлер публичных страниц
func NewPageHandler(posts *service.PostService, renderer Renderer, logger *zap.SugaredLogger, cfg *config.Config) *PageHandler {
	return &PageHandler{Posts: posts, Renderer: renderer, Logger: logger, Config: cfg}
}

// PostView — данные поста для шаблона.
type PostView struct {
	ID        int64
	Title     string
	Content   string
	CreatedAt time.Time
	ImageURL  string
}

// PageData — общая обвязка страницы.
type PageData struct {
	Title         string
	Year          int
	Authenticated bool
	Error         string

	Posts  []PostView
	Post   *PostView
	Roster view.Roster
}

func (h *PageHandler) newPageData(r *http.Request, title string) PageData {
	_, authed := middleware.GetUserIDFromContext(r.Context())
	return PageData{
		Title:         title,
		Year:          time.Now().UTC().Year(),
		Authenticated: authed,
	}
}

func (h *PageHandler) toView(p *model.Post) PostView {
	return PostView{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		ImageURL:  h.Posts.ImageURL(p),
	}
}

func (h *PageHandler) render(w http.ResponseWriter, name string, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.Renderer.Render(w, name, data); err != nil {
		h.Logger.Errorw("render failed", "template", name, "error", err)
	}
}

// Index — главная страница.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, "index.html", h.newPageData(r, "Главная"))
}

// Team — страница команды. Отсутствие файла состава — не повод для 500.
func (h *PageHandler) Team(w http.ResponseWriter, r *http.Request) {
	data := h.newPageData(r, "Наша команда")
	roster, err := view.LoadRoster(h.Config.MembersFile)
	if err != nil {
		h.Logger.Warnw("failed to load team roster", "path", h.Config.MembersFile, "error", err)
	}
	data.Roster = roster
	h.render(w, "team.html", data)
}

// Blog — список постов, новые сверху.
func (h *PageHandler) Blog(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Posts.List(r.Context())
	if err != nil {
		h.Logger.Errorw("failed to list posts", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data := h.newPageData(r, "Блог")
	data.Posts = make([]PostView, 0, len(posts))
	for i := range posts {
		data.Posts = append(data.Posts, h.toView(&posts[i]))
	}
	h.render(w, "blog.html", data)
}

// Post — страница одного поста.
func (h *PageHandler) Post(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	p, err := h.Posts.Get(r.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.Logger.Errorw("failed to get post", "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pv := h.toView(p)
	data := h.newPageData(r, p.Title)
	data.Post = &pv
	h.render(w, "post.html", data)
}
