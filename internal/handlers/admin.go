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
	"teamblog/internal/service"
	"teamblog/internal/storage"
)

// AdminHandler — вход/выход и панель управления постами.
type AdminHandler struct {
	Posts    *service.PostService
	Users    *service.UserService
	Renderer Renderer
	Logger   *zap.SugaredLogger
	Config   *config.Config
}

// NewAdminHandler создаёт хендлер админки
func NewAdminHandler(posts *service.PostService, users *service.UserService, renderer Renderer, logger *zap.SugaredLogger, cfg *config.Config) *AdminHandler {
	return &AdminHandler{Posts: posts, Users: users, Renderer: renderer, Logger: logger, Config: cfg}
}

func (h *AdminHandler) render(w http.ResponseWriter, status int, name string, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.Renderer.Render(w, name, data); err != nil {
		h.Logger.Errorw("render failed", "template", name, "error", err)
	}
}

func (h *AdminHandler) pageData(r *http.Request, title string) PageData {
	_, authed := middleware.GetUserIDFromContext(r.Context())
	return PageData{Title: title, Year: time.Now().UTC().Year(), Authenticated: authed}
}

// LoginForm — форма входа. Уже вошедших отправляем сразу в админку.
func (h *AdminHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}
	h.render(w, http.StatusOK, "login.html", h.pageData(r, "Вход"))
}

// Login проверяет учётные данные и выписывает cookie сессии.
// Сообщение об ошибке одно на все случаи — логин не перебрать.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.Users.Authenticate(r.Context(), username, password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		data := h.pageData(r, "Вход")
		data.Error = "Неверный логин или пароль."
		h.render(w, http.StatusUnauthorized, "login.html", data)
		return
	}
	if err != nil {
		h.Logger.Errorw("login failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("failed to set login cookie", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusFound)
}

// Logout сбрасывает cookie сессии.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearLoginCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

// Panel — админ-панель: форма создания и список постов.
func (h *AdminHandler) Panel(w http.ResponseWriter, r *http.Request) {
	h.renderPanel(w, r, http.StatusOK, "")
}

func (h *AdminHandler) renderPanel(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	posts, err := h.Posts.List(r.Context())
	if err != nil {
		h.Logger.Errorw("failed to list posts", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data := h.pageData(r, "Админ-панель")
	data.Error = errMsg
	data.Posts = make([]PostView, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		data.Posts = append(data.Posts, PostView{
			ID:        p.ID,
			Title:     p.Title,
			Content:   p.Content,
			CreatedAt: p.CreatedAt,
			ImageURL:  h.Posts.ImageURL(p),
		})
	}
	h.render(w, status, "admin.html", data)
}

// CreatePost принимает multipart-форму с заголовком, текстом и
// опциональной картинкой.
func (h *AdminHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	maxBody := int64(h.Config.MaxUploadSizeMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if err := r.ParseMultipartForm(maxBody); err != nil {
		h.Logger.Warnw("CreatePost: invalid multipart form", "error", err)
		h.renderPanel(w, r, http.StatusBadRequest, "Не удалось разобрать форму.")
		return
	}

	title := r.FormValue("title")
	content := r.FormValue("content")

	var upload *service.Upload
	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		upload = &service.Upload{
			Reader:      file,
			Size:        header.Size,
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
		}
	case errors.Is(err, http.ErrMissingFile):
		// картинка опциональна
	default:
		h.Logger.Warnw("CreatePost: bad image field", "error", err)
		h.renderPanel(w, r, http.StatusBadRequest, "Не удалось прочитать файл картинки.")
		return
	}

	_, err = h.Posts.Create(r.Context(), title, content, upload)
	switch {
	case errors.Is(err, service.ErrValidation):
		h.renderPanel(w, r, http.StatusBadRequest, "Заголовок и содержание обязательны, заголовок — не длиннее 80 символов.")
		return
	case errors.Is(err, storage.ErrStorage):
		h.Logger.Errorw("CreatePost: asset upload failed", "error", err)
		h.renderPanel(w, r, http.StatusBadGateway, "Не удалось загрузить картинку, пост не создан.")
		return
	case err != nil:
		h.Logger.Errorw("CreatePost: service error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusFound)
}

// DeletePost удаляет пост вместе с картинкой (картинка — best-effort).
func (h *AdminHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	err = h.Posts.Delete(r.Context(), id)
	switch {
	case errors.Is(err, service.ErrNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		h.Logger.Errorw("DeletePost: service error", "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusFound)
}
