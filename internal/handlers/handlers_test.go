package handlers_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"teamblog/internal/config"
	"teamblog/internal/handlers"
	"teamblog/internal/middleware"
	"teamblog/internal/model"
	"teamblog/internal/repo"
	"teamblog/internal/service"
	"teamblog/internal/storage"
)

// Minimal mocks
type mockPostRepo struct{ mock.Mock }

func (m *mockPostRepo) ListAll(ctx context.Context) ([]model.Post, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.Post); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockPostRepo) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Post); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockPostRepo) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	args := m.Called(ctx, post)
	if v, ok := args.Get(0).(*model.Post); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockPostRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ repo.PostRepository = (*mockPostRepo)(nil)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

type mockStorage struct{ mock.Mock }

func (m *mockStorage) Store(ctx context.Context, r io.Reader, size int64, name, contentType string) (*storage.Ref, error) {
	args := m.Called(ctx, r, size, name, contentType)
	if v, ok := args.Get(0).(*storage.Ref); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStorage) Delete(ctx context.Context, ref storage.Ref) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}
func (m *mockStorage) URL(ref storage.Ref) string {
	args := m.Called(ref)
	return args.String(0)
}

var _ storage.Storage = (*mockStorage)(nil)

// stubRenderer пишет имя шаблона вместо разметки: хендлерам важны данные и статусы
type stubRenderer struct{}

func (stubRenderer) Render(w io.Writer, name string, data any) error {
	_, err := io.WriteString(w, name)
	return err
}

// --- Helpers ---
func newTestRouter(t *testing.T, pr repo.PostRepository, ur repo.UserRepository, st storage.Storage) http.Handler {
	t.Helper()
	cfg := &config.Config{
		AuthSecret:      "test-secret",
		AssetBackend:    "local",
		UploadDir:       t.TempDir(),
		StaticPrefix:    "/static/uploads",
		MaxUploadSizeMB: 1,
	}
	logger := zap.NewNop().Sugar()

	postSvc := service.NewPostService(pr, st, logger)
	userSvc := service.NewUserService(ur)

	h := handlers.NewHandler(postSvc, userSvc, stubRenderer{}, logger, cfg)
	return h.Router
}

func addAuthCookie(t *testing.T, req *http.Request, userID int64, secret string) {
	t.Helper()
	rr := httptest.NewRecorder()
	_ = middleware.SetLoginCookie(rr, userID, secret)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}

func multipartBody(t *testing.T, fields map[string]string, fileField, fileName, fileContent string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, fileName)
		assert.NoError(t, err)
		_, _ = fw.Write([]byte(fileContent))
	}
	_ = mw.Close()
	return &buf, mw.FormDataContentType()
}

// --- Tests ---
func TestAdmin_RequiresAuth(t *testing.T) {
	router := newTestRouter(t, new(mockPostRepo), new(mockUserRepo), new(mockStorage))

	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodGet, "/admin"},
		{http.MethodPost, "/admin"},
		{http.MethodPost, "/delete_post/1"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusFound, rr.Code, "%s %s", tc.method, tc.path)
		assert.Equal(t, "/login", rr.Header().Get("Location"))
	}
}

func TestLogin(t *testing.T) {
	ur := new(mockUserRepo)
	router := newTestRouter(t, new(mockPostRepo), ur, new(mockStorage))

	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.DefaultCost)

	t.Run("ok", func(t *testing.T) {
		ur.ExpectedCalls = nil
		ur.On("GetUserByUsername", mock.Anything, "admin").
			Return(&model.User{ID: 1, Username: "admin", Password: string(hash)}, nil).Once()

		form := url.Values{"username": {"admin"}, "password": {"s3cret"}}
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/admin", rr.Header().Get("Location"))
		assert.NotEmpty(t, rr.Result().Cookies(), "login must set a session cookie")
	})

	t.Run("wrong password", func(t *testing.T) {
		ur.ExpectedCalls = nil
		ur.On("GetUserByUsername", mock.Anything, "admin").
			Return(&model.User{ID: 1, Username: "admin", Password: string(hash)}, nil).Once()

		form := url.Values{"username": {"admin"}, "password": {"nope"}}
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	// неизвестный логин неотличим от неверного пароля
	t.Run("unknown user", func(t *testing.T) {
		ur.ExpectedCalls = nil
		ur.On("GetUserByUsername", mock.Anything, "ghost").
			Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()

		form := url.Values{"username": {"ghost"}, "password": {"x"}}
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAdmin_CreatePost(t *testing.T) {
	t.Run("ok without image", func(t *testing.T) {
		pr := new(mockPostRepo)
		router := newTestRouter(t, pr, new(mockUserRepo), new(mockStorage))

		pr.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Post) bool {
			return p.Title == "Hello" && p.Content == "World" && !p.HasImage()
		})).Return(&model.Post{ID: 1, Title: "Hello", Content: "World"}, nil).Once()

		body, ctype := multipartBody(t, map[string]string{"title": "Hello", "content": "World"}, "", "", "")
		req := httptest.NewRequest(http.MethodPost, "/admin", body)
		req.Header.Set("Content-Type", ctype)
		addAuthCookie(t, req, 1, "test-secret")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/admin", rr.Header().Get("Location"))
		pr.AssertExpectations(t)
	})

	t.Run("ok with image", func(t *testing.T) {
		pr := new(mockPostRepo)
		st := new(mockStorage)
		router := newTestRouter(t, pr, new(mockUserRepo), st)

		st.On("Store", mock.Anything, mock.Anything, mock.Anything, "pic.png", mock.Anything).
			Return(&storage.Ref{File: "pic.png"}, nil).Once()
		pr.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Post) bool {
			return p.ImageFile == "pic.png"
		})).Return(&model.Post{ID: 2, ImageFile: "pic.png"}, nil).Once()

		body, ctype := multipartBody(t, map[string]string{"title": "T", "content": "C"}, "image", "pic.png", "png-bytes")
		req := httptest.NewRequest(http.MethodPost, "/admin", body)
		req.Header.Set("Content-Type", ctype)
		addAuthCookie(t, req, 1, "test-secret")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusFound, rr.Code)
		pr.AssertExpectations(t)
		st.AssertExpectations(t)
	})

	t.Run("validation error", func(t *testing.T) {
		pr := new(mockPostRepo)
		router := newTestRouter(t, pr, new(mockUserRepo), new(mockStorage))
		// админка перерисовывает список и на ошибке валидации
		pr.On("ListAll", mock.Anything).Return([]model.Post{}, nil)

		body, ctype := multipartBody(t, map[string]string{"title": strings.Repeat("A", 81), "content": "x"}, "", "", "")
		req := httptest.NewRequest(http.MethodPost, "/admin", body)
		req.Header.Set("Content-Type", ctype)
		addAuthCookie(t, req, 1, "test-secret")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		pr.AssertNotCalled(t, "Create")
	})

	t.Run("storage failure aborts", func(t *testing.T) {
		pr := new(mockPostRepo)
		st := new(mockStorage)
		router := newTestRouter(t, pr, new(mockUserRepo), st)

		st.On("Store", mock.Anything, mock.Anything, mock.Anything, "pic.png", mock.Anything).
			Return((*storage.Ref)(nil), storage.ErrStorage).Once()
		pr.On("ListAll", mock.Anything).Return([]model.Post{}, nil)

		body, ctype := multipartBody(t, map[string]string{"title": "T", "content": "C"}, "image", "pic.png", "x")
		req := httptest.NewRequest(http.MethodPost, "/admin", body)
		req.Header.Set("Content-Type", ctype)
		addAuthCookie(t, req, 1, "test-secret")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadGateway, rr.Code)
		pr.AssertNotCalled(t, "Create")
	})
}

func TestAdmin_DeletePost(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		pr := new(mockPostRepo)
		router := newTestRouter(t, pr, new(mockUserRepo), new(mockStorage))

		pr.On("GetByID", mock.Anything, int64(99)).Return((*model.Post)(nil), gorm.ErrRecordNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/delete_post/99", nil)
		addAuthCookie(t, req, 1, "test-secret")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("ok even when asset delete fails", func(t *testing.T) {
		pr := new(mockPostRepo)
		st := new(mockStorage)
		router := newTestRouter(t, pr, new(mockUserRepo), st)

		p := &model.Post{ID: 3, ImageFile: "pic.png"}
		pr.On("GetByID", mock.Anything, int64(3)).Return(p, nil).Once()
		st.On("Delete", mock.Anything, mock.Anything).Return(storage.ErrStorage).Once()
		pr.On("Delete", mock.Anything, int64(3)).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/delete_post/3", nil)
		addAuthCookie(t, req, 1, "test-secret")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusFound, rr.Code)
		pr.AssertExpectations(t)
	})
}

func TestPublicPages(t *testing.T) {
	t.Run("blog lists posts", func(t *testing.T) {
		pr := new(mockPostRepo)
		router := newTestRouter(t, pr, new(mockUserRepo), new(mockStorage))

		pr.On("ListAll", mock.Anything).Return([]model.Post{{ID: 1, Title: "Hello", Content: "World"}}, nil).Once()

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/blog", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "blog.html", rr.Body.String())
		pr.AssertExpectations(t)
	})

	t.Run("post detail 404", func(t *testing.T) {
		pr := new(mockPostRepo)
		router := newTestRouter(t, pr, new(mockUserRepo), new(mockStorage))

		pr.On("GetByID", mock.Anything, int64(5)).Return((*model.Post)(nil), gorm.ErrRecordNotFound).Once()

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/post/5", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("post detail bad id", func(t *testing.T) {
		router := newTestRouter(t, new(mockPostRepo), new(mockUserRepo), new(mockStorage))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/post/abc", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("index", func(t *testing.T) {
		router := newTestRouter(t, new(mockPostRepo), new(mockUserRepo), new(mockStorage))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "index.html", rr.Body.String())
	})
}
