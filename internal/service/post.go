package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"teamblog/internal/model"
	"teamblog/internal/repo"
	"teamblog/internal/storage"
)

// Максимальная длина заголовка (в символах, не байтах).
const maxTitleLen = 80

// Upload — пришедший с формы файл картинки.
type Upload struct {
	Reader      io.Reader
	Size        int64
	Name        string
	ContentType string
}

// PostService инкапсулирует жизненный цикл поста вместе с его картинкой.
type PostService struct {
	posts  repo.PostRepository
	store  storage.Storage
	logger *zap.SugaredLogger
}

func NewPostService(posts repo.PostRepository, store storage.Storage, logger *zap.SugaredLogger) *PostService {
	return &PostService{posts: posts, store: store, logger: logger}
}

// List — снимок всех постов, новые сверху.
func (s *PostService) List(ctx context.Context) ([]model.Post, error) {
	return s.posts.ListAll(ctx)
}

// Get возвращает пост или ErrNotFound.
func (s *PostService) Get(ctx context.Context, id int64) (*model.Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create валидирует ввод, сохраняет картинку (если она есть) и затем
// пишет запись. Сбой хранилища прерывает создание целиком: пост без
// заявленной картинки молча не появляется.
func (s *PostService) Create(ctx context.Context, title, content string, upload *Upload) (*model.Post, error) {
	if title == "" || content == "" {
		return nil, fmt.Errorf("%w: title and content must not be empty", ErrValidation)
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return nil, fmt.Errorf("%w: title longer than %d characters", ErrValidation, maxTitleLen)
	}

	post := &model.Post{Title: title, Content: content}

	if upload != nil && upload.Name != "" {
		ref, err := s.store.Store(ctx, upload.Reader, upload.Size, upload.Name, upload.ContentType)
		if err != nil {
			return nil, err
		}
		post.ImageFile = ref.File
		post.ImageURL = ref.URL
		post.ImageDeleteToken = ref.DeleteToken
	}

	return s.posts.Create(ctx, post)
}

// Delete удаляет пост. Картинка чистится best-effort: её ошибка попадает
// в лог, но запись удаляется в любом случае.
func (s *PostService) Delete(ctx context.Context, id int64) error {
	p, err := s.posts.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if p.HasImage() {
		ref := storage.Ref{File: p.ImageFile, URL: p.ImageURL, DeleteToken: p.ImageDeleteToken}
		if err := s.store.Delete(ctx, ref); err != nil {
			s.logger.Warnw("failed to delete post image", "post_id", id, "error", err)
		}
	}

	err = s.posts.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ImageURL — локатор картинки поста для слоя представления.
func (s *PostService) ImageURL(p *model.Post) string {
	if !p.HasImage() {
		return ""
	}
	return s.store.URL(storage.Ref{File: p.ImageFile, URL: p.ImageURL, DeleteToken: p.ImageDeleteToken})
}
