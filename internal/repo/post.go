package repo

import (
	"context"

	"gorm.io/gorm"

	"teamblog/internal/model"
)

// PostRepository — контракт доступа к Post для слоя сервиса.
type PostRepository interface {
	// ListAll возвращает все посты: новые сверху, при равном времени —
	// по убыванию id (детерминированный порядок).
	ListAll(ctx context.Context) ([]model.Post, error)

	// GetByID возвращает пост или gorm.ErrRecordNotFound.
	GetByID(ctx context.Context, id int64) (*model.Post, error)

	// Create вставляет запись и возвращает её с заполненным ID.
	Create(ctx context.Context, post *model.Post) (*model.Post, error)

	// Delete удаляет запись. Отсутствующий id — gorm.ErrRecordNotFound.
	Delete(ctx context.Context, id int64) error
}

type postRepo struct {
	db *gorm.DB
}

// NewPostRepository создаёт реализацию репозитория для Post.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepo{db: db}
}

func (r *postRepo) ListAll(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepo) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	var p model.Post
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepo) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (r *postRepo) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&model.Post{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
