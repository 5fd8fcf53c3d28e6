package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"teamblog/internal/model"
	"teamblog/internal/repo"
)

// Bootstrap готовит систему к работе: схема БД плюс ровно один
// администратор. Безопасно запускается сколько угодно раз.
type Bootstrap struct {
	db       *gorm.DB
	users    repo.UserRepository
	username string
	password string
	logger   *zap.SugaredLogger
}

func NewBootstrap(db *gorm.DB, users repo.UserRepository, username, password string, logger *zap.SugaredLogger) *Bootstrap {
	return &Bootstrap{db: db, users: users, username: username, password: password, logger: logger}
}

// EnsureReady выполняет миграции и создаёт администратора, если его ещё
// нет. Существующая запись не трогается: повторный запуск с другим
// паролем НЕ перезаписывает хеш.
func (b *Bootstrap) EnsureReady(ctx context.Context) error {
	if err := b.db.WithContext(ctx).AutoMigrate(&model.User{}, &model.Post{}); err != nil {
		return err
	}

	_, err := b.users.GetUserByUsername(ctx, b.username)
	if err == nil {
		return nil // администратор уже есть
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if _, err := b.users.CreateUser(ctx, &model.User{Username: b.username, Password: string(hash)}); err != nil {
		return err
	}
	b.logger.Infow("admin user created", "username", b.username)
	return nil
}
