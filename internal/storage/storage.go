package storage

import (
	"context"
	"errors"
	"io"
)

// ErrStorage — сбой бэкенда хранения (диск или удалённый сервис).
var ErrStorage = errors.New("asset storage failure")

// Ref — непрозрачная ссылка на сохранённый ассет. Наполнение зависит
// от бэкенда: диск кладёт File, S3 — URL и DeleteToken.
type Ref struct {
	File        string
	URL         string
	DeleteToken string
}

// IsZero — пустая ссылка (поста без картинки).
func (r Ref) IsZero() bool {
	return r.File == "" && r.URL == "" && r.DeleteToken == ""
}

// Storage — общий контракт хранилища картинок.
type Storage interface {
	// Store сохраняет бинарные данные и возвращает ссылку.
	Store(ctx context.Context, r io.Reader, size int64, name, contentType string) (*Ref, error)
	// Delete удаляет ассет по ссылке. Отсутствие ассета — не ошибка.
	Delete(ctx context.Context, ref Ref) error
	// URL — локатор для отображения ассета в шаблонах.
	URL(ref Ref) string
}
