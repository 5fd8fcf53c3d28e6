package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Disk — локальное файловое хранилище картинок под каталогом root.
type Disk struct {
	root   string
	prefix string // URL-префикс, под которым root раздаётся как статика
}

// NewDisk создаёт хранилище и каталог загрузок (идемпотентно).
func NewDisk(root, prefix string) (*Disk, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty upload dir", ErrStorage)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create upload dir: %v", ErrStorage, err)
	}
	return &Disk{root: root, prefix: strings.TrimRight(prefix, "/")}, nil
}

// Store пишет файл под санитизированным именем. При коллизии имя
// дополняется коротким uuid-суффиксом вместо молчаливой перезаписи.
func (d *Disk) Store(ctx context.Context, r io.Reader, size int64, name, contentType string) (*Ref, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	safe := SanitizeFilename(name)
	if safe == "" {
		return nil, fmt.Errorf("%w: unusable filename %q", ErrStorage, name)
	}
	if _, err := os.Stat(filepath.Join(d.root, safe)); err == nil {
		safe = disambiguate(safe)
	}

	dst := filepath.Join(d.root, safe)
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", ErrStorage, safe, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(dst) // не оставляем недописанный файл
		return nil, fmt.Errorf("%w: write %s: %v", ErrStorage, safe, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("%w: close %s: %v", ErrStorage, safe, err)
	}

	return &Ref{File: safe}, nil
}

// Delete удаляет файл. Уже отсутствующий файл — не ошибка.
func (d *Disk) Delete(ctx context.Context, ref Ref) error {
	if ref.File == "" {
		return nil
	}
	// повторная санитизация: значение из БД не обязано быть доверенным
	safe := SanitizeFilename(ref.File)
	if safe == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(d.root, safe)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: remove %s: %v", ErrStorage, safe, err)
	}
	return nil
}

// URL — путь под статическим префиксом.
func (d *Disk) URL(ref Ref) string {
	if ref.File == "" {
		return ""
	}
	return d.prefix + "/" + path.Base(ref.File)
}

// disambiguate вставляет короткий суффикс перед расширением.
func disambiguate(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return base + "-" + uuid.NewString()[:8] + ext
}

var _ Storage = (*Disk)(nil)
