package view

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
)

// Templates — рендерер страниц поверх html/template.
// Хендлеры передают сюда только данные, разметка живёт в каталоге шаблонов.
type Templates struct {
	t *template.Template
}

// NewTemplates разбирает все *.html из каталога.
func NewTemplates(dir string) (*Templates, error) {
	t, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Templates{t: t}, nil
}

// Render исполняет шаблон по имени файла (например "blog.html").
func (v *Templates) Render(w io.Writer, name string, data any) error {
	return v.t.ExecuteTemplate(w, name, data)
}
