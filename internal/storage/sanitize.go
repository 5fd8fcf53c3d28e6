package storage

import (
	"path/filepath"
	"strings"
)

// SanitizeFilename приводит пользовательское имя файла к безопасному виду:
// отбрасывает каталоги, последовательности "..", ведущие точки и всё,
// кроме букв, цифр, точки, дефиса и подчёркивания.
// Возвращает "" если от имени ничего безопасного не осталось.
func SanitizeFilename(name string) string {
	// сначала отбрасываем каталожную часть (в т.ч. windows-разделители)
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(filepath.Clean("/" + name))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()

	// схлопываем ".." и убираем ведущие точки, чтобы имя не было скрытым
	// и не участвовало в обходе каталогов
	for strings.Contains(out, "..") {
		out = strings.ReplaceAll(out, "..", ".")
	}
	out = strings.TrimLeft(out, ".")

	if out == "" || out == "_" {
		return ""
	}
	return out
}
