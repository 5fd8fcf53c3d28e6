package view

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadRoster(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "members.json")
	data := `{"Разработка":[{"name":"Анна","role":"Backend"}],"Редакция":[{"name":"Мария","role":"Редактор"}]}`
	assert.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	r, err := LoadRoster(path)
	assert.NoError(t, err)
	assert.Len(t, r, 2)
	if assert.Len(t, r["Разработка"], 1) {
		assert.Equal(t, "Анна", r["Разработка"][0].Name)
	}
}

// Отсутствующий или битый файл — пустой состав плюс ошибка для лога.
func TestLoadRoster_Degrades(t *testing.T) {
	r, err := LoadRoster(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
	assert.NotNil(t, r)
	assert.Empty(t, r)

	bad := filepath.Join(t.TempDir(), "bad.json")
	assert.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o600))
	r, err = LoadRoster(bad)
	assert.Error(t, err)
	assert.Empty(t, r)
}
