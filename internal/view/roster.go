package view

import (
	"encoding/json"
	"os"
)

// Member — участник команды на странице /team.
type Member struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Photo string `json:"photo,omitempty"`
}

// Roster — состав команды по группам.
type Roster map[string][]Member

// LoadRoster читает состав из JSON-файла. При любой ошибке возвращает
// пустой состав и ошибку: страница команды должна открываться всегда.
func LoadRoster(path string) (Roster, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Roster{}, err
	}
	var r Roster
	if err := json.Unmarshal(b, &r); err != nil {
		return Roster{}, err
	}
	return r, nil
}
