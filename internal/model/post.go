package model

import "time"

// Post — запись блога. После создания не редактируется, только удаляется.
//
// Картинка опциональна. Локальный backend заполняет ImageFile,
// S3 — ImageURL и ImageDeleteToken; одновременно обе схемы не используются.
type Post struct {
	ID      int64  `gorm:"primaryKey"`
	Title   string `gorm:"size:80;not null"`
	Content string `gorm:"type:text;not null"`

	ImageFile        string `gorm:"size:255"`
	ImageURL         string `gorm:"size:512"`
	ImageDeleteToken string `gorm:"size:255"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// HasImage — есть ли у поста привязанная картинка (в любой из схем).
func (p *Post) HasImage() bool {
	return p.ImageFile != "" || p.ImageURL != "" || p.ImageDeleteToken != ""
}
