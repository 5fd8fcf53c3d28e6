package model

// User — единственный администратор блога. Регистрации нет:
// запись создаётся один раз при bootstrap.
type User struct {
	ID       int64  `gorm:"primaryKey"`
	Username string `gorm:"size:150;uniqueIndex;not null"`
	Password string `gorm:"size:255;not null"` // bcrypt-хеш, не plaintext
}
