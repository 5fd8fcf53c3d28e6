package service

import "errors"

var (
	// ErrValidation — пустой или слишком длинный ввод; отклоняется до
	// любых обращений к БД и хранилищу.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound — пост с таким id не существует.
	ErrNotFound = errors.New("post not found")

	// ErrInvalidCredentials — неверные учётные данные. Одна ошибка и для
	// неизвестного логина, и для неверного пароля, чтобы не раскрывать
	// существование аккаунта.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
