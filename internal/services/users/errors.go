package users

import "errors"

var (
	// ErrUserNotFound запись с таким логином отсутствует.
	ErrUserNotFound = errors.New("user not found")
	// ErrLoginExists логин (без учёта регистра) уже занят другой записью,
	// в том числе отозванной.
	ErrLoginExists = errors.New("user with such login already exists")
	// ErrStaleRecord запись изменилась, отозвана или пересоздана
	// после того, как с неё был снят снимок.
	ErrStaleRecord = errors.New("user record changed")
	// ErrInvalidAge отрицательный возраст в фильтре.
	ErrInvalidAge = errors.New("age must not be negative")
)
