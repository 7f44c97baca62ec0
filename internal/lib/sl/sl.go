// Package sl содержит вспомогательные атрибуты для логгера slog,
// чтобы поля ошибок и логинов выводились во всех пакетах одинаково.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и текстом ошибки.
//
// Пример:
//
//	log.Error("failed to create user", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Login возвращает атрибут с логином пользователя.
func Login(login string) slog.Attr {
	return slog.String("login", login)
}
