// Package models содержит доменную модель пользователя сервиса учётных записей:
// саму запись, частичное обновление (patch), результат изменения и профиль,
// который отдаётся наружу. Хэш пароля в профиль никогда не попадает.
package models

import (
	"strings"
	"time"
)

// DateLayout формат даты рождения во внешнем API.
const DateLayout = "2006-01-02"

// SystemLogin используется как автор записей, созданных самим сервисом.
const SystemLogin = "system"

// Gender пол пользователя.
type Gender string

const (
	GenderFemale  Gender = "female"
	GenderMale    Gender = "male"
	GenderUnknown Gender = "unknown"
)

// Valid сообщает, входит ли значение в перечисление.
func (g Gender) Valid() bool {
	switch g {
	case GenderFemale, GenderMale, GenderUnknown:
		return true
	}
	return false
}

// User представляет учётную запись пользователя.
//
// RevokedOn и RevokedBy всегда заданы или сброшены вместе,
// так же как ModifiedOn и ModifiedBy.
type User struct {
	ID           string     // Уникальный идентификатор записи
	Login        string     // Логин, уникален без учёта регистра
	PasswordHash string     // bcrypt-хэш пароля
	Name         string     // Отображаемое имя
	Gender       Gender     // Пол
	Birthday     *time.Time // Дата рождения (опционально)
	Admin        bool       // Признак администратора, задаётся только при создании
	CreatedOn    time.Time
	CreatedBy    string
	ModifiedOn   *time.Time
	ModifiedBy   *string
	RevokedOn    *time.Time
	RevokedBy    *string
}

// Active true, пока запись не отозвана (мягко удалена).
func (u *User) Active() bool {
	return u.RevokedOn == nil
}

// Clone возвращает копию записи, не разделяющую указатели с исходной.
func (u *User) Clone() User {
	c := *u
	c.Birthday = cloneTime(u.Birthday)
	c.ModifiedOn = cloneTime(u.ModifiedOn)
	c.ModifiedBy = cloneString(u.ModifiedBy)
	c.RevokedOn = cloneTime(u.RevokedOn)
	c.RevokedBy = cloneString(u.RevokedBy)
	return c
}

// CanonicalLogin приводит логин к виду, по которому проверяется уникальность.
func CanonicalLogin(login string) string {
	return strings.ToLower(login)
}

// NewUser входные данные для создания пользователя.
type NewUser struct {
	Login    string
	Password string
	Name     string
	Gender   Gender
	Birthday *time.Time
	Admin    bool
}

// UserPatch частичное обновление: nil означает «поле не передано».
// Признак администратора через patch не меняется.
type UserPatch struct {
	Login    *string
	Password *string
	Name     *string
	Gender   *Gender
	Birthday *time.Time
}

// Empty true, если в patch не передано ни одного поля.
func (p UserPatch) Empty() bool {
	return p.Login == nil && p.Password == nil && p.Name == nil && p.Gender == nil && p.Birthday == nil
}

// ChangeResult итог операции обновления.
type ChangeResult int

const (
	// NoChange обновление успешно, но ни одно поле фактически не изменилось.
	NoChange ChangeResult = iota
	// Modified хотя бы одно поле изменилось.
	Modified
)

func (r ChangeResult) String() string {
	if r == Modified {
		return "modified"
	}
	return "no_change"
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
