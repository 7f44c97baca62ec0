package models

import "time"

// Profile публичное представление пользователя для ответов API.
type Profile struct {
	ID         string     `json:"id"`
	Login      string     `json:"login"`
	Name       string     `json:"name"`
	Gender     Gender     `json:"gender"`
	Birthday   *string    `json:"birthday,omitempty"`
	Admin      bool       `json:"admin"`
	Active     bool       `json:"active"`
	CreatedOn  time.Time  `json:"created_on"`
	CreatedBy  string     `json:"created_by"`
	ModifiedOn *time.Time `json:"modified_on,omitempty"`
	ModifiedBy *string    `json:"modified_by,omitempty"`
	RevokedOn  *time.Time `json:"revoked_on,omitempty"`
	RevokedBy  *string    `json:"revoked_by,omitempty"`
}

// Profile собирает профиль из записи пользователя.
func (u *User) Profile() Profile {
	c := u.Clone()
	p := Profile{
		ID:         c.ID,
		Login:      c.Login,
		Name:       c.Name,
		Gender:     c.Gender,
		Admin:      c.Admin,
		Active:     c.Active(),
		CreatedOn:  c.CreatedOn,
		CreatedBy:  c.CreatedBy,
		ModifiedOn: c.ModifiedOn,
		ModifiedBy: c.ModifiedBy,
		RevokedOn:  c.RevokedOn,
		RevokedBy:  c.RevokedBy,
	}
	if c.Birthday != nil {
		b := c.Birthday.Format(DateLayout)
		p.Birthday = &b
	}
	return p
}
