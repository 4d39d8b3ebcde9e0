package entity

import "time"

// User mirrors the identity provider account; ID is the token subject.
type User struct {
	ID               string
	Login            string
	FirstName        *string
	LastName         *string
	Email            *string
	ImageURL         *string
	Activated        bool
	LangKey          *string
	CreatedDate      *time.Time
	LastModifiedDate *time.Time
}

func NewUser(id, login string) *User {
	now := time.Now().UTC()
	return &User{
		ID:               id,
		Login:            login,
		Activated:        true,
		CreatedDate:      &now,
		LastModifiedDate: &now,
	}
}
