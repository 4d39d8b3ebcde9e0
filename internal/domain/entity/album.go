package entity

import "time"

type Album struct {
	ID          int64
	Title       string
	Description *string
	Created     *time.Time
	UserID      *string
	User        *User
}

func NewAlbum(title string, description *string, created *time.Time, userID *string) *Album {
	return &Album{
		Title:       title,
		Description: description,
		Created:     created,
		UserID:      userID,
	}
}

func (a *Album) IsNew() bool {
	return a.ID == 0
}
