package response

import (
	"time"

	"github.com/marcos-nsantos/flickr2-backend/internal/domain/entity"
)

type AccountResponse struct {
	ID               string     `json:"id"`
	Login            string     `json:"login"`
	FirstName        *string    `json:"firstName"`
	LastName         *string    `json:"lastName"`
	Email            *string    `json:"email"`
	ImageURL         *string    `json:"imageUrl"`
	Activated        bool       `json:"activated"`
	LangKey          *string    `json:"langKey"`
	CreatedDate      *time.Time `json:"createdDate"`
	LastModifiedDate *time.Time `json:"lastModifiedDate"`
	Authorities      []string   `json:"authorities"`
}

func AccountFromEntity(u *entity.User, authorities []string) AccountResponse {
	if authorities == nil {
		authorities = []string{}
	}
	return AccountResponse{
		ID:               u.ID,
		Login:            u.Login,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Email:            u.Email,
		ImageURL:         u.ImageURL,
		Activated:        u.Activated,
		LangKey:          u.LangKey,
		CreatedDate:      u.CreatedDate,
		LastModifiedDate: u.LastModifiedDate,
		Authorities:      authorities,
	}
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID    string `json:"id"`
	Login string `json:"login"`
}

func UsersFromEntities(users []entity.User) []UserResponse {
	result := make([]UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, UserResponse{ID: u.ID, Login: u.Login})
	}
	return result
}

type AuthInfoResponse struct {
	Issuer   string `json:"issuer"`
	ClientID string `json:"clientId"`
}

func AdminUsersFromEntities(users []entity.User) []AccountResponse {
	result := make([]AccountResponse, 0, len(users))
	for i := range users {
		result = append(result, AccountFromEntity(&users[i], nil))
	}
	return result
}
