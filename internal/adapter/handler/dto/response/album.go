package response

import (
	"time"

	"github.com/marcos-nsantos/flickr2-backend/internal/domain/entity"
)

type UserRefResponse struct {
	ID    string `json:"id"`
	Login string `json:"login"`
}

type AlbumResponse struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	Created     *time.Time       `json:"created"`
	User        *UserRefResponse `json:"user"`
}

func AlbumFromEntity(a *entity.Album) AlbumResponse {
	resp := AlbumResponse{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Created:     a.Created,
	}
	switch {
	case a.User != nil:
		resp.User = &UserRefResponse{ID: a.User.ID, Login: a.User.Login}
	case a.UserID != nil:
		resp.User = &UserRefResponse{ID: *a.UserID}
	}
	return resp
}

func AlbumsFromEntities(albums []entity.Album) []AlbumResponse {
	result := make([]AlbumResponse, 0, len(albums))
	for i := range albums {
		result = append(result, AlbumFromEntity(&albums[i]))
	}
	return result
}
