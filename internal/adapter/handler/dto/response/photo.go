package response

import (
	"time"

	"github.com/marcos-nsantos/flickr2-backend/internal/domain/entity"
)

type AlbumRefResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title,omitempty"`
}

type PhotoResponse struct {
	ID               int64             `json:"id"`
	Title            string            `json:"title"`
	Description      *string           `json:"description"`
	Image            []byte            `json:"image"`
	ImageContentType *string           `json:"imageContentType"`
	Height           *int              `json:"height"`
	Width            *int              `json:"width"`
	Taken            *time.Time        `json:"taken"`
	Uploaded         *time.Time        `json:"uploaded"`
	Album            *AlbumRefResponse `json:"album"`
	Tags             []TagResponse     `json:"tags"`
}

func PhotoFromEntity(p *entity.Photo) PhotoResponse {
	resp := PhotoResponse{
		ID:               p.ID,
		Title:            p.Title,
		Description:      p.Description,
		Image:            p.Image,
		ImageContentType: p.ImageContentType,
		Height:           p.Height,
		Width:            p.Width,
		Taken:            p.Taken,
		Uploaded:         p.Uploaded,
		Tags:             TagsFromEntities(p.Tags),
	}
	switch {
	case p.Album != nil:
		resp.Album = &AlbumRefResponse{ID: p.Album.ID, Title: p.Album.Title}
	case p.AlbumID != nil:
		resp.Album = &AlbumRefResponse{ID: *p.AlbumID}
	}
	return resp
}

func PhotosFromEntities(photos []entity.Photo) []PhotoResponse {
	result := make([]PhotoResponse, 0, len(photos))
	for i := range photos {
		result = append(result, PhotoFromEntity(&photos[i]))
	}
	return result
}
