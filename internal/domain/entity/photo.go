package entity

import (
	"slices"
	"time"
)

type Photo struct {
	ID               int64
	Title            string
	Description      *string
	Image            []byte
	ImageContentType *string
	Height           *int
	Width            *int
	Taken            *time.Time
	Uploaded         *time.Time
	AlbumID          *int64
	Album            *Album
	Tags             []Tag
}

func NewPhoto(title string) *Photo {
	return &Photo{Title: title, Tags: []Tag{}}
}

func (p *Photo) IsNew() bool {
	return p.ID == 0
}

func (p *Photo) HasImage() bool {
	return len(p.Image) > 0
}

// TagIDs returns the distinct ids of the photo's tags in ascending order.
func (p *Photo) TagIDs() []int64 {
	ids := make([]int64, 0, len(p.Tags))
	for _, t := range p.Tags {
		ids = append(ids, t.ID)
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}
