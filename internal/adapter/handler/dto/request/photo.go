package request

import (
	"time"

	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/patch"
)

type AlbumRef struct {
	ID int64 `json:"id" binding:"required"`
}

type TagRef struct {
	ID int64 `json:"id" binding:"required"`
}

// PhotoRequest carries the image as base64 in "image", like the web client
// sends it.
type PhotoRequest struct {
	ID               *int64     `json:"id"`
	Title            string     `json:"title" binding:"required"`
	Description      *string    `json:"description"`
	Image            []byte     `json:"image"`
	ImageContentType *string    `json:"imageContentType"`
	Height           *int       `json:"height" binding:"omitempty,min=0"`
	Width            *int       `json:"width" binding:"omitempty,min=0"`
	Taken            *time.Time `json:"taken"`
	Uploaded         *time.Time `json:"uploaded"`
	Album            *AlbumRef  `json:"album"`
	Tags             []TagRef   `json:"tags" binding:"dive"`
}

func (r PhotoRequest) AlbumID() *int64 {
	if r.Album == nil {
		return nil
	}
	return &r.Album.ID
}

func (r PhotoRequest) TagIDs() []int64 {
	return tagIDs(r.Tags)
}

type PatchPhotoRequest struct {
	ID               *int64                 `json:"id"`
	Title            patch.Field[string]    `json:"title"`
	Description      patch.Field[string]    `json:"description"`
	Image            patch.Field[[]byte]    `json:"image"`
	ImageContentType patch.Field[string]    `json:"imageContentType"`
	Height           patch.Field[int]       `json:"height"`
	Width            patch.Field[int]       `json:"width"`
	Taken            patch.Field[time.Time] `json:"taken"`
	Uploaded         patch.Field[time.Time] `json:"uploaded"`
	Album            patch.Field[AlbumRef]  `json:"album"`
	Tags             patch.Field[[]TagRef]  `json:"tags"`
}

func (r PatchPhotoRequest) AlbumID() patch.Field[int64] {
	if r.Album.IsNull() {
		return patch.Null[int64]()
	}
	if !r.Album.Set {
		return patch.Field[int64]{}
	}
	return patch.Of(r.Album.Value.ID)
}

// TagIDs treats an explicit null like an empty list.
func (r PatchPhotoRequest) TagIDs() patch.Field[[]int64] {
	if !r.Tags.Set {
		return patch.Field[[]int64]{}
	}
	if r.Tags.Value == nil {
		return patch.Of([]int64{})
	}
	return patch.Of(tagIDs(*r.Tags.Value))
}

func tagIDs(refs []TagRef) []int64 {
	ids := make([]int64, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}
	return ids
}
