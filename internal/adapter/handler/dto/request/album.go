package request

import (
	"time"

	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/patch"
)

// UserRef points at a user by id, as in {"user": {"id": "..."}}.
type UserRef struct {
	ID string `json:"id" binding:"required"`
}

type AlbumRequest struct {
	ID          *int64     `json:"id"`
	Title       string     `json:"title" binding:"required"`
	Description *string    `json:"description"`
	Created     *time.Time `json:"created"`
	User        *UserRef   `json:"user"`
}

func (r AlbumRequest) UserID() *string {
	if r.User == nil {
		return nil
	}
	return &r.User.ID
}

type PatchAlbumRequest struct {
	ID          *int64                 `json:"id"`
	Title       patch.Field[string]    `json:"title"`
	Description patch.Field[string]    `json:"description"`
	Created     patch.Field[time.Time] `json:"created"`
	User        patch.Field[UserRef]   `json:"user"`
}

func (r PatchAlbumRequest) UserID() patch.Field[string] {
	if r.User.IsNull() {
		return patch.Null[string]()
	}
	if !r.User.Set {
		return patch.Field[string]{}
	}
	return patch.Of(r.User.Value.ID)
}
