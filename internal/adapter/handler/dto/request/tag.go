package request

import "github.com/marcos-nsantos/flickr2-backend/internal/pkg/patch"

type TagRequest struct {
	ID   *int64 `json:"id"`
	Name string `json:"name" binding:"required"`
}

type PatchTagRequest struct {
	ID   *int64              `json:"id"`
	Name patch.Field[string] `json:"name"`
}
