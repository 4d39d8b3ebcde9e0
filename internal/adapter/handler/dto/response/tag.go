package response

import "github.com/marcos-nsantos/flickr2-backend/internal/domain/entity"

type TagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TagFromEntity(t *entity.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name}
}

func TagsFromEntities(tags []entity.Tag) []TagResponse {
	result := make([]TagResponse, 0, len(tags))
	for i := range tags {
		result = append(result, TagFromEntity(&tags[i]))
	}
	return result
}
