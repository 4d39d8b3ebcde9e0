package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/marcos-nsantos/flickr2-backend/internal/adapter/handler"
	"github.com/marcos-nsantos/flickr2-backend/internal/domain"
	"github.com/marcos-nsantos/flickr2-backend/internal/domain/entity"
	"github.com/marcos-nsantos/flickr2-backend/internal/mocks"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/pagination"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/patch"
)

func tagRouter(t *testing.T) (*gin.Engine, *mocks.MockTagService, *mocks.MockPhotoService) {
	ctrl := gomock.NewController(t)
	tagSvc := mocks.NewMockTagService(ctrl)
	photoSvc := mocks.NewMockPhotoService(ctrl)
	h := handler.NewTagHandler(tagSvc, photoSvc, alerts)

	router := setupRouter()
	router.POST("/api/tags", h.Create)
	router.PUT("/api/tags/:id", h.Update)
	router.PATCH("/api/tags/:id", h.Patch)
	router.GET("/api/tags", h.List)
	router.GET("/api/tags/:id", h.Get)
	router.GET("/api/tags/:id/photos", h.Photos)
	router.DELETE("/api/tags/:id", h.Delete)
	return router, tagSvc, photoSvc
}

func TestTagHandler_Create(t *testing.T) {
	t.Run("creates tag", func(t *testing.T) {
		router, tagSvc, _ := tagRouter(t)

		tagSvc.EXPECT().Create(gomock.Any(), "sea").Return(&entity.Tag{ID: 7, Name: "sea"}, nil)

		w := do(router, http.MethodPost, "/api/tags", `{"name":"sea"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "flickr2App.tag.created", w.Header().Get("X-flickr2App-alert"))
		resp := decode[map[string]any](t, w)
		assert.Equal(t, float64(7), resp["id"])
	})

	t.Run("missing name", func(t *testing.T) {
		router, _, _ := tagRouter(t)

		w := do(router, http.MethodPost, "/api/tags", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTagHandler_Update(t *testing.T) {
	router, tagSvc, _ := tagRouter(t)

	tagSvc.EXPECT().Update(gomock.Any(), int64(7), "ocean").Return(&entity.Tag{ID: 7, Name: "ocean"}, nil)

	w := do(router, http.MethodPut, "/api/tags/7", `{"id":7,"name":"ocean"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ocean", decode[map[string]any](t, w)["name"])
}

func TestTagHandler_Patch(t *testing.T) {
	t.Run("applies name", func(t *testing.T) {
		router, tagSvc, _ := tagRouter(t)

		tagSvc.EXPECT().Patch(gomock.Any(), int64(7), patch.Of("ocean")).Return(&entity.Tag{ID: 7, Name: "ocean"}, nil)

		w := do(router, http.MethodPatch, "/api/tags/7", `{"id":7,"name":"ocean"}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing tag", func(t *testing.T) {
		router, tagSvc, _ := tagRouter(t)

		tagSvc.EXPECT().Patch(gomock.Any(), int64(7), gomock.Any()).Return(nil, domain.ErrTagNotFound)

		w := do(router, http.MethodPatch, "/api/tags/7", `{"id":7,"name":"ocean"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "idnotfound", decode[map[string]any](t, w)["errorKey"])
	})
}

func TestTagHandler_List(t *testing.T) {
	router, tagSvc, _ := tagRouter(t)

	tagSvc.EXPECT().List(gomock.Any(), pagination.NewPageable(0, 20, nil)).
		Return([]entity.Tag{{ID: 1, Name: "a"}}, pagination.NewInfo(0, 20, 1), nil)

	w := do(router, http.MethodGet, "/api/tags", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-Total-Count"))
}

func TestTagHandler_Get(t *testing.T) {
	router, tagSvc, _ := tagRouter(t)

	tagSvc.EXPECT().Get(gomock.Any(), int64(9)).Return(nil, domain.ErrTagNotFound)

	w := do(router, http.MethodGet, "/api/tags/9", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTagHandler_Photos(t *testing.T) {
	router, _, photoSvc := tagRouter(t)

	photoSvc.EXPECT().ListByTag(gomock.Any(), int64(7)).Return([]entity.Photo{{ID: 1}, {ID: 2}}, nil)

	w := do(router, http.MethodGet, "/api/tags/7/photos", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 2)
}

func TestTagHandler_Delete(t *testing.T) {
	t.Run("linked tag", func(t *testing.T) {
		router, tagSvc, _ := tagRouter(t)

		tagSvc.EXPECT().Delete(gomock.Any(), int64(7)).Return(domain.ErrIntegrityViolation)

		w := do(router, http.MethodDelete, "/api/tags/7", "")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "integrityviolation", decode[map[string]any](t, w)["errorKey"])
	})

	t.Run("deletes tag", func(t *testing.T) {
		router, tagSvc, _ := tagRouter(t)

		tagSvc.EXPECT().Delete(gomock.Any(), int64(7)).Return(nil)

		w := do(router, http.MethodDelete, "/api/tags/7", "")

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
