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
	"github.com/marcos-nsantos/flickr2-backend/internal/usecase/album"
)

func albumRouter(t *testing.T) (*gin.Engine, *mocks.MockAlbumService, *mocks.MockPhotoService) {
	ctrl := gomock.NewController(t)
	albumSvc := mocks.NewMockAlbumService(ctrl)
	photoSvc := mocks.NewMockPhotoService(ctrl)
	h := handler.NewAlbumHandler(albumSvc, photoSvc, alerts)

	router := setupRouter()
	router.POST("/api/albums", h.Create)
	router.PUT("/api/albums/:id", h.Update)
	router.PATCH("/api/albums/:id", h.Patch)
	router.GET("/api/albums", h.List)
	router.GET("/api/albums/:id", h.Get)
	router.GET("/api/albums/:id/photos", h.Photos)
	router.DELETE("/api/albums/:id", h.Delete)
	return router, albumSvc, photoSvc
}

func TestAlbumHandler_Create(t *testing.T) {
	t.Run("creates album with owner", func(t *testing.T) {
		router, albumSvc, _ := albumRouter(t)

		albumSvc.EXPECT().Create(gomock.Any(), album.CreateInput{Title: "Trip", UserID: ptr("user-1")}).
			Return(&entity.Album{
				ID:     12,
				Title:  "Trip",
				UserID: ptr("user-1"),
				User:   &entity.User{ID: "user-1", Login: "alice"},
			}, nil)

		w := do(router, http.MethodPost, "/api/albums", `{"title":"Trip","user":{"id":"user-1"}}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "/api/albums/12", w.Header().Get("Location"))
		assert.Equal(t, "flickr2App.album.created", w.Header().Get("X-flickr2App-alert"))
		assert.Equal(t, "12", w.Header().Get("X-flickr2App-params"))
		resp := decode[map[string]any](t, w)
		assert.Equal(t, "alice", resp["user"].(map[string]any)["login"])
	})

	t.Run("rejects body with id", func(t *testing.T) {
		router, _, _ := albumRouter(t)

		w := do(router, http.MethodPost, "/api/albums", `{"id":1,"title":"Trip"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "error.idexists", w.Header().Get("X-flickr2App-error"))
		resp := decode[map[string]any](t, w)
		assert.Equal(t, "album", resp["entityName"])
		assert.Equal(t, "idexists", resp["errorKey"])
	})

	t.Run("rejects missing title before touching the store", func(t *testing.T) {
		router, _, _ := albumRouter(t)

		w := do(router, http.MethodPost, "/api/albums", `{"description":"no title"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown owner is a conflict", func(t *testing.T) {
		router, albumSvc, _ := albumRouter(t)

		albumSvc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, domain.ErrIntegrityViolation)

		w := do(router, http.MethodPost, "/api/albums", `{"title":"Trip","user":{"id":"ghost"}}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "error.integrityviolation", w.Header().Get("X-flickr2App-error"))
	})
}

func TestAlbumHandler_Update(t *testing.T) {
	t.Run("updates album", func(t *testing.T) {
		router, albumSvc, _ := albumRouter(t)

		albumSvc.EXPECT().Update(gomock.Any(), album.UpdateInput{ID: 3, Title: "New"}).
			Return(&entity.Album{ID: 3, Title: "New"}, nil)

		w := do(router, http.MethodPut, "/api/albums/3", `{"id":3,"title":"New"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "flickr2App.album.updated", w.Header().Get("X-flickr2App-alert"))
	})

	t.Run("null body id", func(t *testing.T) {
		router, _, _ := albumRouter(t)

		w := do(router, http.MethodPut, "/api/albums/3", `{"title":"New"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "idnull", decode[map[string]any](t, w)["errorKey"])
	})

	t.Run("mismatched body id", func(t *testing.T) {
		router, _, _ := albumRouter(t)

		w := do(router, http.MethodPut, "/api/albums/3", `{"id":4,"title":"New"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "idinvalid", decode[map[string]any](t, w)["errorKey"])
	})

	t.Run("missing album", func(t *testing.T) {
		router, albumSvc, _ := albumRouter(t)

		albumSvc.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil, domain.ErrAlbumNotFound)

		w := do(router, http.MethodPut, "/api/albums/3", `{"id":3,"title":"New"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "idnotfound", decode[map[string]any](t, w)["errorKey"])
	})
}

func TestAlbumHandler_Patch(t *testing.T) {
	t.Run("passes presence of fields", func(t *testing.T) {
		router, albumSvc, _ := albumRouter(t)

		albumSvc.EXPECT().Patch(gomock.Any(), album.PatchInput{
			ID:          3,
			Description: patch.Null[string](),
			UserID:      patch.Of("user-2"),
		}).Return(&entity.Album{ID: 3, Title: "Kept", UserID: ptr("user-2")}, nil)

		w := do(router, http.MethodPatch, "/api/albums/3", `{"id":3,"description":null,"user":{"id":"user-2"}}`)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decode[map[string]any](t, w)
		assert.Equal(t, "Kept", resp["title"])
	})

	t.Run("null title is rejected", func(t *testing.T) {
		router, albumSvc, _ := albumRouter(t)

		albumSvc.EXPECT().Patch(gomock.Any(), gomock.Any()).Return(nil, domain.ErrTitleRequired)

		w := do(router, http.MethodPatch, "/api/albums/3", `{"id":3,"title":null}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAlbumHandler_List(t *testing.T) {
	t.Run("writes paging headers", func(t *testing.T) {
		router, albumSvc, _ := albumRouter(t)

		page := pagination.NewPageable(1, 2, []pagination.Order{{Property: "title", Direction: pagination.Desc}})
		albumSvc.EXPECT().List(gomock.Any(), page, false).
			Return([]entity.Album{{ID: 3}, {ID: 4}}, pagination.NewInfo(1, 2, 5), nil)

		w := do(router, http.MethodGet, "/api/albums?page=1&size=2&sort=title,desc", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "5", w.Header().Get("X-Total-Count"))
		assert.Contains(t, w.Header().Get("Link"), `rel="next"`)
		assert.Len(t, decode[[]map[string]any](t, w), 2)
	})

	t.Run("accepts eagerload", func(t *testing.T) {
		router, albumSvc, _ := albumRouter(t)

		albumSvc.EXPECT().List(gomock.Any(), gomock.Any(), true).
			Return([]entity.Album{}, pagination.NewInfo(0, 20, 0), nil)

		w := do(router, http.MethodGet, "/api/albums?eagerload=true", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("filters unowned albums", func(t *testing.T) {
		router, albumSvc, _ := albumRouter(t)

		albumSvc.EXPECT().ListByUser(gomock.Any(), (*string)(nil)).Return([]entity.Album{{ID: 1}}, nil)

		w := do(router, http.MethodGet, "/api/albums?filter=user-is-null", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]map[string]any](t, w), 1)
	})

	t.Run("filters by owner", func(t *testing.T) {
		router, albumSvc, _ := albumRouter(t)

		albumSvc.EXPECT().ListByUser(gomock.Any(), ptr("user-1")).Return([]entity.Album{}, nil)

		w := do(router, http.MethodGet, "/api/albums?userId=user-1", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown sort property", func(t *testing.T) {
		router, albumSvc, _ := albumRouter(t)

		albumSvc.EXPECT().List(gomock.Any(), gomock.Any(), false).Return(nil, nil, domain.ErrInvalidQuery)

		w := do(router, http.MethodGet, "/api/albums?sort=nope", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative page", func(t *testing.T) {
		router, _, _ := albumRouter(t)

		w := do(router, http.MethodGet, "/api/albums?page=-1", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAlbumHandler_Get(t *testing.T) {
	t.Run("returns album", func(t *testing.T) {
		router, albumSvc, _ := albumRouter(t)

		albumSvc.EXPECT().Get(gomock.Any(), int64(3)).Return(&entity.Album{ID: 3, Title: "Trip"}, nil)

		w := do(router, http.MethodGet, "/api/albums/3", "")

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decode[map[string]any](t, w)
		assert.Equal(t, "Trip", resp["title"])
		assert.Nil(t, resp["user"])
	})

	t.Run("missing album", func(t *testing.T) {
		router, albumSvc, _ := albumRouter(t)

		albumSvc.EXPECT().Get(gomock.Any(), int64(3)).Return(nil, domain.ErrAlbumNotFound)

		w := do(router, http.MethodGet, "/api/albums/3", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		router, _, _ := albumRouter(t)

		w := do(router, http.MethodGet, "/api/albums/abc", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAlbumHandler_Photos(t *testing.T) {
	router, _, photoSvc := albumRouter(t)

	photoSvc.EXPECT().ListByAlbum(gomock.Any(), ptr(int64(3))).Return([]entity.Photo{{ID: 1, Title: "a"}}, nil)

	w := do(router, http.MethodGet, "/api/albums/3/photos", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)
}

func TestAlbumHandler_Delete(t *testing.T) {
	t.Run("deletes album", func(t *testing.T) {
		router, albumSvc, _ := albumRouter(t)

		albumSvc.EXPECT().Delete(gomock.Any(), int64(3)).Return(nil)

		w := do(router, http.MethodDelete, "/api/albums/3", "")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "flickr2App.album.deleted", w.Header().Get("X-flickr2App-alert"))
	})

	t.Run("missing album", func(t *testing.T) {
		router, albumSvc, _ := albumRouter(t)

		albumSvc.EXPECT().Delete(gomock.Any(), int64(3)).Return(domain.ErrAlbumNotFound)

		w := do(router, http.MethodDelete, "/api/albums/3", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("album with photos", func(t *testing.T) {
		router, albumSvc, _ := albumRouter(t)

		albumSvc.EXPECT().Delete(gomock.Any(), int64(3)).Return(domain.ErrIntegrityViolation)

		w := do(router, http.MethodDelete, "/api/albums/3", "")

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
