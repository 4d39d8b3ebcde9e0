package album_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/marcos-nsantos/flickr2-backend/internal/domain"
	"github.com/marcos-nsantos/flickr2-backend/internal/domain/entity"
	"github.com/marcos-nsantos/flickr2-backend/internal/mocks"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/pagination"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/patch"
	"github.com/marcos-nsantos/flickr2-backend/internal/usecase/album"
)

func ptr[T any](v T) *T {
	return &v
}

func TestService_Create(t *testing.T) {
	t.Run("saves and reloads the album", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		albumRepo := mocks.NewMockAlbumRepository(ctrl)
		svc := album.NewService(albumRepo)
		ctx := context.Background()

		albumRepo.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, a *entity.Album) error {
			assert.Equal(t, "Holidays", a.Title)
			assert.Equal(t, "user-1", *a.UserID)
			a.ID = 5
			return nil
		})
		albumRepo.EXPECT().FindByID(ctx, int64(5)).Return(&entity.Album{
			ID:     5,
			Title:  "Holidays",
			UserID: ptr("user-1"),
			User:   &entity.User{ID: "user-1", Login: "alice"},
		}, nil)

		a, err := svc.Create(ctx, album.CreateInput{Title: "Holidays", UserID: ptr("user-1")})

		require.NoError(t, err)
		assert.Equal(t, int64(5), a.ID)
		assert.Equal(t, "alice", a.User.Login)
	})

	t.Run("rejects blank title", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := album.NewService(mocks.NewMockAlbumRepository(ctrl))

		_, err := svc.Create(context.Background(), album.CreateInput{Title: "  "})

		assert.ErrorIs(t, err, domain.ErrTitleRequired)
	})

	t.Run("surfaces integrity violations", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		albumRepo := mocks.NewMockAlbumRepository(ctrl)
		svc := album.NewService(albumRepo)

		albumRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(domain.ErrIntegrityViolation)

		_, err := svc.Create(context.Background(), album.CreateInput{Title: "x", UserID: ptr("ghost")})

		assert.ErrorIs(t, err, domain.ErrIntegrityViolation)
	})
}

func TestService_Update(t *testing.T) {
	t.Run("replaces every field", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		albumRepo := mocks.NewMockAlbumRepository(ctrl)
		svc := album.NewService(albumRepo)
		ctx := context.Background()

		albumRepo.EXPECT().ExistsByID(ctx, int64(3)).Return(true, nil)
		albumRepo.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, a *entity.Album) error {
			assert.Equal(t, int64(3), a.ID)
			assert.Nil(t, a.Description)
			assert.Nil(t, a.UserID)
			return nil
		})
		albumRepo.EXPECT().FindByID(ctx, int64(3)).Return(&entity.Album{ID: 3, Title: "New"}, nil)

		a, err := svc.Update(ctx, album.UpdateInput{ID: 3, Title: "New"})

		require.NoError(t, err)
		assert.Equal(t, "New", a.Title)
	})

	t.Run("returns not found before saving", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		albumRepo := mocks.NewMockAlbumRepository(ctrl)
		svc := album.NewService(albumRepo)

		albumRepo.EXPECT().ExistsByID(gomock.Any(), int64(99)).Return(false, nil)

		_, err := svc.Update(context.Background(), album.UpdateInput{ID: 99, Title: "x"})

		assert.ErrorIs(t, err, domain.ErrAlbumNotFound)
	})
}

func TestService_Patch(t *testing.T) {
	t.Run("overwrites only present fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		albumRepo := mocks.NewMockAlbumRepository(ctrl)
		svc := album.NewService(albumRepo)
		ctx := context.Background()

		stored := &entity.Album{ID: 1, Title: "Old", Description: ptr("keep"), UserID: ptr("user-1")}
		albumRepo.EXPECT().FindByID(ctx, int64(1)).Return(stored, nil)
		albumRepo.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, a *entity.Album) error {
			assert.Equal(t, "New", a.Title)
			assert.Equal(t, "keep", *a.Description)
			assert.Nil(t, a.UserID)
			return nil
		})
		albumRepo.EXPECT().FindByID(ctx, int64(1)).Return(stored, nil)

		_, err := svc.Patch(ctx, album.PatchInput{
			ID:     1,
			Title:  patch.Of("New"),
			UserID: patch.Null[string](),
		})

		require.NoError(t, err)
	})

	t.Run("rejects null title", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := album.NewService(mocks.NewMockAlbumRepository(ctrl))

		_, err := svc.Patch(context.Background(), album.PatchInput{ID: 1, Title: patch.Null[string]()})

		assert.ErrorIs(t, err, domain.ErrTitleRequired)
	})

	t.Run("returns not found for missing album", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		albumRepo := mocks.NewMockAlbumRepository(ctrl)
		svc := album.NewService(albumRepo)

		albumRepo.EXPECT().FindByID(gomock.Any(), int64(7)).Return(nil, domain.ErrAlbumNotFound)

		_, err := svc.Patch(context.Background(), album.PatchInput{ID: 7})

		assert.ErrorIs(t, err, domain.ErrAlbumNotFound)
	})
}

func TestService_List(t *testing.T) {
	t.Run("returns page with totals", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		albumRepo := mocks.NewMockAlbumRepository(ctrl)
		svc := album.NewService(albumRepo)
		ctx := context.Background()
		page := pagination.NewPageable(1, 2, nil)

		albumRepo.EXPECT().Count(ctx).Return(int64(5), nil)
		albumRepo.EXPECT().FindAll(ctx, &page).Return([]entity.Album{{ID: 3}, {ID: 4}}, nil)

		albums, info, err := svc.List(ctx, page, false)

		require.NoError(t, err)
		assert.Len(t, albums, 2)
		assert.Equal(t, int64(5), info.TotalItems)
		assert.Equal(t, 3, info.TotalPages)
	})

	t.Run("uses eager variant when requested", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		albumRepo := mocks.NewMockAlbumRepository(ctrl)
		svc := album.NewService(albumRepo)

		albumRepo.EXPECT().Count(gomock.Any()).Return(int64(0), nil)
		albumRepo.EXPECT().FindAllWithEagerRelationships(gomock.Any(), gomock.Any()).Return([]entity.Album{}, nil)

		_, _, err := svc.List(context.Background(), pagination.NewPageable(0, 20, nil), true)

		require.NoError(t, err)
	})

	t.Run("propagates invalid sort", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		albumRepo := mocks.NewMockAlbumRepository(ctrl)
		svc := album.NewService(albumRepo)

		albumRepo.EXPECT().Count(gomock.Any()).Return(int64(1), nil)
		albumRepo.EXPECT().FindAll(gomock.Any(), gomock.Any()).Return(nil, domain.ErrInvalidQuery)

		_, _, err := svc.List(context.Background(), pagination.NewPageable(0, 20, nil), false)

		assert.ErrorIs(t, err, domain.ErrInvalidQuery)
	})
}

func TestService_ListByUser(t *testing.T) {
	t.Run("nil user lists unowned albums", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		albumRepo := mocks.NewMockAlbumRepository(ctrl)
		svc := album.NewService(albumRepo)

		albumRepo.EXPECT().FindAllWhereUserIsNull(gomock.Any()).Return([]entity.Album{{ID: 1}}, nil)

		albums, err := svc.ListByUser(context.Background(), nil)

		require.NoError(t, err)
		assert.Len(t, albums, 1)
	})

	t.Run("filters by owner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		albumRepo := mocks.NewMockAlbumRepository(ctrl)
		svc := album.NewService(albumRepo)

		albumRepo.EXPECT().FindByUser(gomock.Any(), "user-1").Return([]entity.Album{}, nil)

		albums, err := svc.ListByUser(context.Background(), ptr("user-1"))

		require.NoError(t, err)
		assert.Empty(t, albums)
	})
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	albumRepo := mocks.NewMockAlbumRepository(ctrl)
	svc := album.NewService(albumRepo)

	albumRepo.EXPECT().DeleteByID(gomock.Any(), int64(2)).Return(domain.ErrIntegrityViolation)

	err := svc.Delete(context.Background(), 2)

	assert.True(t, errors.Is(err, domain.ErrIntegrityViolation))
}
