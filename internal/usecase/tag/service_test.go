package tag_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/marcos-nsantos/flickr2-backend/internal/domain"
	"github.com/marcos-nsantos/flickr2-backend/internal/domain/entity"
	"github.com/marcos-nsantos/flickr2-backend/internal/mocks"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/pagination"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/patch"
	"github.com/marcos-nsantos/flickr2-backend/internal/usecase/tag"
)

func TestService_Create(t *testing.T) {
	t.Run("assigns identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		tagRepo := mocks.NewMockTagRepository(ctrl)
		svc := tag.NewService(tagRepo)

		tagRepo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, tg *entity.Tag) error {
			tg.ID = 7
			return nil
		})

		tg, err := svc.Create(context.Background(), "sea")

		require.NoError(t, err)
		assert.Equal(t, int64(7), tg.ID)
		assert.Equal(t, "sea", tg.Name)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := tag.NewService(mocks.NewMockTagRepository(ctrl))

		_, err := svc.Create(context.Background(), "")

		assert.ErrorIs(t, err, domain.ErrNameRequired)
	})
}

func TestService_Update(t *testing.T) {
	t.Run("renames existing tag", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		tagRepo := mocks.NewMockTagRepository(ctrl)
		svc := tag.NewService(tagRepo)

		tagRepo.EXPECT().ExistsByID(gomock.Any(), int64(7)).Return(true, nil)
		tagRepo.EXPECT().Save(gomock.Any(), &entity.Tag{ID: 7, Name: "ocean"}).Return(nil)

		tg, err := svc.Update(context.Background(), 7, "ocean")

		require.NoError(t, err)
		assert.Equal(t, "ocean", tg.Name)
	})

	t.Run("missing tag", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		tagRepo := mocks.NewMockTagRepository(ctrl)
		svc := tag.NewService(tagRepo)

		tagRepo.EXPECT().ExistsByID(gomock.Any(), int64(7)).Return(false, nil)

		_, err := svc.Update(context.Background(), 7, "ocean")

		assert.ErrorIs(t, err, domain.ErrTagNotFound)
	})
}

func TestService_Patch(t *testing.T) {
	t.Run("absent name leaves tag unchanged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		tagRepo := mocks.NewMockTagRepository(ctrl)
		svc := tag.NewService(tagRepo)

		tagRepo.EXPECT().FindByID(gomock.Any(), int64(7)).Return(&entity.Tag{ID: 7, Name: "sea"}, nil)

		tg, err := svc.Patch(context.Background(), 7, patch.Field[string]{})

		require.NoError(t, err)
		assert.Equal(t, "sea", tg.Name)
	})

	t.Run("applies present name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		tagRepo := mocks.NewMockTagRepository(ctrl)
		svc := tag.NewService(tagRepo)

		tagRepo.EXPECT().FindByID(gomock.Any(), int64(7)).Return(&entity.Tag{ID: 7, Name: "sea"}, nil)
		tagRepo.EXPECT().Save(gomock.Any(), &entity.Tag{ID: 7, Name: "ocean"}).Return(nil)

		tg, err := svc.Patch(context.Background(), 7, patch.Of("ocean"))

		require.NoError(t, err)
		assert.Equal(t, "ocean", tg.Name)
	})

	t.Run("rejects null name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := tag.NewService(mocks.NewMockTagRepository(ctrl))

		_, err := svc.Patch(context.Background(), 7, patch.Null[string]())

		assert.ErrorIs(t, err, domain.ErrNameRequired)
	})
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tagRepo := mocks.NewMockTagRepository(ctrl)
	svc := tag.NewService(tagRepo)
	page := pagination.NewPageable(0, 1, nil)

	tagRepo.EXPECT().Count(gomock.Any()).Return(int64(2), nil)
	tagRepo.EXPECT().FindAll(gomock.Any(), &page).Return([]entity.Tag{{ID: 1, Name: "a"}}, nil)

	tags, info, err := svc.List(context.Background(), page)

	require.NoError(t, err)
	assert.Len(t, tags, 1)
	assert.True(t, info.HasNext)
}

func TestService_Delete(t *testing.T) {
	t.Run("linked tag is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		tagRepo := mocks.NewMockTagRepository(ctrl)
		svc := tag.NewService(tagRepo)

		tagRepo.EXPECT().DeleteByID(gomock.Any(), int64(7)).Return(domain.ErrIntegrityViolation)

		err := svc.Delete(context.Background(), 7)

		assert.ErrorIs(t, err, domain.ErrIntegrityViolation)
	})
}
