package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/flickr2-backend/internal/adapter/repository/postgres"
	"github.com/marcos-nsantos/flickr2-backend/internal/domain"
	"github.com/marcos-nsantos/flickr2-backend/internal/domain/entity"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/pagination"
)

func TestIntegrationTagRepo(t *testing.T) {
	db := SetupTestDB(t)
	defer db.Cleanup(t)

	repo := postgres.NewTagRepo(db.Pool)
	ctx := context.Background()

	t.Run("saves and finds tag", func(t *testing.T) {
		db.Truncate(t)
		tag := &entity.Tag{Name: "sea"}

		require.NoError(t, repo.Save(ctx, tag))
		assert.NotZero(t, tag.ID)

		tag.Name = "ocean"
		require.NoError(t, repo.Save(ctx, tag))

		found, err := repo.FindByID(ctx, tag.ID)
		require.NoError(t, err)
		assert.Equal(t, "ocean", found.Name)
	})

	t.Run("lists with paging", func(t *testing.T) {
		db.Truncate(t)
		for _, name := range []string{"a", "b", "c"} {
			require.NoError(t, repo.Save(ctx, &entity.Tag{Name: name}))
		}
		page := pagination.NewPageable(0, 2, []pagination.Order{{Property: "name", Direction: pagination.Desc}})

		tags, err := repo.FindAll(ctx, &page)

		require.NoError(t, err)
		require.Len(t, tags, 2)
		assert.Equal(t, "c", tags[0].Name)

		total, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
	})

	t.Run("update of missing id returns not found", func(t *testing.T) {
		db.Truncate(t)

		err := repo.Save(ctx, &entity.Tag{ID: 10, Name: "x"})

		assert.ErrorIs(t, err, domain.ErrTagNotFound)
	})

	t.Run("linked tag cannot be deleted", func(t *testing.T) {
		db.Truncate(t)
		tag := &entity.Tag{Name: "sea"}
		require.NoError(t, repo.Save(ctx, tag))
		photo := entity.NewPhoto("Beach")
		photo.Tags = []entity.Tag{*tag}
		require.NoError(t, postgres.NewPhotoRepo(db.Pool).Save(ctx, photo))

		err := repo.DeleteByID(ctx, tag.ID)

		assert.ErrorIs(t, err, domain.ErrIntegrityViolation)
	})

	t.Run("missing tag returns not found", func(t *testing.T) {
		db.Truncate(t)

		_, err := repo.FindByID(ctx, 3)
		assert.ErrorIs(t, err, domain.ErrTagNotFound)

		err = repo.DeleteByID(ctx, 3)
		assert.ErrorIs(t, err, domain.ErrTagNotFound)
	})
}
