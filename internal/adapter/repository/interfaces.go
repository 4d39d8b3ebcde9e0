package repository

import (
	"context"

	"github.com/marcos-nsantos/flickr2-backend/internal/domain/entity"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/pagination"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/repository_mocks.go -package=mocks

// A nil page means the whole result set in store order.

type AlbumRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Album, error)
	FindAll(ctx context.Context, page *pagination.Pageable) ([]entity.Album, error)
	FindAllWithEagerRelationships(ctx context.Context, page *pagination.Pageable) ([]entity.Album, error)
	FindByUser(ctx context.Context, userID string) ([]entity.Album, error)
	FindAllWhereUserIsNull(ctx context.Context) ([]entity.Album, error)
	Count(ctx context.Context) (int64, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Save(ctx context.Context, album *entity.Album) error
	DeleteByID(ctx context.Context, id int64) error
}

type PhotoRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Photo, error)
	FindAll(ctx context.Context, page *pagination.Pageable) ([]entity.Photo, error)
	FindAllWithEagerRelationships(ctx context.Context, page *pagination.Pageable) ([]entity.Photo, error)
	FindByAlbum(ctx context.Context, albumID int64) ([]entity.Photo, error)
	FindAllWhereAlbumIsNull(ctx context.Context) ([]entity.Photo, error)
	FindByTag(ctx context.Context, tagID int64) ([]entity.Photo, error)
	Count(ctx context.Context) (int64, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Save(ctx context.Context, photo *entity.Photo) error
	DeleteByID(ctx context.Context, id int64) error
}

type TagRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Tag, error)
	FindAll(ctx context.Context, page *pagination.Pageable) ([]entity.Tag, error)
	Count(ctx context.Context) (int64, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Save(ctx context.Context, tag *entity.Tag) error
	DeleteByID(ctx context.Context, id int64) error
}

type UserRepository interface {
	Upsert(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindAll(ctx context.Context, page *pagination.Pageable) ([]entity.User, error)
	Count(ctx context.Context) (int64, error)
}
