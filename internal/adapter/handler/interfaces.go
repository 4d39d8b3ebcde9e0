package handler

import (
	"context"

	"github.com/marcos-nsantos/flickr2-backend/internal/domain/entity"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/pagination"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/patch"
	"github.com/marcos-nsantos/flickr2-backend/internal/usecase/album"
	"github.com/marcos-nsantos/flickr2-backend/internal/usecase/photo"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/handler_mocks.go -package=mocks

type AlbumService interface {
	Create(ctx context.Context, input album.CreateInput) (*entity.Album, error)
	Update(ctx context.Context, input album.UpdateInput) (*entity.Album, error)
	Patch(ctx context.Context, input album.PatchInput) (*entity.Album, error)
	Get(ctx context.Context, id int64) (*entity.Album, error)
	List(ctx context.Context, page pagination.Pageable, eager bool) ([]entity.Album, *pagination.Info, error)
	ListByUser(ctx context.Context, userID *string) ([]entity.Album, error)
	Delete(ctx context.Context, id int64) error
}

type PhotoService interface {
	Create(ctx context.Context, input photo.CreateInput) (*entity.Photo, error)
	Update(ctx context.Context, input photo.UpdateInput) (*entity.Photo, error)
	Patch(ctx context.Context, input photo.PatchInput) (*entity.Photo, error)
	Get(ctx context.Context, id int64) (*entity.Photo, error)
	List(ctx context.Context, page pagination.Pageable, eager bool) ([]entity.Photo, *pagination.Info, error)
	ListByAlbum(ctx context.Context, albumID *int64) ([]entity.Photo, error)
	ListByTag(ctx context.Context, tagID int64) ([]entity.Photo, error)
	Image(ctx context.Context, id int64) (*photo.ImageResult, error)
	Thumbnail(ctx context.Context, id int64, size int) ([]byte, error)
	Delete(ctx context.Context, id int64) error
}

type TagService interface {
	Create(ctx context.Context, name string) (*entity.Tag, error)
	Update(ctx context.Context, id int64, name string) (*entity.Tag, error)
	Patch(ctx context.Context, id int64, name patch.Field[string]) (*entity.Tag, error)
	Get(ctx context.Context, id int64) (*entity.Tag, error)
	List(ctx context.Context, page pagination.Pageable) ([]entity.Tag, *pagination.Info, error)
	Delete(ctx context.Context, id int64) error
}

type AccountService interface {
	Sync(ctx context.Context, p *entity.Principal) (*entity.User, error)
	ListUsers(ctx context.Context, page pagination.Pageable) ([]entity.User, *pagination.Info, error)
}
