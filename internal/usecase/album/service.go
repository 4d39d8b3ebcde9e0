package album

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/marcos-nsantos/flickr2-backend/internal/adapter/repository"
	"github.com/marcos-nsantos/flickr2-backend/internal/domain"
	"github.com/marcos-nsantos/flickr2-backend/internal/domain/entity"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/pagination"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/patch"
)

type Service struct {
	albumRepo repository.AlbumRepository
}

func NewService(albumRepo repository.AlbumRepository) *Service {
	return &Service{albumRepo: albumRepo}
}

type CreateInput struct {
	Title       string
	Description *string
	Created     *time.Time
	UserID      *string
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*entity.Album, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.ErrTitleRequired
	}

	a := entity.NewAlbum(input.Title, input.Description, input.Created, input.UserID)
	if err := s.albumRepo.Save(ctx, a); err != nil {
		return nil, fmt.Errorf("creating album: %w", err)
	}

	return s.albumRepo.FindByID(ctx, a.ID)
}

type UpdateInput struct {
	ID          int64
	Title       string
	Description *string
	Created     *time.Time
	UserID      *string
}

func (s *Service) Update(ctx context.Context, input UpdateInput) (*entity.Album, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.ErrTitleRequired
	}

	ok, err := s.albumRepo.ExistsByID(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("checking album: %w", err)
	}
	if !ok {
		return nil, domain.ErrAlbumNotFound
	}

	a := entity.NewAlbum(input.Title, input.Description, input.Created, input.UserID)
	a.ID = input.ID
	if err := s.albumRepo.Save(ctx, a); err != nil {
		return nil, fmt.Errorf("updating album: %w", err)
	}

	return s.albumRepo.FindByID(ctx, a.ID)
}

// PatchInput carries only the fields present in the request; explicit nulls
// clear optional columns.
type PatchInput struct {
	ID          int64
	Title       patch.Field[string]
	Description patch.Field[string]
	Created     patch.Field[time.Time]
	UserID      patch.Field[string]
}

func (s *Service) Patch(ctx context.Context, input PatchInput) (*entity.Album, error) {
	if input.Title.IsNull() || (input.Title.Value != nil && strings.TrimSpace(*input.Title.Value) == "") {
		return nil, domain.ErrTitleRequired
	}

	a, err := s.albumRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	input.Title.ApplyValue(&a.Title)
	input.Description.Apply(&a.Description)
	input.Created.Apply(&a.Created)
	input.UserID.Apply(&a.UserID)

	if err := s.albumRepo.Save(ctx, a); err != nil {
		return nil, fmt.Errorf("patching album: %w", err)
	}

	return s.albumRepo.FindByID(ctx, a.ID)
}

func (s *Service) Get(ctx context.Context, id int64) (*entity.Album, error) {
	return s.albumRepo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, page pagination.Pageable, eager bool) ([]entity.Album, *pagination.Info, error) {
	total, err := s.albumRepo.Count(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("counting albums: %w", err)
	}

	var albums []entity.Album
	if eager {
		albums, err = s.albumRepo.FindAllWithEagerRelationships(ctx, &page)
	} else {
		albums, err = s.albumRepo.FindAll(ctx, &page)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("listing albums: %w", err)
	}

	return albums, pagination.NewInfo(page.Page, page.Size, total), nil
}

// ListByUser returns the albums owned by userID, or the unowned albums when
// userID is nil.
func (s *Service) ListByUser(ctx context.Context, userID *string) ([]entity.Album, error) {
	var (
		albums []entity.Album
		err    error
	)
	if userID == nil {
		albums, err = s.albumRepo.FindAllWhereUserIsNull(ctx)
	} else {
		albums, err = s.albumRepo.FindByUser(ctx, *userID)
	}
	if err != nil {
		return nil, fmt.Errorf("listing albums by user: %w", err)
	}
	return albums, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.albumRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("deleting album: %w", err)
	}
	return nil
}
