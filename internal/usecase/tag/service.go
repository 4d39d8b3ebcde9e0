package tag

import (
	"context"
	"fmt"
	"strings"

	"github.com/marcos-nsantos/flickr2-backend/internal/adapter/repository"
	"github.com/marcos-nsantos/flickr2-backend/internal/domain"
	"github.com/marcos-nsantos/flickr2-backend/internal/domain/entity"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/pagination"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/patch"
)

type Service struct {
	tagRepo repository.TagRepository
}

func NewService(tagRepo repository.TagRepository) *Service {
	return &Service{tagRepo: tagRepo}
}

func (s *Service) Create(ctx context.Context, name string) (*entity.Tag, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrNameRequired
	}

	t := &entity.Tag{Name: name}
	if err := s.tagRepo.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("creating tag: %w", err)
	}
	return t, nil
}

func (s *Service) Update(ctx context.Context, id int64, name string) (*entity.Tag, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrNameRequired
	}

	ok, err := s.tagRepo.ExistsByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("checking tag: %w", err)
	}
	if !ok {
		return nil, domain.ErrTagNotFound
	}

	t := &entity.Tag{ID: id, Name: name}
	if err := s.tagRepo.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("updating tag: %w", err)
	}
	return t, nil
}

// Patch with an absent name returns the stored tag unchanged.
func (s *Service) Patch(ctx context.Context, id int64, name patch.Field[string]) (*entity.Tag, error) {
	if name.IsNull() || (name.Value != nil && strings.TrimSpace(*name.Value) == "") {
		return nil, domain.ErrNameRequired
	}

	t, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !name.Set {
		return t, nil
	}

	name.ApplyValue(&t.Name)
	if err := s.tagRepo.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("patching tag: %w", err)
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*entity.Tag, error) {
	return s.tagRepo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, page pagination.Pageable) ([]entity.Tag, *pagination.Info, error) {
	total, err := s.tagRepo.Count(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("counting tags: %w", err)
	}

	tags, err := s.tagRepo.FindAll(ctx, &page)
	if err != nil {
		return nil, nil, fmt.Errorf("listing tags: %w", err)
	}

	return tags, pagination.NewInfo(page.Page, page.Size, total), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.tagRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}
	return nil
}
