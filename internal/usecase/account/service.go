package account

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/flickr2-backend/internal/adapter/repository"
	"github.com/marcos-nsantos/flickr2-backend/internal/domain/entity"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/pagination"
)

type Service struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

func NewService(userRepo repository.UserRepository, logger *zap.Logger) *Service {
	return &Service{userRepo: userRepo, logger: logger}
}

// Sync stores the token's identity so albums can reference it and returns
// the account with its authorities.
func (s *Service) Sync(ctx context.Context, p *entity.Principal) (*entity.User, error) {
	u := p.ToUser()
	if err := s.userRepo.Upsert(ctx, u); err != nil {
		return nil, fmt.Errorf("syncing user %s: %w", p.Subject, err)
	}
	s.logger.Debug("user synced", zap.String("user_id", u.ID), zap.String("login", u.Login))
	return u, nil
}

func (s *Service) Get(ctx context.Context, id string) (*entity.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context, page pagination.Pageable) ([]entity.User, *pagination.Info, error) {
	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("counting users: %w", err)
	}

	users, err := s.userRepo.FindAll(ctx, &page)
	if err != nil {
		return nil, nil, fmt.Errorf("listing users: %w", err)
	}

	return users, pagination.NewInfo(page.Page, page.Size, total), nil
}
