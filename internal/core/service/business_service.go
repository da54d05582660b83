package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/contentkosh/institute-api/internal/core/domain"
	"github.com/contentkosh/institute-api/internal/core/ports"
)

type businessService struct {
	repo ports.BusinessRepository
	log  zerolog.Logger
}

// NewBusinessService returns a BusinessService implementation.
func NewBusinessService(repo ports.BusinessRepository, log zerolog.Logger) ports.BusinessService {
	return &businessService{repo: repo, log: log}
}

// Create persists the installation's business record. Only one record may
// exist; a second create fails with ErrBusinessExists.
func (s *businessService) Create(ctx context.Context, business *domain.Business) (*domain.Business, error) {
	if strings.TrimSpace(business.InstituteName) == "" {
		return nil, domain.Invalid("Institute name is required")
	}

	if _, err := s.repo.FindFirst(ctx); err == nil {
		return nil, domain.ErrBusinessExists
	} else if err != domain.ErrBusinessNotFound {
		return nil, err
	}

	created, err := s.repo.Create(ctx, business)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("institute", created.InstituteName).Int64("business_id", created.ID).Msg("business created")
	return created, nil
}

func (s *businessService) Get(ctx context.Context, id int64) (*domain.Business, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *businessService) Update(ctx context.Context, id int64, update ports.UpdateBusinessInput) (*domain.Business, error) {
	if update.InstituteName != nil && strings.TrimSpace(*update.InstituteName) == "" {
		return nil, domain.Invalid("Institute name cannot be empty")
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("business_id", id).Msg("business updated")
	return updated, nil
}

func (s *businessService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
