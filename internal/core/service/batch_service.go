package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/contentkosh/institute-api/internal/core/domain"
	"github.com/contentkosh/institute-api/internal/core/ports"
)

type batchService struct {
	batches    ports.BatchRepository
	users      ports.UserRepository
	businesses ports.BusinessRepository
	audit      ports.AuditRecorder
	log        zerolog.Logger
}

// NewBatchService returns a BatchService implementation. audit may be nil.
func NewBatchService(
	batches ports.BatchRepository,
	users ports.UserRepository,
	businesses ports.BusinessRepository,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) ports.BatchService {
	return &batchService{batches: batches, users: users, businesses: businesses, audit: audit, log: log}
}

func (s *batchService) recordAudit(action domain.AuditAction, batchID, businessID int64) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEvent{
		BusinessID: businessID,
		Action:     action,
		Entity:     "batch",
		EntityID:   batchID,
		OccurredAt: time.Now().UTC(),
	})
}

func (s *batchService) Create(ctx context.Context, batch *domain.Batch) (*domain.Batch, error) {
	if strings.TrimSpace(batch.CodeName) == "" {
		return nil, domain.Invalid("Batch code name is required")
	}
	if strings.TrimSpace(batch.DisplayName) == "" {
		return nil, domain.Invalid("Batch display name is required")
	}
	if batch.StartDate.IsZero() || batch.EndDate.IsZero() {
		return nil, domain.Invalid("Start date and end date are required")
	}
	if !batch.EndDate.After(batch.StartDate) {
		return nil, domain.Invalid("End date must be after start date")
	}
	if batch.BusinessID <= 0 {
		return nil, domain.Invalid("Business ID is required")
	}

	if _, err := s.businesses.FindByID(ctx, batch.BusinessID); err != nil {
		return nil, err
	}
	if existing, err := s.batches.FindByCodeName(ctx, batch.CodeName); err == nil && existing != nil {
		return nil, domain.ErrBatchCodeExists
	} else if err != nil && err != domain.ErrBatchNotFound {
		return nil, err
	}

	created, err := s.batches.Create(ctx, batch)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("code_name", created.CodeName).Int64("batch_id", created.ID).Msg("batch created")
	s.recordAudit(domain.AuditEntityCreate, created.ID, created.BusinessID)
	return created, nil
}

func (s *batchService) Get(ctx context.Context, id int64) (*domain.Batch, error) {
	return s.batches.FindByID(ctx, id)
}

func (s *batchService) GetWithMembers(ctx context.Context, id int64) (*ports.BatchWithMembers, error) {
	batch, err := s.batches.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	members, err := s.batches.MembersByBatch(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ports.BatchWithMembers{Batch: *batch, Members: members}, nil
}

func (s *batchService) ByBusiness(ctx context.Context, businessID int64, activeOnly bool) ([]domain.Batch, error) {
	if businessID <= 0 {
		return nil, domain.Invalid("Valid Business ID is required")
	}
	return s.batches.FindByBusiness(ctx, businessID, activeOnly)
}

func (s *batchService) Update(ctx context.Context, id int64, update ports.UpdateBatchInput) (*domain.Batch, error) {
	if update.CodeName != nil && strings.TrimSpace(*update.CodeName) == "" {
		return nil, domain.Invalid("Batch code name cannot be empty")
	}
	if update.DisplayName != nil && strings.TrimSpace(*update.DisplayName) == "" {
		return nil, domain.Invalid("Batch display name cannot be empty")
	}
	if update.StartDate != nil && update.EndDate != nil && !update.EndDate.After(*update.StartDate) {
		return nil, domain.Invalid("End date must be after start date")
	}

	if update.CodeName != nil {
		existing, err := s.batches.FindByCodeName(ctx, *update.CodeName)
		if err == nil && existing != nil && existing.ID != id {
			return nil, domain.ErrBatchCodeExists
		}
		if err != nil && err != domain.ErrBatchNotFound {
			return nil, err
		}
	}

	updated, err := s.batches.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.recordAudit(domain.AuditEntityUpdate, updated.ID, updated.BusinessID)
	return updated, nil
}

func (s *batchService) Delete(ctx context.Context, id int64) error {
	batch, err := s.batches.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.batches.Delete(ctx, id); err != nil {
		return err
	}
	s.recordAudit(domain.AuditEntityDelete, batch.ID, batch.BusinessID)
	return nil
}

// --- Membership ---

func (s *batchService) AddMember(ctx context.Context, userID, batchID int64) (*domain.BatchUser, error) {
	if userID <= 0 || batchID <= 0 {
		return nil, domain.Invalid("User ID and Batch ID are required")
	}

	if exists, err := s.users.Exists(ctx, userID); err != nil {
		return nil, err
	} else if !exists {
		return nil, domain.ErrUserNotFound
	}
	if _, err := s.batches.FindByID(ctx, batchID); err != nil {
		return nil, err
	}
	if existing, err := s.batches.FindMember(ctx, userID, batchID); err == nil && existing != nil {
		return nil, domain.ErrBatchMemberExists
	} else if err != nil && err != domain.ErrBatchMemberMissing {
		return nil, err
	}

	member, err := s.batches.AddMember(ctx, &domain.BatchUser{UserID: userID, BatchID: batchID, IsActive: true})
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("user_id", userID).Int64("batch_id", batchID).Msg("user added to batch")
	return member, nil
}

func (s *batchService) RemoveMember(ctx context.Context, userID, batchID int64) error {
	if userID <= 0 || batchID <= 0 {
		return domain.Invalid("User ID and Batch ID are required")
	}
	if _, err := s.batches.FindMember(ctx, userID, batchID); err != nil {
		return err
	}
	if err := s.batches.RemoveMember(ctx, userID, batchID); err != nil {
		return err
	}
	s.log.Info().Int64("user_id", userID).Int64("batch_id", batchID).Msg("user removed from batch")
	return nil
}

func (s *batchService) MembersByBatch(ctx context.Context, batchID int64) ([]domain.BatchUser, error) {
	if batchID <= 0 {
		return nil, domain.Invalid("Valid Batch ID is required")
	}
	return s.batches.MembersByBatch(ctx, batchID)
}

func (s *batchService) BatchesByUser(ctx context.Context, userID int64) ([]domain.BatchUser, error) {
	if userID <= 0 {
		return nil, domain.Invalid("Valid User ID is required")
	}
	return s.batches.BatchesByUser(ctx, userID)
}

func (s *batchService) UpdateMember(ctx context.Context, userID, batchID int64, isActive bool) (*domain.BatchUser, error) {
	if userID <= 0 || batchID <= 0 {
		return nil, domain.Invalid("User ID and Batch ID are required")
	}
	if _, err := s.batches.FindMember(ctx, userID, batchID); err != nil {
		return nil, err
	}
	return s.batches.UpdateMember(ctx, userID, batchID, isActive)
}
