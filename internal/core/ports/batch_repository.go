package ports

import (
	"context"
	"time"

	"github.com/contentkosh/institute-api/internal/core/domain"
)

// BatchRepository persists batches and their memberships. Code names are
// unique store-wide; memberships are unique per (user, batch).
type BatchRepository interface {
	Create(ctx context.Context, batch *domain.Batch) (*domain.Batch, error)
	FindByID(ctx context.Context, id int64) (*domain.Batch, error)
	FindByCodeName(ctx context.Context, codeName string) (*domain.Batch, error)
	FindByBusiness(ctx context.Context, businessID int64, activeOnly bool) ([]domain.Batch, error)
	Update(ctx context.Context, id int64, update UpdateBatchInput) (*domain.Batch, error)
	Delete(ctx context.Context, id int64) error

	AddMember(ctx context.Context, member *domain.BatchUser) (*domain.BatchUser, error)
	FindMember(ctx context.Context, userID, batchID int64) (*domain.BatchUser, error)
	MembersByBatch(ctx context.Context, batchID int64) ([]domain.BatchUser, error)
	BatchesByUser(ctx context.Context, userID int64) ([]domain.BatchUser, error)
	UpdateMember(ctx context.Context, userID, batchID int64, isActive bool) (*domain.BatchUser, error)
	RemoveMember(ctx context.Context, userID, batchID int64) error
}

// UpdateBatchInput carries partial batch updates; nil means unchanged.
type UpdateBatchInput struct {
	CodeName    *string
	DisplayName *string
	StartDate   *time.Time
	EndDate     *time.Time
	IsActive    *bool
}

// BatchWithMembers is a batch joined with its memberships.
type BatchWithMembers struct {
	domain.Batch
	Members []domain.BatchUser `json:"batchUsers"`
}

// BatchService covers batch CRUD and enrollment.
type BatchService interface {
	Create(ctx context.Context, batch *domain.Batch) (*domain.Batch, error)
	Get(ctx context.Context, id int64) (*domain.Batch, error)
	GetWithMembers(ctx context.Context, id int64) (*BatchWithMembers, error)
	ByBusiness(ctx context.Context, businessID int64, activeOnly bool) ([]domain.Batch, error)
	Update(ctx context.Context, id int64, update UpdateBatchInput) (*domain.Batch, error)
	Delete(ctx context.Context, id int64) error

	AddMember(ctx context.Context, userID, batchID int64) (*domain.BatchUser, error)
	RemoveMember(ctx context.Context, userID, batchID int64) error
	MembersByBatch(ctx context.Context, batchID int64) ([]domain.BatchUser, error)
	BatchesByUser(ctx context.Context, userID int64) ([]domain.BatchUser, error)
	UpdateMember(ctx context.Context, userID, batchID int64, isActive bool) (*domain.BatchUser, error)
}
