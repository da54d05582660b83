package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/contentkosh/institute-api/internal/core/domain"
	"github.com/contentkosh/institute-api/internal/core/ports"
)

const (
	batchCollection     = "batches"
	batchUserCollection = "batch_users"
)

// MongoBatchRepository persists batches and memberships. Unique indexes
// cover code names and (user_id, batch_id) pairs.
type MongoBatchRepository struct {
	db      *mongo.Database
	coll    *mongo.Collection
	members *mongo.Collection
}

func NewBatchRepository(db *mongo.Database) *MongoBatchRepository {
	return &MongoBatchRepository{
		db:      db,
		coll:    db.Collection(batchCollection),
		members: db.Collection(batchUserCollection),
	}
}

type batchDoc struct {
	ID          int64     `bson:"_id"`
	CodeName    string    `bson:"code_name"`
	DisplayName string    `bson:"display_name"`
	StartDate   time.Time `bson:"start_date"`
	EndDate     time.Time `bson:"end_date"`
	IsActive    bool      `bson:"is_active"`
	BusinessID  int64     `bson:"business_id"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func (d batchDoc) toDomain() *domain.Batch {
	return &domain.Batch{
		ID:          d.ID,
		CodeName:    d.CodeName,
		DisplayName: d.DisplayName,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		IsActive:    d.IsActive,
		BusinessID:  d.BusinessID,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type batchUserDoc struct {
	ID        int64     `bson:"_id"`
	UserID    int64     `bson:"user_id"`
	BatchID   int64     `bson:"batch_id"`
	IsActive  bool      `bson:"is_active"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d batchUserDoc) toDomain() *domain.BatchUser {
	return &domain.BatchUser{
		ID:        d.ID,
		UserID:    d.UserID,
		BatchID:   d.BatchID,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *MongoBatchRepository) Create(ctx context.Context, batch *domain.Batch) (*domain.Batch, error) {
	id, err := nextID(ctx, r.db, batchCollection)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := batchDoc{
		ID:          id,
		CodeName:    batch.CodeName,
		DisplayName: batch.DisplayName,
		StartDate:   batch.StartDate.UTC(),
		EndDate:     batch.EndDate.UTC(),
		IsActive:    true,
		BusinessID:  batch.BusinessID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrBatchCodeExists
		}
		return nil, fmt.Errorf("insert batch: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoBatchRepository) FindByID(ctx context.Context, id int64) (*domain.Batch, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoBatchRepository) FindByCodeName(ctx context.Context, codeName string) (*domain.Batch, error) {
	return r.findOne(ctx, bson.M{"code_name": codeName})
}

func (r *MongoBatchRepository) findOne(ctx context.Context, filter bson.M) (*domain.Batch, error) {
	var doc batchDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrBatchNotFound
		}
		return nil, fmt.Errorf("find batch: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoBatchRepository) FindByBusiness(ctx context.Context, businessID int64, activeOnly bool) ([]domain.Batch, error) {
	filter := bson.M{"business_id": businessID}
	if activeOnly {
		filter["is_active"] = true
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	var docs []batchDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode batches: %w", err)
	}

	out := make([]domain.Batch, 0, len(docs))
	for _, d := range docs {
		out = append(out, *d.toDomain())
	}
	return out, nil
}

func (r *MongoBatchRepository) Update(ctx context.Context, id int64, update ports.UpdateBatchInput) (*domain.Batch, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	setString(set, "code_name", update.CodeName)
	setString(set, "display_name", update.DisplayName)
	setTime(set, "start_date", update.StartDate)
	setTime(set, "end_date", update.EndDate)
	setBool(set, "is_active", update.IsActive)

	var doc batchDoc
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrBatchNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrBatchCodeExists
		}
		return nil, fmt.Errorf("update batch: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoBatchRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBatchNotFound
	}
	return nil
}

// --- Membership ---

func (r *MongoBatchRepository) AddMember(ctx context.Context, member *domain.BatchUser) (*domain.BatchUser, error) {
	id, err := nextID(ctx, r.db, batchUserCollection)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := batchUserDoc{
		ID:        id,
		UserID:    member.UserID,
		BatchID:   member.BatchID,
		IsActive:  member.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.members.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrBatchMemberExists
		}
		return nil, fmt.Errorf("insert batch member: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoBatchRepository) FindMember(ctx context.Context, userID, batchID int64) (*domain.BatchUser, error) {
	var doc batchUserDoc
	err := r.members.FindOne(ctx, bson.M{"user_id": userID, "batch_id": batchID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrBatchMemberMissing
		}
		return nil, fmt.Errorf("find batch member: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoBatchRepository) MembersByBatch(ctx context.Context, batchID int64) ([]domain.BatchUser, error) {
	return r.listMembers(ctx, bson.M{"batch_id": batchID})
}

func (r *MongoBatchRepository) BatchesByUser(ctx context.Context, userID int64) ([]domain.BatchUser, error) {
	return r.listMembers(ctx, bson.M{"user_id": userID})
}

func (r *MongoBatchRepository) listMembers(ctx context.Context, filter bson.M) ([]domain.BatchUser, error) {
	cur, err := r.members.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list batch members: %w", err)
	}
	var docs []batchUserDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode batch members: %w", err)
	}

	out := make([]domain.BatchUser, 0, len(docs))
	for _, d := range docs {
		out = append(out, *d.toDomain())
	}
	return out, nil
}

func (r *MongoBatchRepository) UpdateMember(ctx context.Context, userID, batchID int64, isActive bool) (*domain.BatchUser, error) {
	var doc batchUserDoc
	err := r.members.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID, "batch_id": batchID},
		bson.M{"$set": bson.M{"is_active": isActive, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrBatchMemberMissing
		}
		return nil, fmt.Errorf("update batch member: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoBatchRepository) RemoveMember(ctx context.Context, userID, batchID int64) error {
	res, err := r.members.DeleteOne(ctx, bson.M{"user_id": userID, "batch_id": batchID})
	if err != nil {
		return fmt.Errorf("delete batch member: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBatchMemberMissing
	}
	return nil
}
