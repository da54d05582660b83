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

const businessUserCollection = "business_users"

// MongoBusinessUserRepository persists role assignments. The compound
// unique index on (user_id, business_id) enforces one role per pair.
type MongoBusinessUserRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewBusinessUserRepository(db *mongo.Database) *MongoBusinessUserRepository {
	return &MongoBusinessUserRepository{db: db, coll: db.Collection(businessUserCollection)}
}

type businessUserDoc struct {
	ID         int64     `bson:"_id"`
	UserID     int64     `bson:"user_id"`
	BusinessID int64     `bson:"business_id"`
	Role       string    `bson:"role"`
	IsActive   bool      `bson:"is_active"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

func (d businessUserDoc) toDomain() *domain.BusinessUser {
	return &domain.BusinessUser{
		ID:         d.ID,
		UserID:     d.UserID,
		BusinessID: d.BusinessID,
		Role:       domain.Role(d.Role),
		IsActive:   d.IsActive,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func (r *MongoBusinessUserRepository) Create(ctx context.Context, assignment *domain.BusinessUser) (*domain.BusinessUser, error) {
	id, err := nextID(ctx, r.db, businessUserCollection)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := businessUserDoc{
		ID:         id,
		UserID:     assignment.UserID,
		BusinessID: assignment.BusinessID,
		Role:       string(assignment.Role),
		IsActive:   assignment.IsActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAssignmentExists
		}
		return nil, fmt.Errorf("insert assignment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoBusinessUserRepository) FindByUserAndBusiness(ctx context.Context, userID, businessID int64) (*domain.BusinessUser, error) {
	var doc businessUserDoc
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID, "business_id": businessID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAssignmentMissing
		}
		return nil, fmt.Errorf("find assignment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoBusinessUserRepository) FindByUser(ctx context.Context, userID int64) ([]domain.BusinessUser, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *MongoBusinessUserRepository) FindByBusiness(ctx context.Context, businessID int64, role domain.Role, activeOnly bool) ([]domain.BusinessUser, error) {
	filter := bson.M{"business_id": businessID}
	if role != "" {
		filter["role"] = string(role)
	}
	if activeOnly {
		filter["is_active"] = true
	}
	return r.list(ctx, filter)
}

func (r *MongoBusinessUserRepository) Update(ctx context.Context, id int64, update ports.UpdateAssignmentInput) (*domain.BusinessUser, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Role != nil {
		set["role"] = string(*update.Role)
	}
	if update.IsActive != nil {
		set["is_active"] = *update.IsActive
	}

	var doc businessUserDoc
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAssignmentMissing
		}
		return nil, fmt.Errorf("update assignment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoBusinessUserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAssignmentMissing
	}
	return nil
}

func (r *MongoBusinessUserRepository) list(ctx context.Context, filter bson.M) ([]domain.BusinessUser, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	var docs []businessUserDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode assignments: %w", err)
	}
	out := make([]domain.BusinessUser, 0, len(docs))
	for _, d := range docs {
		out = append(out, *d.toDomain())
	}
	return out, nil
}
