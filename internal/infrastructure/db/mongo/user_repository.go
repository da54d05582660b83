package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/contentkosh/institute-api/internal/core/domain"
)

const userCollection = "users"

// MongoUserRepository persists credentials. The unique index on email
// (see EnsureIndexes) enforces the one-credential-per-email invariant.
type MongoUserRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{db: db, coll: db.Collection(userCollection)}
}

type userDoc struct {
	ID           int64     `bson:"_id"`
	Email        string    `bson:"email"`
	Name         string    `bson:"name"`
	PasswordHash string    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func (d userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID,
		Email:        d.Email,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	id, err := nextID(ctx, r.db, userCollection)
	if err != nil {
		return nil, err
	}

	doc := userDoc{
		ID:           id,
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return doc.toDomain(), nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoUserRepository) FindByEmailWithRoles(ctx context.Context, email string) (*domain.User, []domain.BusinessUser, error) {
	user, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}

	// Insertion order keeps identity derivation stable for users with
	// several assignments: the first one created wins.
	cur, err := r.db.Collection(businessUserCollection).Find(ctx,
		bson.M{"user_id": user.ID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("find role assignments: %w", err)
	}

	var docs []businessUserDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, nil, fmt.Errorf("decode role assignments: %w", err)
	}

	assignments := make([]domain.BusinessUser, 0, len(docs))
	for _, d := range docs {
		assignments = append(assignments, *d.toDomain())
	}
	return user, assignments, nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoUserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("user exists: %w", err)
	}
	return n > 0, nil
}
