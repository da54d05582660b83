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

const businessCollection = "businesses"

type MongoBusinessRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewBusinessRepository(db *mongo.Database) *MongoBusinessRepository {
	return &MongoBusinessRepository{db: db, coll: db.Collection(businessCollection)}
}

type businessDoc struct {
	ID            int64     `bson:"_id"`
	InstituteName string    `bson:"institute_name"`
	Tagline       string    `bson:"tagline,omitempty"`
	ContactNumber string    `bson:"contact_number,omitempty"`
	Email         string    `bson:"email,omitempty"`
	Address       string    `bson:"address,omitempty"`
	YoutubeURL    string    `bson:"youtube_url,omitempty"`
	InstagramURL  string    `bson:"instagram_url,omitempty"`
	LinkedinURL   string    `bson:"linkedin_url,omitempty"`
	FacebookURL   string    `bson:"facebook_url,omitempty"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

func (d businessDoc) toDomain() *domain.Business {
	return &domain.Business{
		ID:            d.ID,
		InstituteName: d.InstituteName,
		Tagline:       d.Tagline,
		ContactNumber: d.ContactNumber,
		Email:         d.Email,
		Address:       d.Address,
		YoutubeURL:    d.YoutubeURL,
		InstagramURL:  d.InstagramURL,
		LinkedinURL:   d.LinkedinURL,
		FacebookURL:   d.FacebookURL,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (r *MongoBusinessRepository) Create(ctx context.Context, business *domain.Business) (*domain.Business, error) {
	id, err := nextID(ctx, r.db, businessCollection)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := businessDoc{
		ID:            id,
		InstituteName: business.InstituteName,
		Tagline:       business.Tagline,
		ContactNumber: business.ContactNumber,
		Email:         business.Email,
		Address:       business.Address,
		YoutubeURL:    business.YoutubeURL,
		InstagramURL:  business.InstagramURL,
		LinkedinURL:   business.LinkedinURL,
		FacebookURL:   business.FacebookURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert business: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoBusinessRepository) FindByID(ctx context.Context, id int64) (*domain.Business, error) {
	var doc businessDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("find business: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoBusinessRepository) FindFirst(ctx context.Context) (*domain.Business, error) {
	var doc businessDoc
	err := r.coll.FindOne(ctx, bson.M{}, options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("find first business: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoBusinessRepository) Update(ctx context.Context, id int64, update ports.UpdateBusinessInput) (*domain.Business, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	setString(set, "institute_name", update.InstituteName)
	setString(set, "tagline", update.Tagline)
	setString(set, "contact_number", update.ContactNumber)
	setString(set, "email", update.Email)
	setString(set, "address", update.Address)
	setString(set, "youtube_url", update.YoutubeURL)
	setString(set, "instagram_url", update.InstagramURL)
	setString(set, "linkedin_url", update.LinkedinURL)
	setString(set, "facebook_url", update.FacebookURL)

	var doc businessDoc
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("update business: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoBusinessRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete business: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBusinessNotFound
	}
	return nil
}

// setString adds a $set entry when the pointer is non-nil.
func setString(set bson.M, key string, val *string) {
	if val != nil {
		set[key] = *val
	}
}

// setBool adds a $set entry when the pointer is non-nil.
func setBool(set bson.M, key string, val *bool) {
	if val != nil {
		set[key] = *val
	}
}

// setTime adds a $set entry when the pointer is non-nil.
func setTime(set bson.M, key string, val *time.Time) {
	if val != nil {
		set[key] = val.UTC()
	}
}
