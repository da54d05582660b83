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

const announcementCollection = "announcements"

type MongoAnnouncementRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewAnnouncementRepository(db *mongo.Database) *MongoAnnouncementRepository {
	return &MongoAnnouncementRepository{db: db, coll: db.Collection(announcementCollection)}
}

type announcementDoc struct {
	ID                int64     `bson:"_id"`
	Heading           string    `bson:"heading"`
	Content           string    `bson:"content"`
	StartDate         time.Time `bson:"start_date"`
	EndDate           time.Time `bson:"end_date"`
	IsActive          bool      `bson:"is_active"`
	VisibleToAdmins   bool      `bson:"visible_to_admins"`
	VisibleToTeachers bool      `bson:"visible_to_teachers"`
	VisibleToStudents bool      `bson:"visible_to_students"`
	BusinessID        int64     `bson:"business_id"`
	CreatedAt         time.Time `bson:"created_at"`
	UpdatedAt         time.Time `bson:"updated_at"`
}

func (d announcementDoc) toDomain() *domain.Announcement {
	return &domain.Announcement{
		ID:                d.ID,
		Heading:           d.Heading,
		Content:           d.Content,
		StartDate:         d.StartDate,
		EndDate:           d.EndDate,
		IsActive:          d.IsActive,
		VisibleToAdmins:   d.VisibleToAdmins,
		VisibleToTeachers: d.VisibleToTeachers,
		VisibleToStudents: d.VisibleToStudents,
		BusinessID:        d.BusinessID,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func (r *MongoAnnouncementRepository) Create(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error) {
	id, err := nextID(ctx, r.db, announcementCollection)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := announcementDoc{
		ID:                id,
		Heading:           a.Heading,
		Content:           a.Content,
		StartDate:         a.StartDate.UTC(),
		EndDate:           a.EndDate.UTC(),
		IsActive:          true,
		VisibleToAdmins:   a.VisibleToAdmins,
		VisibleToTeachers: a.VisibleToTeachers,
		VisibleToStudents: a.VisibleToStudents,
		BusinessID:        a.BusinessID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert announcement: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoAnnouncementRepository) FindByID(ctx context.Context, id int64) (*domain.Announcement, error) {
	var doc announcementDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("find announcement: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoAnnouncementRepository) FindByBusiness(ctx context.Context, businessID int64) ([]domain.Announcement, error) {
	return r.list(ctx, bson.M{"business_id": businessID})
}

func (r *MongoAnnouncementRepository) FindActiveByBusiness(ctx context.Context, businessID int64, now time.Time) ([]domain.Announcement, error) {
	return r.list(ctx, bson.M{
		"business_id": businessID,
		"is_active":   true,
		"start_date":  bson.M{"$lte": now},
		"end_date":    bson.M{"$gte": now},
	})
}

func (r *MongoAnnouncementRepository) FindByRole(ctx context.Context, businessID int64, role domain.Role, now time.Time) ([]domain.Announcement, error) {
	return r.list(ctx, byRoleFilter(businessID, role, now))
}

func (r *MongoAnnouncementRepository) FindByDateRange(ctx context.Context, businessID int64, start, end time.Time) ([]domain.Announcement, error) {
	return r.list(ctx, dateRangeFilter(businessID, start, end))
}

// byRoleFilter selects active announcements whose date window contains now
// and whose visibility flag matches the role. ADMIN and SUPERADMIN share the
// admins flag.
func byRoleFilter(businessID int64, role domain.Role, now time.Time) bson.M {
	filter := bson.M{
		"business_id": businessID,
		"is_active":   true,
		"start_date":  bson.M{"$lte": now},
		"end_date":    bson.M{"$gte": now},
	}
	switch role {
	case domain.RoleAdmin, domain.RoleSuperAdmin:
		filter["visible_to_admins"] = true
	case domain.RoleTeacher:
		filter["visible_to_teachers"] = true
	case domain.RoleStudent:
		filter["visible_to_students"] = true
	}
	return filter
}

// dateRangeFilter selects active announcements whose window overlaps
// [start, end], not only those fully contained in it.
func dateRangeFilter(businessID int64, start, end time.Time) bson.M {
	return bson.M{
		"business_id": businessID,
		"is_active":   true,
		"start_date":  bson.M{"$lte": end},
		"end_date":    bson.M{"$gte": start},
	}
}

func (r *MongoAnnouncementRepository) Update(ctx context.Context, id int64, update ports.UpdateAnnouncementInput) (*domain.Announcement, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	setString(set, "heading", update.Heading)
	setString(set, "content", update.Content)
	setTime(set, "start_date", update.StartDate)
	setTime(set, "end_date", update.EndDate)
	setBool(set, "is_active", update.IsActive)
	setBool(set, "visible_to_admins", update.VisibleToAdmins)
	setBool(set, "visible_to_teachers", update.VisibleToTeachers)
	setBool(set, "visible_to_students", update.VisibleToStudents)

	var doc announcementDoc
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("update announcement: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoAnnouncementRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAnnouncementNotFound
	}
	return nil
}

func (r *MongoAnnouncementRepository) list(ctx context.Context, filter bson.M) ([]domain.Announcement, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	var docs []announcementDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode announcements: %w", err)
	}

	out := make([]domain.Announcement, 0, len(docs))
	for _, d := range docs {
		out = append(out, *d.toDomain())
	}
	return out, nil
}
