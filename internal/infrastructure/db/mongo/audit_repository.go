package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/contentkosh/institute-api/internal/core/domain"
)

const auditCollection = "audit_events"

// MongoAuditRepository appends audit events. Entries are insert-only and
// identified by ObjectID; nothing ever reads them back by integer id.
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	UserID     int64     `bson:"user_id,omitempty"`
	BusinessID int64     `bson:"business_id,omitempty"`
	Action     string    `bson:"action"`
	Entity     string    `bson:"entity,omitempty"`
	EntityID   int64     `bson:"entity_id,omitempty"`
	Detail     string    `bson:"detail,omitempty"`
	OccurredAt time.Time `bson:"occurred_at"`
}

func (r *MongoAuditRepository) Insert(ctx context.Context, event domain.AuditEvent) error {
	doc := auditDoc{
		UserID:     event.UserID,
		BusinessID: event.BusinessID,
		Action:     string(event.Action),
		Entity:     event.Entity,
		EntityID:   event.EntityID,
		Detail:     event.Detail,
		OccurredAt: event.OccurredAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
