package domain

import "time"

// AuditAction names the kind of event recorded in the audit trail.
type AuditAction string

const (
	AuditLogin        AuditAction = "login"
	AuditLoginFailed  AuditAction = "login_failed"
	AuditRegister     AuditAction = "register"
	AuditEntityCreate AuditAction = "entity_create"
	AuditEntityUpdate AuditAction = "entity_update"
	AuditEntityDelete AuditAction = "entity_delete"
)

// AuditEvent records one security-relevant action. UserID may be zero when
// the actor could not be resolved (failed logins by unknown emails).
type AuditEvent struct {
	UserID     int64       `json:"userId,omitempty"`
	BusinessID int64       `json:"businessId,omitempty"`
	Action     AuditAction `json:"action"`
	Entity     string      `json:"entity,omitempty"`
	EntityID   int64       `json:"entityId,omitempty"`
	Detail     string      `json:"detail,omitempty"`
	OccurredAt time.Time   `json:"occurredAt"`
}
