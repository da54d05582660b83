package ports

import (
	"context"

	"github.com/contentkosh/institute-api/internal/core/domain"
)

// AuditRepository appends audit events. Writes happen off the request
// path, so failures are logged rather than surfaced to clients.
type AuditRepository interface {
	Insert(ctx context.Context, event domain.AuditEvent) error
}

// AuditRecorder is the write side handed to services and middleware; the
// queue dispatcher implements it.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}
