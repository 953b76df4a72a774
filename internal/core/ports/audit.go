package ports

import (
	"context"
	"time"
)

// AuditEntry is one storefront activity record: a dispatched route, a login
// attempt, or a store failure diagnostic.
type AuditEntry struct {
	SessionID string    `json:"session_id"`
	Route     string    `json:"route"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// AuditRepository persists activity records.
type AuditRepository interface {
	Insert(ctx context.Context, entry AuditEntry) error
}

// AuditService accepts activity records for asynchronous persistence.
type AuditService interface {
	Record(ctx context.Context, entry AuditEntry) error
}
