package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/royalsilk/storefront/internal/core/ports"
)

const auditCollection = "audit_log"

// AuditRepository appends storefront activity records to a capped-style log
// collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	SessionID string `bson:"session_id"`
	Route     string `bson:"route"`
	Action    string `bson:"action"`
	Detail    string `bson:"detail,omitempty"`
	Timestamp int64  `bson:"timestamp"`
}

func (r *AuditRepository) Insert(ctx context.Context, entry ports.AuditEntry) error {
	doc := auditDoc{
		SessionID: entry.SessionID,
		Route:     entry.Route,
		Action:    entry.Action,
		Detail:    entry.Detail,
		Timestamp: entry.Timestamp.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return wrapStoreError(err, "insert audit entry")
	}
	return nil
}
