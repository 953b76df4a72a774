package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/royalsilk/storefront/internal/core/ports"
)

// AuditTrail persists storefront activity records. It sits behind the queue
// dispatcher, so a slow audit store never blocks request handling.
type AuditTrail struct {
	repo   ports.AuditRepository
	logger zerolog.Logger
}

func NewAuditTrail(repo ports.AuditRepository, logger zerolog.Logger) *AuditTrail {
	return &AuditTrail{repo: repo, logger: logger}
}

func (a *AuditTrail) Record(ctx context.Context, entry ports.AuditEntry) error {
	if err := a.repo.Insert(ctx, entry); err != nil {
		a.logger.Error().Err(err).Str("action", entry.Action).Msg("audit insert failed")
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
