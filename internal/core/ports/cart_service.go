package ports

import (
	"context"

	"github.com/royalsilk/storefront/internal/core/domain"
)

// CartService owns the session-resident shopping cart. Every call is a full
// read-modify-write of the session's cart entry; there is no separate commit
// step. Errors are reserved for session-store failures.
type CartService interface {
	Add(ctx context.Context, sessionID string, productID int, size string, qty int) error
	Contents(ctx context.Context, sessionID string) ([]domain.Line, error)
	RemoveProduct(ctx context.Context, sessionID string, productID int) error
	UpdateQuantities(ctx context.Context, sessionID string, quantities map[string]int) error
	Clear(ctx context.Context, sessionID string) error
}
