package ports

import (
	"context"

	"github.com/royalsilk/storefront/internal/core/domain"
)

// ProductRepository is the catalogue read interface. FetchByID returns
// domain.ErrProductNotFound when no product matches.
type ProductRepository interface {
	FetchByID(ctx context.Context, id int) (*domain.Product, error)
	ListPage(ctx context.Context, offset, limit int) ([]domain.Product, error)
	Count(ctx context.Context) (int64, error)
	Search(ctx context.Context, term string) ([]domain.SearchResult, error)
}
