package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/royalsilk/storefront/internal/core/domain"
	"github.com/royalsilk/storefront/internal/core/ports"
)

const defaultPerPage = 9

// CatalogService exposes the product catalogue: paginated listing, single
// product lookup, free-text search, and the cart pricing join.
type CatalogService struct {
	products ports.ProductRepository
	logger   zerolog.Logger
}

func NewCatalogService(products ports.ProductRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{products: products, logger: logger}
}

func (s *CatalogService) ListProducts(ctx context.Context, page, perPage int) (*ports.ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	products, err := s.products.ListPage(ctx, (page-1)*perPage, perPage)
	if err != nil {
		s.logger.Error().Err(err).Msg("product listing failed")
		return nil, fmt.Errorf("list products: %w", err)
	}

	total, err := s.products.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("product count failed")
		return nil, fmt.Errorf("count products: %w", err)
	}

	return &ports.ProductPage{
		Products: products,
		Page:     page,
		PerPage:  perPage,
		Total:    total,
	}, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	return s.products.FetchByID(ctx, id)
}

// Search matches term across product name, category, type, size, colour,
// material, and price. Calling it without a term is a hard failure; the
// handler is expected to guard against it.
func (s *CatalogService) Search(ctx context.Context, term string) (*ports.SearchOutcome, error) {
	if term == "" {
		return nil, domain.ErrSearchTermMissing
	}

	results, err := s.products.Search(ctx, term)
	if err != nil {
		s.logger.Error().Err(err).Str("term", term).Msg("search failed")
		return nil, fmt.Errorf("search products: %w", err)
	}

	// The results header shows distinct products, not variant rows.
	seen := make(map[int]struct{}, len(results))
	for _, r := range results {
		seen[r.ProductID] = struct{}{}
	}

	return &ports.SearchOutcome{Results: results, Count: len(seen)}, nil
}

// PriceCart joins cart lines against the catalogue and computes the running
// subtotal. Lines whose product has vanished from the catalogue are skipped
// so a stale cart stays renderable.
func (s *CatalogService) PriceCart(ctx context.Context, lines []domain.Line) ([]ports.CartLineDetail, float64, error) {
	details := make([]ports.CartLineDetail, 0, len(lines))
	subtotal := 0.0

	for _, line := range lines {
		product, err := s.products.FetchByID(ctx, line.ProductID)
		if errors.Is(err, domain.ErrProductNotFound) {
			s.logger.Warn().Int("product_id", line.ProductID).Msg("cart references missing product")
			continue
		}
		if err != nil {
			return nil, 0, fmt.Errorf("fetch cart product: %w", err)
		}

		lineTotal := product.BasePrice * float64(line.Quantity)
		details = append(details, ports.CartLineDetail{
			Line:     line,
			Product:  *product,
			Subtotal: lineTotal,
		})
		subtotal += lineTotal
	}

	return details, subtotal, nil
}
