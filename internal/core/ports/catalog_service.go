package ports

import (
	"context"

	"github.com/royalsilk/storefront/internal/core/domain"
)

// ProductPage is one page of the catalogue listing.
type ProductPage struct {
	Products []domain.Product `json:"products"`
	Page     int              `json:"page"`
	PerPage  int              `json:"per_page"`
	Total    int64            `json:"total"`
}

// SearchOutcome bundles search rows with the distinct-product count shown in
// the results header.
type SearchOutcome struct {
	Results []domain.SearchResult `json:"results"`
	Count   int                   `json:"count"`
}

// CartLineDetail joins one cart line against the catalogue for display.
type CartLineDetail struct {
	Line     domain.Line    `json:"line"`
	Product  domain.Product `json:"product"`
	Subtotal float64        `json:"subtotal"`
}

// CatalogService exposes product listing, lookup, search, and the cart/
// catalogue join used by the cart page.
type CatalogService interface {
	ListProducts(ctx context.Context, page, perPage int) (*ProductPage, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	Search(ctx context.Context, term string) (*SearchOutcome, error)
	PriceCart(ctx context.Context, lines []domain.Line) ([]CartLineDetail, float64, error)
}
