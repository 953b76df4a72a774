package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/royalsilk/storefront/internal/core/domain"
	"github.com/royalsilk/storefront/internal/core/ports"
)

type recordingCatalog struct {
	stubCatalogService
	listedPage  int
	searchTerm  string
	searchCount int
}

func (s *recordingCatalog) ListProducts(_ context.Context, page, perPage int) (*ports.ProductPage, error) {
	s.listedPage = page
	return &ports.ProductPage{Page: page, PerPage: perPage}, nil
}

func (s *recordingCatalog) Search(_ context.Context, term string) (*ports.SearchOutcome, error) {
	s.searchTerm = term
	return &ports.SearchOutcome{Count: s.searchCount}, nil
}

func TestIndex(t *testing.T) {
	h := NewCatalogHandler(&stubCatalogService{}, zerolog.Nop())

	c, rec := cartGetContext("/")
	if err := h.Index(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	body := decodeBody(t, rec)
	if body["store"] != "Royal Silk Leicester" {
		t.Fatalf("unexpected index page: %v", body)
	}
}

func TestProducts_DefaultsToPageOne(t *testing.T) {
	catalog := &recordingCatalog{}
	h := NewCatalogHandler(catalog, zerolog.Nop())

	c, _ := cartGetContext("/?route=products")
	if err := h.Products(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if catalog.listedPage != 1 {
		t.Fatalf("expected page 1, got %d", catalog.listedPage)
	}
}

func TestProducts_ReadsPageParam(t *testing.T) {
	catalog := &recordingCatalog{}
	h := NewCatalogHandler(catalog, zerolog.Nop())

	c, _ := cartGetContext("/?route=products&page=3")
	if err := h.Products(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if catalog.listedPage != 3 {
		t.Fatalf("expected page 3, got %d", catalog.listedPage)
	}
}

func TestProduct_Found(t *testing.T) {
	catalog := &stubCatalogService{products: map[int]domain.Product{
		5: {ID: 5, Name: "Silk Scarf"},
	}}
	h := NewCatalogHandler(catalog, zerolog.Nop())

	c, rec := cartGetContext("/?route=product&product_id=5")
	if err := h.Product(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	product, _ := body["product"].(map[string]any)
	if product["name"] != "Silk Scarf" {
		t.Fatalf("unexpected product payload: %v", body)
	}
}

func TestProduct_NotFound(t *testing.T) {
	h := NewCatalogHandler(&stubCatalogService{products: map[int]domain.Product{}}, zerolog.Nop())

	c, rec := cartGetContext("/?route=product&product_id=99")
	if err := h.Product(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestProduct_MissingID(t *testing.T) {
	h := NewCatalogHandler(&stubCatalogService{}, zerolog.Nop())

	c, rec := cartGetContext("/?route=product")
	if err := h.Product(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSearch_EmptyTermIsGuarded(t *testing.T) {
	catalog := &recordingCatalog{}
	h := NewCatalogHandler(catalog, zerolog.Nop())

	c, rec := cartGetContext("/?route=search")
	if err := h.Search(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "No search term submitted." {
		t.Fatalf("unexpected body: %v", body)
	}
	if catalog.searchTerm != "" {
		t.Fatalf("service must not be called without a term")
	}
}

func TestSearch_WithTerm(t *testing.T) {
	catalog := &recordingCatalog{searchCount: 2}
	h := NewCatalogHandler(catalog, zerolog.Nop())

	c, rec := cartGetContext("/?route=search&search_term=silk")
	if err := h.Search(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if catalog.searchTerm != "silk" {
		t.Fatalf("expected term forwarded, got %q", catalog.searchTerm)
	}
	body := decodeBody(t, rec)
	if body["count"] != 2.0 {
		t.Fatalf("expected count 2, got %v", body["count"])
	}
}
