package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/royalsilk/storefront/internal/core/domain"
	"github.com/royalsilk/storefront/internal/core/ports"
)

const productsPerPage = 9

// CatalogHandler serves the index, products, product, and search routes.
type CatalogHandler struct {
	catalog ports.CatalogService
	logger  zerolog.Logger
}

func NewCatalogHandler(catalog ports.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

// Index serves the default route.
func (h *CatalogHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"page":  "index",
		"store": "Royal Silk Leicester",
		"routes": []string{
			"products", "product", "search", "cart",
			"user_register", "user_login",
		},
	})
}

// Products serves the paginated catalogue listing.
func (h *CatalogHandler) Products(c echo.Context) error {
	page, err := strconv.Atoi(param(c, "page"))
	if err != nil {
		page = 1
	}

	listing, err := h.catalog.ListProducts(c.Request().Context(), page, productsPerPage)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"page":    "products",
		"listing": listing,
	})
}

// Product serves a single product page.
func (h *CatalogHandler) Product(c echo.Context) error {
	id, err := strconv.Atoi(param(c, "product_id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "product not found"})
	}

	product, err := h.catalog.GetProduct(c.Request().Context(), id)
	if errors.Is(err, domain.ErrProductNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "product not found"})
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"page":    "product",
		"product": product,
	})
}

// Search serves the search route. The handler guards the no-term case itself;
// the service treats a missing term as a hard failure.
func (h *CatalogHandler) Search(c echo.Context) error {
	term := param(c, "search_term")
	if term == "" {
		return c.JSON(http.StatusOK, map[string]any{
			"page":    "search",
			"message": "No search term submitted.",
		})
	}

	outcome, err := h.catalog.Search(c.Request().Context(), term)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"page":    "search",
		"term":    term,
		"count":   outcome.Count,
		"results": outcome.Results,
	})
}
