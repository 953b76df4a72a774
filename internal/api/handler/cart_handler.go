package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/royalsilk/storefront/internal/api/metrics"
	"github.com/royalsilk/storefront/internal/api/middleware"
	"github.com/royalsilk/storefront/internal/core/ports"
)

const (
	defaultSize     = "S"
	defaultQuantity = 1
)

// CartHandler serves the cart route. One request can carry a removal, a
// quantity update, and an addition; they are applied in that order before the
// cart page is rendered.
type CartHandler struct {
	cart    ports.CartService
	catalog ports.CatalogService
	audit   auditSink
	logger  zerolog.Logger
}

func NewCartHandler(cart ports.CartService, catalog ports.CatalogService, audit auditSink, logger zerolog.Logger) *CartHandler {
	if audit == nil {
		audit = noopAudit{}
	}
	return &CartHandler{cart: cart, catalog: catalog, audit: audit, logger: logger}
}

type cartPage struct {
	Page     string                 `json:"page"`
	Items    []ports.CartLineDetail `json:"items"`
	Subtotal float64                `json:"subtotal"`
	Count    int                    `json:"count"`
}

// Cart applies the request's cart mutations and renders the cart contents
// joined against the catalogue.
func (h *CartHandler) Cart(c echo.Context) error {
	ctx := c.Request().Context()
	sid := middleware.SessionID(c)

	if removeID, err := strconv.Atoi(c.QueryParam("remove")); err == nil {
		if err := h.cart.RemoveProduct(ctx, sid, removeID); err != nil {
			return err
		}
		metrics.CartOperationsTotal.WithLabelValues("remove").Inc()
		h.audit.Enqueue(auditEntry(c, "cart", "remove", strconv.Itoa(removeID)))
	}

	if param(c, "update") != "" {
		if err := h.applyQuantityUpdates(c, sid); err != nil {
			return err
		}
	}

	if productID, err := strconv.Atoi(param(c, "product_id")); err == nil {
		size := param(c, "size")
		if size == "" {
			size = defaultSize
		}
		qty, err := strconv.Atoi(param(c, "quantity"))
		if err != nil {
			qty = defaultQuantity
		}
		if err := h.cart.Add(ctx, sid, productID, size, qty); err != nil {
			return err
		}
		metrics.CartOperationsTotal.WithLabelValues("add").Inc()
		h.audit.Enqueue(auditEntry(c, "cart", "add", strconv.Itoa(productID)))
	}

	lines, err := h.cart.Contents(ctx, sid)
	if err != nil {
		return err
	}

	items, subtotal, err := h.catalog.PriceCart(ctx, lines)
	if err != nil {
		return err
	}

	count := 0
	for _, line := range lines {
		count += line.Quantity
	}

	return c.JSON(http.StatusOK, cartPage{
		Page:     "cart",
		Items:    items,
		Subtotal: subtotal,
		Count:    count,
	})
}

// applyQuantityUpdates collects quantity-<product_id> form fields and maps
// them onto the cart's composite keys. A product with several sizes in the
// cart has every size set to the submitted quantity, mirroring the cart
// form's one-field-per-product layout. Unknown products are ignored.
func (h *CartHandler) applyQuantityUpdates(c echo.Context, sid string) error {
	ctx := c.Request().Context()

	lines, err := h.cart.Contents(ctx, sid)
	if err != nil {
		return err
	}

	_ = c.Request().ParseForm()
	quantities := make(map[string]int)
	for field, values := range c.Request().PostForm {
		if !strings.HasPrefix(field, "quantity-") || len(values) == 0 {
			continue
		}
		productID, err := strconv.Atoi(strings.TrimPrefix(field, "quantity-"))
		if err != nil {
			continue
		}
		qty, err := strconv.Atoi(values[0])
		if err != nil {
			continue
		}
		for _, line := range lines {
			if line.ProductID == productID {
				quantities[line.Key()] = qty
			}
		}
	}

	if len(quantities) == 0 {
		return nil
	}

	if err := h.cart.UpdateQuantities(ctx, sid, quantities); err != nil {
		return err
	}
	metrics.CartOperationsTotal.WithLabelValues("update").Inc()
	h.audit.Enqueue(auditEntry(c, "cart", "update", ""))
	return nil
}
