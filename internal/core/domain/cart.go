package domain

import (
	"fmt"
	"strings"
)

// Line is a single entry in a visitor's cart: one product in one size.
type Line struct {
	ProductID int    `json:"product_id"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// Key returns the composite cart key for this line, e.g. "5-S".
func (l Line) Key() string {
	return CartKey(l.ProductID, l.Size)
}

// CartKey builds the composite key used to deduplicate cart entries.
// Size is normalised to uppercase so "s" and "S" address the same line.
func CartKey(productID int, size string) string {
	return fmt.Sprintf("%d-%s", productID, strings.ToUpper(size))
}

// Cart holds the session's cart lines in insertion order. At most one line
// exists per (product, size) pair; adding the same pair again increments the
// stored quantity. The zero value is an empty, usable cart.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Add merges (productID, size, qty) into the cart. An existing line for the
// same product and size has its quantity incremented; otherwise a new line is
// appended. Quantities are not bounded above here; stock limits are a
// presentation concern.
func (c *Cart) Add(productID int, size string, qty int) {
	key := CartKey(productID, size)
	for i := range c.Lines {
		if c.Lines[i].Key() == key {
			c.Lines[i].Quantity += qty
			return
		}
	}
	c.Lines = append(c.Lines, Line{
		ProductID: productID,
		Size:      strings.ToUpper(size),
		Quantity:  qty,
	})
}

// Contents returns the cart lines in insertion order. Never nil.
func (c *Cart) Contents() []Line {
	if c.Lines == nil {
		return []Line{}
	}
	return c.Lines
}

// RemoveProduct drops every line for the given product id, regardless of
// size. Removal is deliberately coarser than addition: the storefront's
// remove control acts on the product, not on a single size variant.
func (c *Cart) RemoveProduct(productID int) {
	kept := c.Lines[:0]
	for _, line := range c.Lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	c.Lines = kept
}

// UpdateQuantities sets new quantities by composite key, clamping each to a
// minimum of 1. Keys not present in the cart are silently ignored; removal,
// not a zero quantity, is how an item leaves the cart.
func (c *Cart) UpdateQuantities(quantities map[string]int) {
	for i := range c.Lines {
		if qty, ok := quantities[c.Lines[i].Key()]; ok {
			c.Lines[i].Quantity = max(1, qty)
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// Count returns the total number of units across all lines.
func (c *Cart) Count() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}
