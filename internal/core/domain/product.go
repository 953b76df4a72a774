package domain

import "errors"

var ErrProductNotFound = errors.New("product not found")
var ErrSearchTermMissing = errors.New("search term not provided")

// Product is a catalogue entry with per-size stock levels.
type Product struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Category    string         `json:"category"`
	Type        string         `json:"type"`
	Color       string         `json:"color"`
	Material    string         `json:"material"`
	Description string         `json:"description"`
	BasePrice   float64        `json:"base_price"`
	ImagePath   string         `json:"image_path"`
	Sizes       map[string]int `json:"sizes"`
}

// SearchResult is one catalogue row matched by a free-text search. A product
// with several size variants can yield several results.
type SearchResult struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Type      string  `json:"type"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Material  string  `json:"material"`
	Price     float64 `json:"price"`
	ImagePath string  `json:"image_path"`
}
