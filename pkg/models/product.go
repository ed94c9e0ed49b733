package models

// Product is one storefront catalog entry as published by the pipeline
// and served by the API.
type Product struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"` // currency-prefixed, e.g. "$650"
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Features    []string `json:"features"`
}

// RawProduct is a scraped catalog entry before cleanup.
// Pointer fields distinguish an absent or null value from an empty one.
type RawProduct struct {
	ID          *int     `json:"id,omitempty"`
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *string  `json:"price,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Features    []string `json:"features,omitempty"`
}

// CategoryCount is the number of products carrying one category label.
type CategoryCount struct {
	Label   string  `json:"label"`
	Name    string  `json:"name,omitempty"` // localized label
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// StrPtr is a helper for building RawProduct literals.
func StrPtr(s string) *string { return &s }

// Value returns the pointed-to string or "".
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
