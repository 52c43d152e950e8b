package models

import (
	"time"

	"github.com/gosimple/slug"
)

// Listing is a marketplace-visible harvest batch.
type Listing struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Price          float64   `json:"price"`
	Quantity       float64   `json:"quantity"`
	Unit           string    `json:"unit"`
	Category       string    `json:"category"`
	Location       string    `json:"location"`
	Farmer         Party     `json:"farmer"`
	Images         []string  `json:"images"`
	HarvestDate    time.Time `json:"harvestDate"`
	Certifications []string  `json:"certifications"`
	QRCode         string    `json:"qrCode,omitempty"`
}

// Slug is the human readable tail of the product URL.
func (l Listing) Slug() string {
	s := slug.Make(l.Name)
	if s == "" {
		return "product"
	}
	return s
}

type SearchSuggestion struct {
	Text     string `json:"text"`
	Category string `json:"category,omitempty"`
	Count    int    `json:"count,omitempty"`
}
