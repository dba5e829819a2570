package models

import (
	"math"
	"time"
)

// Product represents a product in the catalog
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Brand       string    `json:"brand"`
	Price       float64   `json:"price"`
	OldPrice    *float64  `json:"oldPrice"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"reviewCount"`
	Features    []string  `json:"features"`
	Image       string    `json:"image,omitempty"`
	InStock     bool      `json:"inStock"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DiscountPercentage returns the rounded display discount, or 0 when
// the product has no old price to compare against.
func (p Product) DiscountPercentage() int {
	if p.OldPrice == nil || *p.OldPrice <= 0 {
		return 0
	}
	return int(math.Round((*p.OldPrice - p.Price) / *p.OldPrice * 100))
}

// ProductDraft is the payload for creating a product. The engine assigns
// the id and both timestamps.
type ProductDraft struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category" binding:"required"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price" binding:"min=0"`
	OldPrice    *float64 `json:"oldPrice"`
	Rating      float64  `json:"rating" binding:"min=0,max=5"`
	ReviewCount int      `json:"reviewCount" binding:"min=0"`
	Features    []string `json:"features"`
	Image       string   `json:"image"`
	InStock     bool     `json:"inStock"`
	Featured    bool     `json:"featured"`
}

// ProductUpdate represents the updatable fields of a product. Nil fields
// are left untouched.
type ProductUpdate struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Brand       *string   `json:"brand,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	OldPrice    *float64  `json:"oldPrice,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	ReviewCount *int      `json:"reviewCount,omitempty"`
	Features    *[]string `json:"features,omitempty"`
	Image       *string   `json:"image,omitempty"`
	InStock     *bool     `json:"inStock,omitempty"`
	Featured    *bool     `json:"featured,omitempty"`
}
