package models

import (
	"strings"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vastra/pkg/storage"
)

// Category groups products for browsing and search filtering.
type Category struct {
	gorm.Model
	Name string `gorm:"size:255;not null"      json:"name"`
	Slug string `gorm:"size:255;uniqueIndex"   json:"slug"`
}

// Product is a catalogue entry. Stock is the only field the order engine
// mutates; everything else is read-only to the core flows.
type Product struct {
	gorm.Model
	Name          string   `gorm:"size:255;not null;index" json:"name"`
	Description   string   `gorm:"type:text"               json:"description"`
	Price         float64  `gorm:"not null;default:0"      json:"price"`
	DiscountPrice *float64 `json:"discount_price,omitempty"`
	Stock         int      `gorm:"not null;default:0"      json:"stock"`
	Sizes         string   `gorm:"size:255"                json:"-"` // comma-separated, e.g. "S,M,L,XL"
	ImagePath     string   `gorm:"size:500"                json:"image_path,omitempty"`
	ImageURL      string   `gorm:"-"                       json:"image_url,omitempty"`
	CategoryID    uint     `gorm:"index"                   json:"category_id"`
	Category      Category `json:"category,omitempty"`
}

// AfterFind resolves the stored image path to a public URL on the configured
// storage disk.
func (p *Product) AfterFind(_ *gorm.DB) error {
	if p.ImagePath != "" {
		p.ImageURL = storage.URL(p.ImagePath)
	}
	return nil
}

// FinalPrice is the discounted price when set, otherwise the list price.
func (p *Product) FinalPrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// Discount is the per-unit saving against the list price.
func (p *Product) Discount() float64 {
	return p.Price - p.FinalPrice()
}

// SizeList splits the stored size string into individual sizes.
func (p *Product) SizeList() []string {
	if p.Sizes == "" {
		return nil
	}
	parts := strings.Split(p.Sizes, ",")
	out := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
