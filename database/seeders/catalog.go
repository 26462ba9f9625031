package seeders

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vastra/app/models"
)

func init() {
	Register("catalog", SeedCatalog)
}

func price(v float64) *float64 { return &v }

// SeedCatalog creates the starter categories and products. Idempotent:
// it skips seeding when any product already exists.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []models.Category{
		{Name: "Men", Slug: "men"},
		{Name: "Women", Slug: "women"},
		{Name: "Kids", Slug: "kids"},
		{Name: "Accessories", Slug: "accessories"},
	}
	if err := db.Create(&categories).Error; err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}

	bySlug := make(map[string]uint, len(categories))
	for _, c := range categories {
		bySlug[c.Slug] = c.ID
	}

	products := []models.Product{
		{
			Name:          "Classic Cotton Kurta",
			Description:   "Handloom cotton kurta in off-white with mandarin collar.",
			Price:         1499,
			DiscountPrice: price(1199),
			Stock:         40,
			Sizes:         "S,M,L,XL",
			ImagePath:     "products/classic-cotton-kurta.jpg",
			CategoryID:    bySlug["men"],
		},
		{
			Name:        "Slim Fit Denim Jacket",
			Description: "Mid-wash denim jacket with brushed metal buttons.",
			Price:       2799,
			Stock:       25,
			Sizes:       "M,L,XL",
			ImagePath:   "products/slim-fit-denim-jacket.jpg",
			CategoryID:  bySlug["men"],
		},
		{
			Name:          "Banarasi Silk Saree",
			Description:   "Pure silk saree with gold zari border, blouse piece included.",
			Price:         7999,
			DiscountPrice: price(6499),
			Stock:         12,
			ImagePath:     "products/banarasi-silk-saree.jpg",
			CategoryID:    bySlug["women"],
		},
		{
			Name:          "Floral Anarkali Set",
			Description:   "Georgette anarkali with dupatta, floral block print.",
			Price:         3499,
			DiscountPrice: price(2999),
			Stock:         18,
			Sizes:         "S,M,L",
			ImagePath:     "products/floral-anarkali-set.jpg",
			CategoryID:    bySlug["women"],
		},
		{
			Name:        "Dino Print T-Shirt",
			Description: "Soft cotton tee with glow-in-the-dark dinosaur print.",
			Price:       599,
			Stock:       60,
			Sizes:       "2-3Y,4-5Y,6-7Y",
			ImagePath:   "products/dino-print-tshirt.jpg",
			CategoryID:  bySlug["kids"],
		},
		{
			Name:          "Leather Belt",
			Description:   "Full-grain leather belt with matte buckle.",
			Price:         999,
			DiscountPrice: price(799),
			Stock:         0,
			ImagePath:     "products/leather-belt.jpg",
			CategoryID:    bySlug["accessories"],
		},
		{
			Name:        "Woven Silk Stole",
			Description: "Lightweight silk stole in dual tone.",
			Price:       1299,
			Stock:       3,
			ImagePath:   "products/woven-silk-stole.jpg",
			CategoryID:  bySlug["accessories"],
		},
	}
	if err := db.Create(&products).Error; err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	return nil
}
