package models

import "gorm.io/gorm"

// Cart is the per-user pending purchase. Created lazily on first use and
// deleted once it has been converted into an order.
type Cart struct {
	gorm.Model
	UserID uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
}

// CartItem is one product line in a cart. A cart holds at most one line per
// product; adding the same product again bumps the quantity instead.
type CartItem struct {
	gorm.Model
	CartID    uint    `gorm:"not null;index" json:"cart_id"`
	ProductID uint    `gorm:"not null;index" json:"product_id"`
	Quantity  int     `gorm:"not null;default:1" json:"quantity"`
	Size      string  `gorm:"size:20" json:"size,omitempty"`
	Product   Product `json:"product"`
}

// TotalPrice is the line total at the product's current final price.
func (i *CartItem) TotalPrice() float64 {
	return i.Product.FinalPrice() * float64(i.Quantity)
}

// CartTotals is the price breakdown shown on the cart and order pages.
type CartTotals struct {
	TotalPrice    float64 `json:"total_price"`    // Σ list price × qty
	TotalDiscount float64 `json:"total_discount"` // Σ (list − final) × qty
	OrderTotal    float64 `json:"total"`          // what the customer pays
}

// Totals computes the breakdown over a set of cart items.
func Totals(items []CartItem) CartTotals {
	var t CartTotals
	for _, it := range items {
		t.TotalPrice += it.Product.Price * float64(it.Quantity)
		t.TotalDiscount += it.Product.Discount() * float64(it.Quantity)
	}
	t.OrderTotal = t.TotalPrice - t.TotalDiscount
	return t
}

// Count sums the quantities across items, for the cart badge.
func Count(items []CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
