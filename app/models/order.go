package models

import "gorm.io/gorm"

// OrderStatus is the order lifecycle stage.
type OrderStatus string

const (
	StatusPlaced    OrderStatus = "Placed"
	StatusShipped   OrderStatus = "Shipped"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"
)

// statusSteps is the linear fulfilment path. Cancelled sits outside it,
// reachable only from Placed.
var statusSteps = []OrderStatus{StatusPlaced, StatusShipped, StatusDelivered}

// Order is the immutable record of a completed placement.
type Order struct {
	gorm.Model
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	AddressID   uint        `gorm:"not null" json:"address_id"`
	TotalAmount float64     `gorm:"not null" json:"total_amount"`
	Status      OrderStatus `gorm:"size:20;not null;default:Placed;index" json:"status"`
	Address     Address     `json:"address"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem snapshots the final price and size at placement time; later
// product price changes never touch it.
type OrderItem struct {
	gorm.Model
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	ProductID uint    `gorm:"not null;index" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
	Size      string  `gorm:"size:20" json:"size,omitempty"`
	Product   Product `json:"product"`
}

// CanTransition reports whether moving to next is a legal status change.
// The path is strictly linear and Cancelled is terminal, reachable only
// from Placed.
func (o *Order) CanTransition(next OrderStatus) bool {
	if o.Status == StatusCancelled || o.Status == StatusDelivered {
		return false
	}
	if next == StatusCancelled {
		return o.Status == StatusPlaced
	}
	for i, s := range statusSteps {
		if s == o.Status {
			return i+1 < len(statusSteps) && statusSteps[i+1] == next
		}
	}
	return false
}

// StatusStep is one entry of the tracking timeline shown on the order page.
type StatusStep struct {
	Name   string `json:"name"`
	Status string `json:"status"` // "completed" | "active" | "pending" | "cancelled"
}

// StatusSteps renders the fulfilment timeline relative to the current
// status. A cancelled order collapses to Pending → Placed → Cancelled.
func (o *Order) StatusSteps() []StatusStep {
	if o.Status == StatusCancelled {
		return []StatusStep{
			{Name: "Pending", Status: "completed"},
			{Name: string(StatusPlaced), Status: "completed"},
			{Name: string(StatusCancelled), Status: "cancelled"},
		}
	}

	steps := make([]StatusStep, 0, len(statusSteps))
	reached := false
	for _, s := range statusSteps {
		switch {
		case s == o.Status:
			steps = append(steps, StatusStep{Name: string(s), Status: "active"})
			reached = true
		case !reached:
			steps = append(steps, StatusStep{Name: string(s), Status: "completed"})
		default:
			steps = append(steps, StatusStep{Name: string(s), Status: "pending"})
		}
	}
	return steps
}

// ItemTotals recomputes the display breakdown for an order's items using
// current product prices. Snapshotted OrderItem.Price stays authoritative
// for what was charged; this mirrors the totals box on the detail page.
func (o *Order) ItemTotals() CartTotals {
	var t CartTotals
	for _, it := range o.Items {
		t.TotalPrice += it.Product.Price * float64(it.Quantity)
		t.TotalDiscount += it.Product.Discount() * float64(it.Quantity)
	}
	t.OrderTotal = t.TotalPrice - t.TotalDiscount
	return t
}
