package repositories

import (
	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/orm"
)

// OrderRepository handles order reads. Order creation happens inside the
// placement transaction in the order service, not here.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// FindOwned returns the order with items, products and address, only when
// it belongs to the user.
func (r *OrderRepository) FindOwned(id, userID uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().Model(&models.Order{}).
		Preload("Items").Preload("Items.Product").Preload("Address").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order)
	return order, err
}

// Find returns the order with its associations regardless of owner; used by
// the notification job, which runs outside any request.
func (r *OrderRepository) Find(id uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().Model(&models.Order{}).
		Preload("Items").Preload("Items.Product").Preload("Address").
		Where("id = ?", id).
		First(&order)
	return order, err
}

// ForUser lists a user's orders, newest first.
func (r *OrderRepository) ForUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().Model(&models.Order{}).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Get(&orders)
	return orders, err
}

// Save persists a status change.
func (r *OrderRepository) Save(order *models.Order) error {
	return orm.DB().Save(order)
}
