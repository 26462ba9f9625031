package repositories

import (
	"errors"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/database"
	"github.com/shashiranjanraj/vastra/pkg/orm"
	"gorm.io/gorm"
)

// CartRepository handles cart and cart-item persistence.
type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

// ForUser returns the user's cart with items and their products, or
// gorm.ErrRecordNotFound when the user has no cart yet.
func (r *CartRepository) ForUser(userID uint) (models.Cart, error) {
	var cart models.Cart
	err := orm.DB().Model(&models.Cart{}).
		Preload("Items").Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cart)
	return cart, err
}

// GetOrCreate returns the user's cart, creating an empty one lazily.
func (r *CartRepository) GetOrCreate(userID uint) (models.Cart, error) {
	cart, err := r.ForUser(userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Cart{}, err
	}

	cart = models.Cart{UserID: userID}
	if err := orm.DB().Create(&cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

// ItemForProduct returns the cart line for a product, if present.
func (r *CartRepository) ItemForProduct(cartID, productID uint) (models.CartItem, error) {
	var item models.CartItem
	err := orm.DB().Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item)
	return item, err
}

// OwnedItem returns a cart item only when it belongs to the user's cart.
func (r *CartRepository) OwnedItem(itemID, userID uint) (models.CartItem, error) {
	var item models.CartItem
	err := database.DB.
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		Preload("Product").
		First(&item).Error
	return item, err
}

// SaveItem persists a new or updated cart line.
func (r *CartRepository) SaveItem(item *models.CartItem) error {
	return orm.DB().Save(item)
}

// CreateItem inserts a new cart line.
func (r *CartRepository) CreateItem(item *models.CartItem) error {
	return orm.DB().Create(item)
}

// DeleteItem removes a cart line.
func (r *CartRepository) DeleteItem(item *models.CartItem) error {
	return orm.DB().Delete(item)
}

// Count returns the badge count (sum of quantities) for a user, zero when
// the user has no cart.
func (r *CartRepository) Count(userID uint) int {
	cart, err := r.ForUser(userID)
	if err != nil {
		return 0
	}
	return models.Count(cart.Items)
}
