package repositories

import (
	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/orm"
)

// AddressRepository handles shipping addresses. Every read is scoped to the
// owning user so foreign rows behave as if they do not exist.
type AddressRepository struct{}

func NewAddressRepository() *AddressRepository {
	return &AddressRepository{}
}

// ForUser lists a user's addresses.
func (r *AddressRepository) ForUser(userID uint) ([]models.Address, error) {
	var addrs []models.Address
	err := orm.DB().Model(&models.Address{}).Where("user_id = ?", userID).Get(&addrs)
	return addrs, err
}

// FindOwned returns the address only when it belongs to the user.
func (r *AddressRepository) FindOwned(id, userID uint) (models.Address, error) {
	var addr models.Address
	err := orm.DB().Model(&models.Address{}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&addr)
	return addr, err
}

// Create persists a new address.
func (r *AddressRepository) Create(addr *models.Address) error {
	return orm.DB().Create(addr)
}

// Update persists changes to an existing address.
func (r *AddressRepository) Update(addr *models.Address) error {
	return orm.DB().Save(addr)
}
