package services

import (
	"errors"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"gorm.io/gorm"
)

// AddressInput is the add/update form.
type AddressInput struct {
	FullName    string `json:"full_name"    validate:"required,min=2,max=255"`
	PhoneNumber string `json:"phone_number" validate:"required,min=7,max=15"`
	Pincode     string `json:"pincode"      validate:"required,digits=6"`
	City        string `json:"city"         validate:"required,max=100"`
	State       string `json:"state"        validate:"required,max=100"`
	Landmark    string `json:"landmark"     validate:"nullable,max=255"`
	AddressLine string `json:"address_line" validate:"required,max=500"`
}

// AddressService manages a user's shipping addresses. Addresses have an
// independent lifecycle from orders; orders reference them live.
type AddressService struct {
	addresses *repositories.AddressRepository
}

func NewAddressService() *AddressService {
	return &AddressService{addresses: repositories.NewAddressRepository()}
}

// List returns the user's addresses.
func (s *AddressService) List(userID uint) ([]models.Address, error) {
	return s.addresses.ForUser(userID)
}

// Add creates an address for the user.
func (s *AddressService) Add(userID uint, in AddressInput) (models.Address, error) {
	addr := models.Address{
		UserID:      userID,
		FullName:    in.FullName,
		PhoneNumber: in.PhoneNumber,
		Pincode:     in.Pincode,
		City:        in.City,
		State:       in.State,
		Landmark:    in.Landmark,
		AddressLine: in.AddressLine,
	}
	if err := s.addresses.Create(&addr); err != nil {
		return models.Address{}, err
	}
	return addr, nil
}

// Update modifies one of the user's addresses. Foreign addresses surface as
// NotFound.
func (s *AddressService) Update(userID, addressID uint, in AddressInput) (models.Address, error) {
	addr, err := s.addresses.FindOwned(addressID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Address{}, ErrNotFound
		}
		return models.Address{}, err
	}

	addr.FullName = in.FullName
	addr.PhoneNumber = in.PhoneNumber
	addr.Pincode = in.Pincode
	addr.City = in.City
	addr.State = in.State
	addr.Landmark = in.Landmark
	addr.AddressLine = in.AddressLine

	if err := s.addresses.Update(&addr); err != nil {
		return models.Address{}, err
	}
	return addr, nil
}
