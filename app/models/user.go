package models

import "gorm.io/gorm"

// User is the primary user model.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
}

// Address is a shipping address owned by a user. Orders reference it live
// (no snapshot), matching the storefront's display semantics.
type Address struct {
	gorm.Model
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	FullName    string `gorm:"size:255;not null" json:"full_name"`
	PhoneNumber string `gorm:"size:30"  json:"phone_number"`
	Pincode     string `gorm:"size:10"  json:"pincode"`
	City        string `gorm:"size:100" json:"city"`
	State       string `gorm:"size:100" json:"state"`
	Landmark    string `gorm:"size:255" json:"landmark"`
	AddressLine string `gorm:"size:500" json:"address_line"`
}

// Text renders the address in a single shipping-label style block.
func (a *Address) Text() string {
	return a.FullName + ", " + a.AddressLine + ", " + a.City + ", " + a.State + " - " + a.Pincode
}
