package services_test

import (
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/database"
	"github.com/shashiranjanraj/vastra/pkg/session"
)

// setupDB points the shared handle at a fresh in-memory sqlite database for
// the duration of one test.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{}, &models.Address{},
		&models.Category{}, &models.Product{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newSession() *session.Session {
	r := httptest.NewRequest("GET", "/checkout", nil)
	return session.FromCtx(r)
}

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	u := models.User{Name: "Test Shopper", Email: email, Password: "hash"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func createAddress(t *testing.T, db *gorm.DB, userID uint) models.Address {
	t.Helper()
	a := models.Address{
		UserID:      userID,
		FullName:    "Test Shopper",
		PhoneNumber: "9876543210",
		Pincode:     "110001",
		City:        "Delhi",
		State:       "Delhi",
		AddressLine: "12 Test Lane",
	}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("create address: %v", err)
	}
	return a
}

func createProduct(t *testing.T, db *gorm.DB, name string, price float64, discount *float64, stock int) models.Product {
	t.Helper()
	p := models.Product{
		Name:          name,
		Price:         price,
		DiscountPrice: discount,
		Stock:         stock,
		Sizes:         "S,M,L",
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

func createCartWithItem(t *testing.T, db *gorm.DB, userID, productID uint, qty int) models.Cart {
	t.Helper()
	cart := models.Cart{UserID: userID}
	if err := db.Create(&cart).Error; err != nil {
		t.Fatalf("create cart: %v", err)
	}
	item := models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: qty}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create cart item: %v", err)
	}
	return cart
}

func productStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var p models.Product
	if err := db.First(&p, id).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return p.Stock
}

func price(v float64) *float64 { return &v }
