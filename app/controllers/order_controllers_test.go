package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/vastra/app/controllers"
	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
	"github.com/shashiranjanraj/vastra/pkg/database"
	"github.com/shashiranjanraj/vastra/pkg/middleware"
)

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

func seedOrderFixtures(t *testing.T, db *gorm.DB, stock int) (models.User, models.Address, models.Product) {
	t.Helper()

	user := models.User{Name: "Test Shopper", Email: "shopper@example.com", Password: "hash"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	address := models.Address{
		UserID:      user.ID,
		FullName:    "Test Shopper",
		PhoneNumber: "9876543210",
		Pincode:     "110001",
		City:        "Delhi",
		State:       "Delhi",
		AddressLine: "12 Test Lane",
	}
	if err := db.Create(&address).Error; err != nil {
		t.Fatalf("create address: %v", err)
	}

	product := models.Product{Name: "Cotton Kurta", Price: 1199, Stock: stock, Sizes: "S,M,L"}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}

	return user, address, product
}

// placeOrder posts the placement form as the given user and returns the
// recorded response. xhr toggles the XMLHttpRequest marker header.
func placeOrder(t *testing.T, userID uint, form url.Values, xhr bool) *httptest.ResponseRecorder {
	t.Helper()

	handler := ctx.Wrap(controllers.NewOrderController().Place)

	req := httptest.NewRequest(http.MethodPost, "/place-order", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if xhr {
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
	}
	req = req.WithContext(middleware.WithUser(req.Context(), userID))

	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func assertNoStoreHeaders(t *testing.T, h http.Header) {
	t.Helper()

	if got := h.Get("Cache-Control"); got != "no-cache, no-store, must-revalidate" {
		t.Errorf("Cache-Control = %q, want %q", got, "no-cache, no-store, must-revalidate")
	}
	if got := h.Get("Pragma"); got != "no-cache" {
		t.Errorf("Pragma = %q, want %q", got, "no-cache")
	}
	if got := h.Get("Expires"); got != "0" {
		t.Errorf("Expires = %q, want %q", got, "0")
	}
}

func TestPlaceFormPostRedirectsWithNoStoreHeaders(t *testing.T) {
	db := setupDB(t)
	user, address, product := seedOrderFixtures(t, db, 10)

	rec := placeOrder(t, user.ID, url.Values{
		"address_id": {strconv.Itoa(int(address.ID))},
		"product_id": {strconv.Itoa(int(product.ID))},
		"quantity":   {"2"},
		"size":       {"M"},
	}, false)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	assertNoStoreHeaders(t, rec.Header())

	var order models.Order
	if err := db.Where("user_id = ?", user.ID).First(&order).Error; err != nil {
		t.Fatalf("load placed order: %v", err)
	}
	want := "/order-success/" + strconv.Itoa(int(order.ID))
	if got := rec.Header().Get("Location"); got != want {
		t.Errorf("Location = %q, want %q", got, want)
	}
}

func TestPlaceXHRReturnsCreatedJSON(t *testing.T) {
	db := setupDB(t)
	user, address, product := seedOrderFixtures(t, db, 10)

	rec := placeOrder(t, user.ID, url.Values{
		"address_id": {strconv.Itoa(int(address.ID))},
		"product_id": {strconv.Itoa(int(product.ID))},
		"quantity":   {"1"},
	}, true)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	assertNoStoreHeaders(t, rec.Header())

	var body struct {
		Status int `json:"status"`
		Data   struct {
			Message string `json:"message"`
			OrderID uint   `json:"order_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Data.Message != "Order placed successfully!" {
		t.Errorf("message = %q, want %q", body.Data.Message, "Order placed successfully!")
	}
	if body.Data.OrderID == 0 {
		t.Error("order_id missing from response")
	}
}

func TestPlaceXHRInsufficientStock(t *testing.T) {
	db := setupDB(t)
	user, address, product := seedOrderFixtures(t, db, 1)

	rec := placeOrder(t, user.ID, url.Values{
		"address_id": {strconv.Itoa(int(address.ID))},
		"product_id": {strconv.Itoa(int(product.ID))},
		"quantity":   {"5"},
	}, true)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if got := rec.Header().Get("Cache-Control"); got != "" {
		t.Errorf("Cache-Control set on failure: %q", got)
	}

	var body struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Message != "Not enough stock. Only 1 left." {
		t.Errorf("message = %q, want %q", body.Message, "Not enough stock. Only 1 left.")
	}

	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Errorf("orders created = %d, want 0", count)
	}
}
