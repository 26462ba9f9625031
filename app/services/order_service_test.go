package services_test

import (
	"errors"
	"testing"

	"github.com/shashiranjanraj/vastra/app/buynow"
	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
)

func TestPlaceBuyNow(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "buyer@example.com")
	address := createAddress(t, db, user.ID)
	product := createProduct(t, db, "Kurta", 1499, price(1199), 10)
	sess := newSession()
	buynow.Save(sess, buynow.Intent{ProductID: product.ID, Quantity: 2, Total: 2398})

	svc := services.NewOrderService()
	order, err := svc.Place(user.ID, services.PlaceRequest{
		AddressID: address.ID,
		ProductID: product.ID,
		Quantity:  2,
		Size:      "M",
	}, sess)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	if order.TotalAmount != 2398 {
		t.Errorf("total = %v, want 2398", order.TotalAmount)
	}
	if order.Status != models.StatusPlaced {
		t.Errorf("status = %s, want Placed", order.Status)
	}
	if got := productStock(t, db, product.ID); got != 8 {
		t.Errorf("stock = %d, want 8", got)
	}

	var items []models.OrderItem
	db.Where("order_id = ?", order.ID).Find(&items)
	if len(items) != 1 {
		t.Fatalf("order items = %d, want 1", len(items))
	}
	if items[0].Price != 1199 || items[0].Quantity != 2 || items[0].Size != "M" {
		t.Errorf("item snapshot = %+v", items[0])
	}

	if _, ok := buynow.Load(sess); ok {
		t.Error("intent should be cleared after placement")
	}
}

func TestPlaceBuyNowInsufficientStock(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "buyer@example.com")
	address := createAddress(t, db, user.ID)
	product := createProduct(t, db, "Stole", 1299, nil, 1)

	_, err := services.NewOrderService().Place(user.ID, services.PlaceRequest{
		AddressID: address.ID,
		ProductID: product.ID,
		Quantity:  3,
	}, newSession())

	var stockErr *services.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
	if stockErr.Available != 1 {
		t.Errorf("available = %d, want 1", stockErr.Available)
	}
	if got := productStock(t, db, product.ID); got != 1 {
		t.Errorf("stock = %d, must be untouched", got)
	}
	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Errorf("orders = %d, want none", count)
	}
}

func TestPlaceCart(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "buyer@example.com")
	address := createAddress(t, db, user.ID)
	p1 := createProduct(t, db, "Tee", 599, nil, 10)
	p2 := createProduct(t, db, "Kurta", 1499, price(1199), 5)
	cart := createCartWithItem(t, db, user.ID, p1.ID, 2)
	second := models.CartItem{CartID: cart.ID, ProductID: p2.ID, Quantity: 1}
	if err := db.Create(&second).Error; err != nil {
		t.Fatal(err)
	}

	order, err := services.NewOrderService().Place(user.ID, services.PlaceRequest{
		AddressID: address.ID,
	}, newSession())
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	want := 599.0*2 + 1199.0
	if order.TotalAmount != want {
		t.Errorf("total = %v, want %v", order.TotalAmount, want)
	}
	if got := productStock(t, db, p1.ID); got != 8 {
		t.Errorf("p1 stock = %d, want 8", got)
	}
	if got := productStock(t, db, p2.ID); got != 4 {
		t.Errorf("p2 stock = %d, want 4", got)
	}

	var carts, items int64
	db.Model(&models.Cart{}).Where("user_id = ?", user.ID).Count(&carts)
	db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&items)
	if carts != 0 || items != 0 {
		t.Errorf("cart remnants: carts=%d items=%d", carts, items)
	}
}

func TestPlaceCartAllOrNothing(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "buyer@example.com")
	address := createAddress(t, db, user.ID)
	p1 := createProduct(t, db, "Tee", 599, nil, 10)
	p2 := createProduct(t, db, "Saree", 7999, nil, 1)
	cart := createCartWithItem(t, db, user.ID, p1.ID, 2)
	short := models.CartItem{CartID: cart.ID, ProductID: p2.ID, Quantity: 3}
	if err := db.Create(&short).Error; err != nil {
		t.Fatal(err)
	}

	_, err := services.NewOrderService().Place(user.ID, services.PlaceRequest{
		AddressID: address.ID,
	}, newSession())

	var stockErr *services.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
	if stockErr.Product != "Saree" {
		t.Errorf("failing product = %q", stockErr.Product)
	}

	// Nothing may have been applied, including the valid first line.
	if got := productStock(t, db, p1.ID); got != 10 {
		t.Errorf("p1 stock = %d, must be untouched", got)
	}
	var orders, items int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&items)
	if orders != 0 {
		t.Errorf("orders = %d, want none", orders)
	}
	if items != 2 {
		t.Errorf("cart items = %d, cart must survive", items)
	}
}

func TestPlaceEmptyCart(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "buyer@example.com")
	address := createAddress(t, db, user.ID)
	if err := db.Create(&models.Cart{UserID: user.ID}).Error; err != nil {
		t.Fatal(err)
	}

	_, err := services.NewOrderService().Place(user.ID, services.PlaceRequest{
		AddressID: address.ID,
	}, newSession())
	if !errors.Is(err, services.ErrEmptyCart) {
		t.Fatalf("err = %v, want ErrEmptyCart", err)
	}
}

func TestPlaceForeignAddress(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "buyer@example.com")
	other := createUser(t, db, "other@example.com")
	foreign := createAddress(t, db, other.ID)
	product := createProduct(t, db, "Belt", 999, nil, 5)

	_, err := services.NewOrderService().Place(user.ID, services.PlaceRequest{
		AddressID: foreign.ID,
		ProductID: product.ID,
		Quantity:  1,
	}, newSession())
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound for another user's address", err)
	}
}

func TestCancelPlacedOrder(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "buyer@example.com")
	address := createAddress(t, db, user.ID)
	order := models.Order{UserID: user.ID, AddressID: address.ID, TotalAmount: 999, Status: models.StatusPlaced}
	if err := db.Create(&order).Error; err != nil {
		t.Fatal(err)
	}

	got, err := services.NewOrderService().Cancel(order.ID, user.ID)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if got.Status != models.StatusCancelled {
		t.Errorf("status = %s, want Cancelled", got.Status)
	}
}

func TestCancelShippedOrder(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "buyer@example.com")
	address := createAddress(t, db, user.ID)
	order := models.Order{UserID: user.ID, AddressID: address.ID, TotalAmount: 999, Status: models.StatusShipped}
	if err := db.Create(&order).Error; err != nil {
		t.Fatal(err)
	}

	_, err := services.NewOrderService().Cancel(order.ID, user.ID)
	if !errors.Is(err, services.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestAdvanceFulfilmentPath(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "buyer@example.com")
	address := createAddress(t, db, user.ID)
	order := models.Order{UserID: user.ID, AddressID: address.ID, TotalAmount: 999, Status: models.StatusPlaced}
	if err := db.Create(&order).Error; err != nil {
		t.Fatal(err)
	}

	svc := services.NewOrderService()

	got, err := svc.Advance(order.ID, models.StatusShipped)
	if err != nil {
		t.Fatalf("Placed→Shipped: %v", err)
	}
	if got.Status != models.StatusShipped {
		t.Fatalf("status = %s", got.Status)
	}

	if _, err := svc.Advance(order.ID, models.StatusDelivered); err != nil {
		t.Fatalf("Shipped→Delivered: %v", err)
	}

	if _, err := svc.Advance(order.ID, models.StatusShipped); !errors.Is(err, services.ErrInvalidTransition) {
		t.Errorf("Delivered is terminal, got err = %v", err)
	}
}

func TestCancelForeignOrder(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "owner@example.com")
	intruder := createUser(t, db, "intruder@example.com")
	address := createAddress(t, db, owner.ID)
	order := models.Order{UserID: owner.ID, AddressID: address.ID, TotalAmount: 999, Status: models.StatusPlaced}
	if err := db.Create(&order).Error; err != nil {
		t.Fatal(err)
	}

	_, err := services.NewOrderService().Cancel(order.ID, intruder.ID)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound for foreign order", err)
	}
}
