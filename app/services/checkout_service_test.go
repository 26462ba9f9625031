package services_test

import (
	"errors"
	"testing"

	"github.com/shashiranjanraj/vastra/app/buynow"
	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
)

func TestResolveExplicitBuyNow(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "buyer@example.com")
	product := createProduct(t, db, "Kurta", 1499, price(1199), 10)
	sess := newSession()

	svc := services.NewCheckoutService()
	got, err := svc.Resolve(user.ID, services.ResolveRequest{
		ProductID: product.ID,
		Quantity:  2,
		Size:      "M",
	}, sess)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if got.Mode != services.ModeBuyNow {
		t.Fatalf("mode = %s, want buy_now", got.Mode)
	}
	if got.Quantity != 2 || got.Total != 2398 {
		t.Errorf("quantity=%d total=%v, want 2 / 2398", got.Quantity, got.Total)
	}
	if got.Warning != "" {
		t.Errorf("unexpected warning %q", got.Warning)
	}

	intent, ok := buynow.Load(sess)
	if !ok {
		t.Fatal("expected intent saved in session")
	}
	if intent.ProductID != product.ID || intent.Quantity != 2 || intent.Size != "M" {
		t.Errorf("intent = %+v", intent)
	}
}

func TestResolveBuyNowClampsQuantity(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "buyer@example.com")
	product := createProduct(t, db, "Stole", 1299, nil, 3)
	sess := newSession()

	got, err := services.NewCheckoutService().Resolve(user.ID, services.ResolveRequest{
		ProductID: product.ID,
		Quantity:  5,
	}, sess)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if got.Quantity != 3 {
		t.Errorf("quantity = %d, want clamped to 3", got.Quantity)
	}
	if got.Warning != "Only 3 units left. Quantity adjusted." {
		t.Errorf("warning = %q", got.Warning)
	}
	if got.Total != 1299*3 {
		t.Errorf("total = %v, want %v", got.Total, 1299.0*3)
	}
	if intent, _ := buynow.Load(sess); intent.Quantity != 3 {
		t.Errorf("stored intent quantity = %d, want 3", intent.Quantity)
	}
}

func TestResolveBuyNowOutOfStock(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "buyer@example.com")
	product := createProduct(t, db, "Belt", 999, nil, 0)
	sess := newSession()

	_, err := services.NewCheckoutService().Resolve(user.ID, services.ResolveRequest{
		ProductID: product.ID,
		Quantity:  1,
	}, sess)
	if !errors.Is(err, services.ErrOutOfStock) {
		t.Fatalf("err = %v, want ErrOutOfStock", err)
	}
	if _, ok := buynow.Load(sess); ok {
		t.Error("no intent may be written for a sold-out product")
	}
}

func TestResolveResumesStoredIntent(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "buyer@example.com")
	product := createProduct(t, db, "Saree", 7999, price(6499), 12)
	sess := newSession()

	buynow.Save(sess, buynow.Intent{ProductID: product.ID, Quantity: 2, Size: "L", Total: 12998})

	// Stock drops after the intent was stored; resumption replays the
	// stored numbers verbatim.
	db.Model(&product).Update("stock", 1)

	got, err := services.NewCheckoutService().Resolve(user.ID, services.ResolveRequest{
		Referrer: "http://shop.test/checkout",
	}, sess)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Mode != services.ModeBuyNow {
		t.Fatalf("mode = %s, want buy_now", got.Mode)
	}
	if got.Quantity != 2 || got.Total != 12998 || got.Size != "L" {
		t.Errorf("resumed context = qty %d size %q total %v", got.Quantity, got.Size, got.Total)
	}
}

func TestResolveClearsStaleIntent(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "buyer@example.com")
	product := createProduct(t, db, "Jacket", 2799, nil, 5)
	sess := newSession()

	buynow.Save(sess, buynow.Intent{ProductID: product.ID, Quantity: 1, Total: 2799})

	got, err := services.NewCheckoutService().Resolve(user.ID, services.ResolveRequest{
		Referrer: "http://shop.test/orders",
	}, sess)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Mode != services.ModeEmpty {
		t.Errorf("mode = %s, want empty (cart is empty, intent expired)", got.Mode)
	}
	if _, ok := buynow.Load(sess); ok {
		t.Error("stale intent should be cleared")
	}
}

func TestResolveAddressDetourKeepsIntent(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "buyer@example.com")
	product := createProduct(t, db, "Anarkali", 3499, nil, 8)
	sess := newSession()

	buynow.Save(sess, buynow.Intent{ProductID: product.ID, Quantity: 1, Total: 3499})

	got, err := services.NewCheckoutService().Resolve(user.ID, services.ResolveRequest{
		Referrer: "http://shop.test/somewhere-else",
		From:     "address_add",
	}, sess)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Mode != services.ModeBuyNow {
		t.Errorf("mode = %s, want buy_now after the address round trip", got.Mode)
	}
}

func TestResolveCartMode(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "buyer@example.com")
	p1 := createProduct(t, db, "Tee", 599, nil, 10)
	p2 := createProduct(t, db, "Kurta", 1499, price(1199), 10)
	cart := createCartWithItem(t, db, user.ID, p1.ID, 2)
	second := models.CartItem{CartID: cart.ID, ProductID: p2.ID, Quantity: 1}
	if err := db.Create(&second).Error; err != nil {
		t.Fatalf("create cart item: %v", err)
	}

	got, err := services.NewCheckoutService().Resolve(user.ID, services.ResolveRequest{
		Referrer: "http://shop.test/cart",
	}, newSession())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Mode != services.ModeCart {
		t.Fatalf("mode = %s, want cart", got.Mode)
	}
	if len(got.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(got.Items))
	}
	want := 599.0*2 + 1199.0
	if got.Total != want {
		t.Errorf("total = %v, want %v", got.Total, want)
	}
}

func TestResolveEmptyCart(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "buyer@example.com")

	got, err := services.NewCheckoutService().Resolve(user.ID, services.ResolveRequest{}, newSession())
	if err != nil {
		t.Fatalf("empty cart must not be an error, got %v", err)
	}
	if got.Mode != services.ModeEmpty {
		t.Errorf("mode = %s, want empty", got.Mode)
	}
}

func TestResolveResumedProductGone(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "buyer@example.com")
	sess := newSession()

	buynow.Save(sess, buynow.Intent{ProductID: 9999, Quantity: 1, Total: 100})

	_, err := services.NewCheckoutService().Resolve(user.ID, services.ResolveRequest{
		Referrer: "http://shop.test/checkout",
	}, sess)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if _, ok := buynow.Load(sess); ok {
		t.Error("intent for a vanished product should be cleared")
	}
}
