package services_test

import (
	"errors"
	"testing"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
)

func TestAddCreatesLine(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "buyer@example.com")
	product := createProduct(t, db, "Tee", 599, nil, 10)

	svc := services.NewCartService()
	item, err := svc.Add(user.ID, product.ID, 2, "M")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if item.Quantity != 2 || item.Size != "M" {
		t.Errorf("item = %+v", item)
	}
	if got := svc.Count(user.ID); got != 2 {
		t.Errorf("badge count = %d, want 2", got)
	}
}

func TestAddMergesExistingLine(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "buyer@example.com")
	product := createProduct(t, db, "Tee", 599, nil, 10)

	svc := services.NewCartService()
	if _, err := svc.Add(user.ID, product.ID, 2, ""); err != nil {
		t.Fatal(err)
	}
	item, err := svc.Add(user.ID, product.ID, 3, "L")
	if err != nil {
		t.Fatalf("second Add: %v", err)
	}
	if item.Quantity != 5 {
		t.Errorf("merged quantity = %d, want 5", item.Quantity)
	}
	if item.Size != "L" {
		t.Errorf("size = %q, want the newer choice", item.Size)
	}

	var lines int64
	db.Model(&models.CartItem{}).Count(&lines)
	if lines != 1 {
		t.Errorf("cart lines = %d, one product means one line", lines)
	}
}

func TestAddMergeCappedByStock(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "buyer@example.com")
	product := createProduct(t, db, "Stole", 1299, nil, 3)

	svc := services.NewCartService()
	if _, err := svc.Add(user.ID, product.ID, 2, ""); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Add(user.ID, product.ID, 2, "")
	var stockErr *services.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
	if stockErr.Available != 3 {
		t.Errorf("available = %d, want 3", stockErr.Available)
	}
	if stockErr.Message() != "Not enough stock. Only 3 left." {
		t.Errorf("message = %q", stockErr.Message())
	}
}

func TestAddSoldOutProduct(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "buyer@example.com")
	product := createProduct(t, db, "Belt", 999, nil, 0)

	_, err := services.NewCartService().Add(user.ID, product.ID, 1, "")
	if !errors.Is(err, services.ErrOutOfStock) {
		t.Fatalf("err = %v, want ErrOutOfStock", err)
	}
}

func TestAddUnknownProduct(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "buyer@example.com")

	_, err := services.NewCartService().Add(user.ID, 9999, 1, "")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateQuantity(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "buyer@example.com")
	product := createProduct(t, db, "Tee", 599, nil, 10)

	svc := services.NewCartService()
	item, err := svc.Add(user.ID, product.ID, 1, "")
	if err != nil {
		t.Fatal(err)
	}

	updated, removed, err := svc.Update(user.ID, item.ID, 4, "S", false)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if removed {
		t.Fatal("line should not be removed")
	}
	if updated.Quantity != 4 || updated.Size != "S" {
		t.Errorf("updated = %+v", updated)
	}
}

func TestUpdateRemovesLine(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "buyer@example.com")
	product := createProduct(t, db, "Tee", 599, nil, 10)

	svc := services.NewCartService()
	item, err := svc.Add(user.ID, product.ID, 2, "")
	if err != nil {
		t.Fatal(err)
	}

	_, removed, err := svc.Update(user.ID, item.ID, 0, "", true)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !removed {
		t.Fatal("expected removal")
	}
	if got := svc.Count(user.ID); got != 0 {
		t.Errorf("badge count = %d after removal", got)
	}
}

func TestUpdateForeignItem(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "owner@example.com")
	intruder := createUser(t, db, "intruder@example.com")
	product := createProduct(t, db, "Tee", 599, nil, 10)

	svc := services.NewCartService()
	item, err := svc.Add(owner.ID, product.ID, 1, "")
	if err != nil {
		t.Fatal(err)
	}

	_, _, err = svc.Update(intruder.ID, item.ID, 3, "", false)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound for another user's line", err)
	}
}
