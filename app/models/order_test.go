package models_test

import (
	"testing"

	"github.com/shashiranjanraj/vastra/app/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from models.OrderStatus
		to   models.OrderStatus
		want bool
	}{
		{models.StatusPlaced, models.StatusShipped, true},
		{models.StatusPlaced, models.StatusCancelled, true},
		{models.StatusPlaced, models.StatusDelivered, false},
		{models.StatusShipped, models.StatusDelivered, true},
		{models.StatusShipped, models.StatusCancelled, false},
		{models.StatusShipped, models.StatusPlaced, false},
		{models.StatusDelivered, models.StatusShipped, false},
		{models.StatusDelivered, models.StatusCancelled, false},
		{models.StatusCancelled, models.StatusPlaced, false},
		{models.StatusCancelled, models.StatusShipped, false},
	}

	for _, tc := range cases {
		o := models.Order{Status: tc.from}
		if got := o.CanTransition(tc.to); got != tc.want {
			t.Errorf("%s → %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestStatusStepsActiveOrder(t *testing.T) {
	o := models.Order{Status: models.StatusShipped}
	steps := o.StatusSteps()

	want := []models.StatusStep{
		{Name: "Placed", Status: "completed"},
		{Name: "Shipped", Status: "active"},
		{Name: "Delivered", Status: "pending"},
	}
	if len(steps) != len(want) {
		t.Fatalf("steps = %d, want %d", len(steps), len(want))
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Errorf("step[%d] = %+v, want %+v", i, steps[i], want[i])
		}
	}
}

func TestStatusStepsCancelledOrder(t *testing.T) {
	o := models.Order{Status: models.StatusCancelled}
	steps := o.StatusSteps()

	want := []models.StatusStep{
		{Name: "Pending", Status: "completed"},
		{Name: "Placed", Status: "completed"},
		{Name: "Cancelled", Status: "cancelled"},
	}
	if len(steps) != len(want) {
		t.Fatalf("steps = %d, want %d", len(steps), len(want))
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Errorf("step[%d] = %+v, want %+v", i, steps[i], want[i])
		}
	}
}

func TestFinalPriceAndDiscount(t *testing.T) {
	discounted := 1199.0
	p := models.Product{Price: 1499, DiscountPrice: &discounted}
	if p.FinalPrice() != 1199 {
		t.Errorf("FinalPrice = %v", p.FinalPrice())
	}
	if p.Discount() != 300 {
		t.Errorf("Discount = %v", p.Discount())
	}

	plain := models.Product{Price: 599}
	if plain.FinalPrice() != 599 || plain.Discount() != 0 {
		t.Errorf("undiscounted product: final=%v discount=%v", plain.FinalPrice(), plain.Discount())
	}
}

func TestCartTotals(t *testing.T) {
	discounted := 1199.0
	items := []models.CartItem{
		{Quantity: 2, Product: models.Product{Price: 1499, DiscountPrice: &discounted}},
		{Quantity: 1, Product: models.Product{Price: 599}},
	}

	got := models.Totals(items)
	if got.TotalPrice != 1499*2+599 {
		t.Errorf("TotalPrice = %v", got.TotalPrice)
	}
	if got.TotalDiscount != 300*2 {
		t.Errorf("TotalDiscount = %v", got.TotalDiscount)
	}
	if got.OrderTotal != got.TotalPrice-got.TotalDiscount {
		t.Errorf("OrderTotal = %v", got.OrderTotal)
	}

	if models.Count(items) != 3 {
		t.Errorf("Count = %d, want 3", models.Count(items))
	}
}

func TestSizeList(t *testing.T) {
	p := models.Product{Sizes: "S, M ,L,"}
	got := p.SizeList()
	want := []string{"S", "M", "L"}
	if len(got) != len(want) {
		t.Fatalf("SizeList = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SizeList[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if (&models.Product{}).SizeList() != nil {
		t.Error("empty Sizes should yield nil")
	}
}
