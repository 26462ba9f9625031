package buynow_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/shashiranjanraj/vastra/app/buynow"
	"github.com/shashiranjanraj/vastra/pkg/session"
)

func newSession() *session.Session {
	r := httptest.NewRequest("GET", "/checkout", nil)
	return session.FromCtx(r)
}

func TestShouldClear(t *testing.T) {
	cases := []struct {
		name     string
		referrer string
		from     string
		want     bool
	}{
		{"empty referrer no flag", "", "", true},
		{"unrelated page", "http://shop.test/orders", "", true},
		{"product page", "http://shop.test/product/42", "", false},
		{"buy-now entry", "http://shop.test/buy-now?product_id=42", "", false},
		{"checkout reload", "http://shop.test/checkout", "", false},
		{"address detour", "http://shop.test/address_add", "", false},
		{"address update detour", "http://shop.test/address_update/3", "", false},
		{"flag overrides referrer", "http://shop.test/orders", "address_add", false},
		{"flag with empty referrer", "", "address_update", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := buynow.ShouldClear(tc.referrer, tc.from); got != tc.want {
				t.Errorf("ShouldClear(%q, %q) = %v, want %v", tc.referrer, tc.from, got, tc.want)
			}
		})
	}
}

func TestSaveLoadClear(t *testing.T) {
	sess := newSession()

	if _, ok := buynow.Load(sess); ok {
		t.Fatal("expected no intent in a fresh session")
	}

	in := buynow.Intent{ProductID: 7, Quantity: 2, Size: "M", Total: 2398}
	buynow.Save(sess, in)

	got, ok := buynow.Load(sess)
	if !ok {
		t.Fatal("expected intent after Save")
	}
	if got != in {
		t.Errorf("Load = %+v, want %+v", got, in)
	}

	buynow.Clear(sess)
	if _, ok := buynow.Load(sess); ok {
		t.Error("expected no intent after Clear")
	}
}

// Session data persisted to redis comes back as generic JSON maps, not typed
// structs. Load must recover the intent either way.
func TestLoadFromJSONMap(t *testing.T) {
	sess := newSession()

	raw, _ := json.Marshal(buynow.Intent{ProductID: 9, Quantity: 1, Total: 599})
	var generic map[string]interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		t.Fatal(err)
	}
	sess.Set("buy_now", generic)

	got, ok := buynow.Load(sess)
	if !ok {
		t.Fatal("expected intent from JSON map form")
	}
	if got.ProductID != 9 || got.Quantity != 1 || got.Total != 599 {
		t.Errorf("Load = %+v", got)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	sess := newSession()
	sess.Set("buy_now", "not an intent")

	if _, ok := buynow.Load(sess); ok {
		t.Error("expected Load to reject a non-intent value")
	}
}
