// Package buynow holds the session-scoped single-item purchase intent.
//
// The intent bridges the "Buy Now" flow across page reloads and the
// add/update-address detour without touching the database. It is written when
// checkout resolves an explicit buy-now request and removed either on
// successful placement or when the shopper navigates somewhere unrelated.
package buynow

import (
	"encoding/json"
	"strings"

	"github.com/shashiranjanraj/vastra/pkg/session"
)

const sessionKey = "buy_now"

// Intent is the pending single-item purchase.
type Intent struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Total     float64 `json:"total"`
}

// checkoutFlow lists the referrer fragments that keep an intent alive:
// the product page, the buy-now entry, checkout itself, and the
// address add/update round trip.
var checkoutFlow = []string{"/product/", "/buy-now", "/checkout", "/address"}

// ShouldClear decides whether a stored intent is stale. It is a pure
// function of the request's Referer header and the explicit continuation
// flag ("from" query parameter) set by the address redirects.
func ShouldClear(referrer, fromFlag string) bool {
	if fromFlag != "" {
		return false
	}
	for _, frag := range checkoutFlow {
		if strings.Contains(referrer, frag) {
			return false
		}
	}
	return true
}

// Save stores the intent in the session, overwriting any previous one.
func Save(sess *session.Session, it Intent) {
	sess.Set(sessionKey, it)
}

// Load returns the stored intent, if any. Session data round-trips through
// JSON, so the value may come back as a generic map; re-marshal to recover
// the typed struct.
func Load(sess *session.Session) (Intent, bool) {
	v, ok := sess.Get(sessionKey)
	if !ok {
		return Intent{}, false
	}

	if it, ok := v.(Intent); ok {
		return it, true
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return Intent{}, false
	}
	var it Intent
	if err := json.Unmarshal(raw, &it); err != nil || it.ProductID == 0 {
		return Intent{}, false
	}
	return it, true
}

// Clear removes the intent from the session.
func Clear(sess *session.Session) {
	sess.Delete(sessionKey)
}
