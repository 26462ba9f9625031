package services

import (
	"errors"
	"fmt"

	"github.com/shashiranjanraj/vastra/app/buynow"
	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/pkg/session"
	"gorm.io/gorm"
)

// CheckoutMode identifies which flow produced a checkout context.
type CheckoutMode string

const (
	ModeBuyNow CheckoutMode = "buy_now"
	ModeCart   CheckoutMode = "cart"
	ModeEmpty  CheckoutMode = "empty"
)

// CheckoutContext is the single resolved answer to "what is this user about
// to buy". Exactly one of the buy-now fields or the cart fields is
// populated, selected by Mode.
type CheckoutContext struct {
	Mode CheckoutMode `json:"mode"`

	// Buy-now flow.
	Product  *models.Product `json:"product,omitempty"`
	Quantity int             `json:"quantity,omitempty"`
	Size     string          `json:"size,omitempty"`

	// Cart flow.
	Items []models.CartItem `json:"items,omitempty"`

	Total     float64          `json:"total"`
	Warning   string           `json:"warning,omitempty"` // quantity-adjusted notice
	Addresses []models.Address `json:"addresses"`
}

// ResolveRequest carries the request inputs the resolver depends on.
type ResolveRequest struct {
	ProductID uint   // non-zero selects the explicit buy-now flow
	Quantity  int
	Size      string
	Referrer  string // Referer header, for the intent expiry rule
	From      string // "from" query flag set by the address round trip
}

// CheckoutService resolves a checkout request into exactly one context:
// explicit buy-now, resumed buy-now, cart, or empty.
type CheckoutService struct {
	products  *repositories.ProductRepository
	carts     *repositories.CartRepository
	addresses *repositories.AddressRepository
}

func NewCheckoutService() *CheckoutService {
	return &CheckoutService{
		products:  repositories.NewProductRepository(),
		carts:     repositories.NewCartRepository(),
		addresses: repositories.NewAddressRepository(),
	}
}

// Resolve implements the checkout decision. Stale buy-now intents are
// dropped first (navigation-based expiry), then the three flows are tried
// in order: explicit buy-now, resumed buy-now, cart.
func (s *CheckoutService) Resolve(userID uint, req ResolveRequest, sess *session.Session) (CheckoutContext, error) {
	// Expire a stored intent when the shopper arrives from outside the
	// product/checkout/address flow with no continuation flag.
	if req.ProductID == 0 {
		if _, ok := buynow.Load(sess); ok && buynow.ShouldClear(req.Referrer, req.From) {
			buynow.Clear(sess)
		}
	}

	addresses, err := s.addresses.ForUser(userID)
	if err != nil {
		return CheckoutContext{}, err
	}

	if req.ProductID != 0 {
		return s.resolveBuyNow(req, sess, addresses)
	}

	if intent, ok := buynow.Load(sess); ok {
		return s.resumeBuyNow(intent, sess, addresses)
	}

	return s.resolveCart(userID, addresses)
}

// resolveBuyNow validates stock, clamps the quantity, computes the total and
// persists the intent (overwriting any previous one).
func (s *CheckoutService) resolveBuyNow(req ResolveRequest, sess *session.Session, addresses []models.Address) (CheckoutContext, error) {
	product, err := s.products.Find(req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CheckoutContext{}, ErrNotFound
		}
		return CheckoutContext{}, err
	}

	if product.Stock < 1 {
		// No intent is written for an unbuyable product.
		return CheckoutContext{}, fmt.Errorf("%s: %w", product.Name, ErrOutOfStock)
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	var warning string
	if quantity > product.Stock {
		quantity = product.Stock
		warning = fmt.Sprintf("Only %d units left. Quantity adjusted.", product.Stock)
	}

	total := product.FinalPrice() * float64(quantity)

	buynow.Save(sess, buynow.Intent{
		ProductID: product.ID,
		Quantity:  quantity,
		Size:      req.Size,
		Total:     total,
	})

	return CheckoutContext{
		Mode:      ModeBuyNow,
		Product:   &product,
		Quantity:  quantity,
		Size:      req.Size,
		Total:     total,
		Warning:   warning,
		Addresses: addresses,
	}, nil
}

// resumeBuyNow replays a stored intent verbatim — reloads the product to
// make sure it still exists but deliberately does not re-check stock; that
// happens at placement.
func (s *CheckoutService) resumeBuyNow(intent buynow.Intent, sess *session.Session, addresses []models.Address) (CheckoutContext, error) {
	product, err := s.products.Find(intent.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			buynow.Clear(sess)
			return CheckoutContext{}, ErrNotFound
		}
		return CheckoutContext{}, err
	}

	return CheckoutContext{
		Mode:      ModeBuyNow,
		Product:   &product,
		Quantity:  intent.Quantity,
		Size:      intent.Size,
		Total:     intent.Total,
		Addresses: addresses,
	}, nil
}

// resolveCart produces the cart context, or the terminal "no items" display
// state for an empty cart — that one is not an error.
func (s *CheckoutService) resolveCart(userID uint, addresses []models.Address) (CheckoutContext, error) {
	cart, err := s.carts.GetOrCreate(userID)
	if err != nil {
		return CheckoutContext{}, err
	}

	if len(cart.Items) == 0 {
		return CheckoutContext{Mode: ModeEmpty, Addresses: addresses}, nil
	}

	var total float64
	for i := range cart.Items {
		total += cart.Items[i].TotalPrice()
	}

	return CheckoutContext{
		Mode:      ModeCart,
		Items:     cart.Items,
		Total:     total,
		Addresses: addresses,
	}, nil
}
