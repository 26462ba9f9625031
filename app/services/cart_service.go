package services

import (
	"errors"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"gorm.io/gorm"
)

// CartService owns the cart mutation rules: one line per product, quantity
// capped by stock, qty<=0 removes the line.
type CartService struct {
	products *repositories.ProductRepository
	carts    *repositories.CartRepository
}

func NewCartService() *CartService {
	return &CartService{
		products: repositories.NewProductRepository(),
		carts:    repositories.NewCartRepository(),
	}
}

// CartPage is the cart view payload.
type CartPage struct {
	Items   []models.CartItem `json:"items"`
	Totals  models.CartTotals `json:"totals"`
	Related []models.Product  `json:"related_products"`
}

// View loads (creating lazily) the user's cart with totals and a strip of
// products not already in it.
func (s *CartService) View(userID uint) (CartPage, error) {
	cart, err := s.carts.GetOrCreate(userID)
	if err != nil {
		return CartPage{}, err
	}

	inCart := make([]uint, 0, len(cart.Items))
	for _, it := range cart.Items {
		inCart = append(inCart, it.ProductID)
	}
	related, err := s.products.NotIn(inCart)
	if err != nil {
		return CartPage{}, err
	}

	return CartPage{
		Items:   cart.Items,
		Totals:  models.Totals(cart.Items),
		Related: related,
	}, nil
}

// Add puts quantity units of a product into the user's cart. An existing
// line for the same product is merged; the merged quantity may never exceed
// current stock.
func (s *CartService) Add(userID, productID uint, quantity int, size string) (models.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}

	product, err := s.products.Find(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CartItem{}, ErrNotFound
		}
		return models.CartItem{}, err
	}

	if product.Stock <= 0 {
		return models.CartItem{}, ErrOutOfStock
	}

	cart, err := s.carts.GetOrCreate(userID)
	if err != nil {
		return models.CartItem{}, err
	}

	item, err := s.carts.ItemForProduct(cart.ID, productID)
	switch {
	case err == nil:
		newQty := item.Quantity + quantity
		if newQty > product.Stock {
			return models.CartItem{}, &InsufficientStockError{Product: product.Name, Available: product.Stock}
		}
		item.Quantity = newQty
		if size != "" {
			item.Size = size
		}
		if err := s.carts.SaveItem(&item); err != nil {
			return models.CartItem{}, err
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		if quantity > product.Stock {
			return models.CartItem{}, &InsufficientStockError{Product: product.Name, Available: product.Stock}
		}
		item = models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity, Size: size}
		if err := s.carts.CreateItem(&item); err != nil {
			return models.CartItem{}, err
		}

	default:
		return models.CartItem{}, err
	}

	item.Product = product
	return item, nil
}

// Update changes a cart line's quantity and size. remove=true or a
// non-positive quantity deletes the line. The item must belong to the user.
// The second return value reports whether the line was removed.
func (s *CartService) Update(userID, itemID uint, quantity int, size string, remove bool) (models.CartItem, bool, error) {
	item, err := s.carts.OwnedItem(itemID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CartItem{}, false, ErrNotFound
		}
		return models.CartItem{}, false, err
	}

	if remove || quantity <= 0 {
		if err := s.carts.DeleteItem(&item); err != nil {
			return models.CartItem{}, false, err
		}
		return item, true, nil
	}

	if quantity > item.Product.Stock {
		return models.CartItem{}, false, &InsufficientStockError{
			Product:   item.Product.Name,
			Available: item.Product.Stock,
		}
	}

	item.Quantity = quantity
	if size != "" {
		item.Size = size
	}
	if err := s.carts.SaveItem(&item); err != nil {
		return models.CartItem{}, false, err
	}
	return item, false, nil
}

// Count returns the cart badge count.
func (s *CartService) Count(userID uint) int {
	return s.carts.Count(userID)
}
