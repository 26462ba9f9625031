package services

import (
	"errors"
	"fmt"

	"github.com/shashiranjanraj/vastra/app/buynow"
	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/pkg/database"
	"github.com/shashiranjanraj/vastra/pkg/event"
	"github.com/shashiranjanraj/vastra/pkg/metrics"
	"github.com/shashiranjanraj/vastra/pkg/session"
	"gorm.io/gorm"
)

// Events fired by the order engine after a successful commit. Listeners are
// registered at boot; the engine itself never blocks on them.
const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderPlacedEvent is the EventOrderPlaced payload.
type OrderPlacedEvent struct {
	OrderID uint
}

// OrderStatusEvent is the EventOrderStatusChanged payload.
type OrderStatusEvent struct {
	OrderID uint
	UserID  uint
	Status  models.OrderStatus
}

// ErrInvalidTransition is returned for a status change the lifecycle does
// not allow (e.g. cancelling a shipped order).
var ErrInvalidTransition = errors.New("invalid order status transition")

// PlaceRequest carries the placement form inputs. A non-zero ProductID
// selects the buy-now path; otherwise the user's cart is converted.
type PlaceRequest struct {
	AddressID uint
	ProductID uint
	Quantity  int
	Size      string
}

// OrderService converts a checkout context into a persisted order.
//
// Placement runs as one transaction: order row, item rows, stock decrements
// and (for the cart path) cart teardown either all commit or all roll back.
// Stock is decremented conditionally (stock >= quantity in the UPDATE's
// WHERE clause) so two concurrent placements cannot oversell; the loser's
// transaction rolls back with InsufficientStockError.
type OrderService struct {
	addresses *repositories.AddressRepository
	orders    *repositories.OrderRepository
	products  *repositories.ProductRepository
}

func NewOrderService() *OrderService {
	return &OrderService{
		addresses: repositories.NewAddressRepository(),
		orders:    repositories.NewOrderRepository(),
		products:  repositories.NewProductRepository(),
	}
}

// Place creates the order for the user at the chosen address. On success
// the buy-now intent (or cart) is gone, stock is decremented exactly once
// per item, and EventOrderPlaced has been fired post-commit.
func (s *OrderService) Place(userID uint, req PlaceRequest, sess *session.Session) (models.Order, error) {
	address, err := s.addresses.FindOwned(req.AddressID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}

	var (
		order models.Order
		mode  string
	)
	if req.ProductID != 0 {
		order, err = s.placeBuyNow(userID, address, req)
		mode = "buy_now"
	} else {
		order, err = s.placeCart(userID, address)
		mode = "cart"
	}
	if err != nil {
		return models.Order{}, err
	}

	if req.ProductID != 0 {
		buynow.Clear(sess)
	}

	metrics.OrdersPlaced.WithLabelValues(mode).Inc()
	metrics.OrderAmount.Observe(order.TotalAmount)
	event.FireAsync(EventOrderPlaced, OrderPlacedEvent{OrderID: order.ID})

	return order, nil
}

func (s *OrderService) placeBuyNow(userID uint, address models.Address, req PlaceRequest) (models.Order, error) {
	product, err := s.products.Find(req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	if product.Stock < quantity {
		return models.Order{}, &InsufficientStockError{Product: product.Name, Available: product.Stock}
	}

	order := models.Order{
		UserID:      userID,
		AddressID:   address.ID,
		TotalAmount: product.FinalPrice() * float64(quantity),
		Status:      models.StatusPlaced,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		item := models.OrderItem{
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  quantity,
			Price:     product.FinalPrice(),
			Size:      req.Size,
		}
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("create order item: %w", err)
		}

		return decrementStock(tx, product, quantity)
	})
	if err != nil {
		return models.Order{}, err
	}

	order.Address = address
	return order, nil
}

func (s *OrderService) placeCart(userID uint, address models.Address) (models.Order, error) {
	var cart models.Cart
	err := database.DB.
		Preload("Items").Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}

	if len(cart.Items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	// Check every line before touching anything, so a failure on the last
	// item cannot leave earlier items half-applied.
	var total float64
	for i := range cart.Items {
		it := &cart.Items[i]
		if it.Product.Stock < it.Quantity {
			return models.Order{}, &InsufficientStockError{
				Product:   it.Product.Name,
				Available: it.Product.Stock,
			}
		}
		total += it.TotalPrice()
	}

	order := models.Order{
		UserID:      userID,
		AddressID:   address.ID,
		TotalAmount: total,
		Status:      models.StatusPlaced,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for i := range cart.Items {
			it := &cart.Items[i]

			item := models.OrderItem{
				OrderID:   order.ID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Price:     it.Product.FinalPrice(),
				Size:      it.Size,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("create order item: %w", err)
			}

			if err := decrementStock(tx, it.Product, it.Quantity); err != nil {
				return err
			}
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("clear cart items: %w", err)
		}
		if err := tx.Delete(&cart).Error; err != nil {
			return fmt.Errorf("delete cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}

	order.Address = address
	return order, nil
}

// decrementStock applies `stock = stock - qty` guarded by `stock >= qty`.
// Zero rows affected means a concurrent placement got there first; the
// caller's transaction rolls back.
func decrementStock(tx *gorm.DB, product models.Product, qty int) error {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", product.ID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return fmt.Errorf("decrement stock: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		metrics.StockConflicts.Inc()
		return &InsufficientStockError{Product: product.Name, Available: product.Stock}
	}
	return nil
}

// ─── Order views ──────────────────────────────────────────────────────────────

// OrderDetail is the tracking page payload.
type OrderDetail struct {
	Order  models.Order        `json:"order"`
	Steps  []models.StatusStep `json:"step_status"`
	Totals models.CartTotals   `json:"totals"`
}

// Get returns one of the user's orders with its tracking timeline.
func (s *OrderService) Get(orderID, userID uint) (OrderDetail, error) {
	order, err := s.orders.FindOwned(orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderDetail{}, ErrNotFound
		}
		return OrderDetail{}, err
	}
	return OrderDetail{
		Order:  order,
		Steps:  order.StatusSteps(),
		Totals: order.ItemTotals(),
	}, nil
}

// List returns the user's orders, newest first.
func (s *OrderService) List(userID uint) ([]models.Order, error) {
	return s.orders.ForUser(userID)
}

// Cancel moves one of the user's orders to Cancelled. Only a Placed order
// can be cancelled; the change is broadcast via EventOrderStatusChanged.
func (s *OrderService) Cancel(orderID, userID uint) (models.Order, error) {
	order, err := s.orders.FindOwned(orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}

	return s.transition(order, models.StatusCancelled)
}

// Advance moves an order one step along the fulfilment path. Status changes
// after placement are externally driven (ops tooling, carrier webhooks);
// the engine only validates the transition.
func (s *OrderService) Advance(orderID uint, next models.OrderStatus) (models.Order, error) {
	order, err := s.orders.Find(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}

	return s.transition(order, next)
}

func (s *OrderService) transition(order models.Order, next models.OrderStatus) (models.Order, error) {
	if !order.CanTransition(next) {
		return models.Order{}, fmt.Errorf("%s → %s: %w", order.Status, next, ErrInvalidTransition)
	}

	order.Status = next
	if err := s.orders.Save(&order); err != nil {
		return models.Order{}, err
	}

	event.FireAsync(EventOrderStatusChanged, OrderStatusEvent{
		OrderID: order.ID,
		UserID:  order.UserID,
		Status:  order.Status,
	})
	return order, nil
}
