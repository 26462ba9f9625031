// Package jobs holds the storefront's queued background jobs.
package jobs

import (
	"fmt"

	"github.com/shashiranjanraj/vastra/app/notifications"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/config"
	"github.com/shashiranjanraj/vastra/pkg/notification"
	"github.com/shashiranjanraj/vastra/pkg/queue"
)

// OrderConfirmationJob sends the order-confirmation mail for one order.
// Runs on the queue after the placement transaction has committed; failures
// are retried and then recorded in the failed-jobs ledger.
type OrderConfirmationJob struct {
	OrderID uint `json:"order_id"`
}

// Register wires the job type into the queue's deserialization registry.
// Call once at boot.
func Register() {
	queue.Register("*jobs.OrderConfirmationJob", func() queue.Job { return &OrderConfirmationJob{} })
}

func (j *OrderConfirmationJob) Handle() error {
	orders := repositories.NewOrderRepository()
	users := repositories.NewUserRepository()

	order, err := orders.Find(j.OrderID)
	if err != nil {
		return fmt.Errorf("order confirmation: load order %d: %w", j.OrderID, err)
	}
	user, err := users.FindByID(order.UserID)
	if err != nil {
		return fmt.Errorf("order confirmation: load user %d: %w", order.UserID, err)
	}

	n := &notifications.OrderPlaced{Order: order, User: user}
	if errs := notification.Send(config.OrderNotifyEmail(), n); len(errs) > 0 {
		return fmt.Errorf("order confirmation: send for order %d: %w", order.ID, errs[0])
	}
	return nil
}
