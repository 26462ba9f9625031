// Package feed streams order status changes to the customers who own them.
package feed

import (
	"encoding/json"

	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/ws"
)

// Orders is the hub behind /ws/orders.
var Orders = ws.NewHub()

// Start runs the hub loop. Call once at boot.
func Start() {
	go Orders.Run()
}

type statusUpdate struct {
	Event   string `json:"event"`
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// PublishStatus pushes an order status change to the owning user's
// open connections.
func PublishStatus(userID, orderID uint, status string) {
	payload, err := json.Marshal(statusUpdate{Event: "order.status", OrderID: orderID, Status: status})
	if err != nil {
		logger.Error("feed: marshal status update", "error", err)
		return
	}
	Orders.SendTo(userID, payload)
}
