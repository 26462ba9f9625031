package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/session"
)

// OrderController places orders and serves order history.
type OrderController struct {
	service *services.OrderService
}

func NewOrderController() *OrderController {
	return &OrderController{service: services.NewOrderService()}
}

// Place turns the pending checkout into an order. The success redirect
// carries cache-busting headers so the browser never replays a stale
// confirmation page after the buy-now state is gone.
func (ct *OrderController) Place(c *ctx.Context) {
	sess := session.FromCtx(c.R)
	uid := currentUser(c)

	addressID, err := strconv.ParseUint(c.PostForm("address_id"), 10, 32)
	if err != nil {
		fail(c, sess, services.ErrNotFound, "/checkout")
		return
	}

	req := services.PlaceRequest{AddressID: uint(addressID)}
	if raw := c.PostForm("product_id"); raw != "" {
		id, perr := strconv.ParseUint(raw, 10, 32)
		if perr != nil {
			c.NotFound()
			return
		}
		req.ProductID = uint(id)
		req.Quantity, _ = strconv.Atoi(c.PostForm("quantity"))
		req.Size = c.PostForm("size")
	}

	order, err := ct.service.Place(uid, req, sess)
	if err != nil {
		fail(c, sess, err, "/checkout")
		return
	}

	if err := sess.Save(c.W); err != nil {
		logger.Error("session save failed", "error", err)
	}

	c.SetHeader("Cache-Control", "no-cache, no-store, must-revalidate")
	c.SetHeader("Pragma", "no-cache")
	c.SetHeader("Expires", "0")

	if c.IsXHR() {
		c.Created(map[string]interface{}{
			"message":  "Order placed successfully!",
			"order_id": order.ID,
		})
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/order-success/%d", order.ID))
}

// Success serves the confirmation view for an order the user owns.
func (ct *OrderController) Success(c *ctx.Context) {
	ct.detail(c, "confirmation")
}

// Detail serves a single order with its progress steps.
func (ct *OrderController) Detail(c *ctx.Context) {
	ct.detail(c, "detail")
}

func (ct *OrderController) detail(c *ctx.Context, view string) {
	id, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		c.NotFound()
		return
	}
	detail, err := ct.service.Get(uint(id), currentUser(c))
	if err != nil {
		fail(c, session.FromCtx(c.R), err, "/orders")
		return
	}
	c.Success(map[string]interface{}{"view": view, "order": detail.Order, "steps": detail.Steps, "totals": detail.Totals})
}

// List returns the user's orders, newest first.
func (ct *OrderController) List(c *ctx.Context) {
	orders, err := ct.service.List(currentUser(c))
	if err != nil {
		fail(c, session.FromCtx(c.R), err, "/")
		return
	}
	c.Success(orders)
}

// Cancel cancels a placed order that has not shipped yet.
func (ct *OrderController) Cancel(c *ctx.Context) {
	sess := session.FromCtx(c.R)

	id, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		c.NotFound()
		return
	}
	if _, err := ct.service.Cancel(uint(id), currentUser(c)); err != nil {
		fail(c, sess, err, "/orders")
		return
	}

	msg := fmt.Sprintf("Order #%d cancelled.", id)
	if c.IsXHR() {
		c.Success(map[string]interface{}{"message": msg})
		return
	}
	redirectWith(c, sess, "success", msg, "/orders")
}
