package controllers

import (
	"strconv"

	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/session"
)

// CheckoutController resolves what the user is about to buy.
type CheckoutController struct {
	service *services.CheckoutService
}

func NewCheckoutController() *CheckoutController {
	return &CheckoutController{service: services.NewCheckoutService()}
}

// Show builds the checkout view. A product_id query switches to (or
// refreshes) the buy-now flow; otherwise a stored intent resumes, and
// failing that the cart is used. The Referer header together with the
// "from" flag decides whether a stored intent is stale.
func (ct *CheckoutController) Show(c *ctx.Context) {
	sess := session.FromCtx(c.R)
	uid := currentUser(c)

	req := services.ResolveRequest{
		Quantity: 1,
		Size:     c.Query("size"),
		Referrer: c.Header("Referer"),
		From:     c.Query("from"),
	}
	if raw := c.Query("product_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.NotFound()
			return
		}
		req.ProductID = uint(id)
	}
	if raw := c.Query("quantity"); raw != "" {
		if q, err := strconv.Atoi(raw); err == nil {
			req.Quantity = q
		}
	}

	checkout, err := ct.service.Resolve(uid, req, sess)
	if err != nil {
		// The resolver may have cleared a stale intent before failing;
		// persist that even on the XHR branch, which never redirects.
		if c.IsXHR() {
			if serr := sess.Save(c.W); serr != nil {
				logger.Error("session save failed", "error", serr)
			}
		}
		fail(c, sess, err, "/")
		return
	}

	// Resolve mutates the buy-now intent; persist before responding.
	if err := sess.Save(c.W); err != nil {
		logger.Error("session save failed", "error", err)
	}
	c.Success(checkout)
}
