package controllers

import (
	"fmt"
	"strconv"

	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
	"github.com/shashiranjanraj/vastra/pkg/session"
)

// CartController serves the cart page and its mutations.
type CartController struct {
	service *services.CartService
}

func NewCartController() *CartController {
	return &CartController{service: services.NewCartService()}
}

// Show returns the cart with totals and suggestions.
func (ct *CartController) Show(c *ctx.Context) {
	page, err := ct.service.View(currentUser(c))
	if err != nil {
		fail(c, session.FromCtx(c.R), err, "/")
		return
	}
	c.Success(page)
}

// Add puts a product into the cart. Guests are turned away with a login
// prompt rather than an error page; everyone else lands back where they
// came from with a flash, or gets the JSON payload on XHR.
func (ct *CartController) Add(c *ctx.Context) {
	sess := session.FromCtx(c.R)

	uid := currentUser(c)
	if uid == 0 {
		fail(c, sess, services.ErrUnauthenticated, back(c, "/"))
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		c.NotFound()
		return
	}

	quantity, _ := strconv.Atoi(c.DefaultQuery("quantity", c.PostForm("quantity")))
	size := c.PostForm("size")

	item, err := ct.service.Add(uid, uint(productID), quantity, size)
	if err != nil {
		fail(c, sess, err, back(c, "/"))
		return
	}

	msg := fmt.Sprintf("%s added to cart (x%d).", item.Product.Name, item.Quantity)
	if c.IsXHR() {
		c.Success(map[string]interface{}{
			"message":    msg,
			"item":       item,
			"cart_count": ct.service.Count(uid),
		})
		return
	}
	redirectWith(c, sess, "success", msg, back(c, "/"))
}

// UpdateItem changes a cart line's quantity/size, or removes it when the
// remove_item flag is posted or the quantity drops to zero.
func (ct *CartController) UpdateItem(c *ctx.Context) {
	sess := session.FromCtx(c.R)

	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 32)
	if err != nil {
		c.NotFound()
		return
	}

	quantity, _ := strconv.Atoi(c.PostForm("quantity"))
	size := c.PostForm("size")
	remove := c.PostForm("remove_item") != ""

	item, removed, err := ct.service.Update(currentUser(c), uint(itemID), quantity, size, remove)
	if err != nil {
		// A vanished line is not worth a 404 page on the web flow.
		fail(c, sess, err, "/cart")
		return
	}

	msg := "Cart updated."
	if removed {
		msg = fmt.Sprintf("%s removed from cart.", item.Product.Name)
	}
	if c.IsXHR() {
		c.Success(map[string]interface{}{"message": msg, "removed": removed})
		return
	}
	redirectWith(c, sess, "success", msg, "/cart")
}
