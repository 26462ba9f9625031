package routes

import (
	"github.com/shashiranjanraj/vastra/app/controllers"
	"github.com/shashiranjanraj/vastra/app/feed"
	"github.com/shashiranjanraj/vastra/app/graph"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
	"github.com/shashiranjanraj/vastra/pkg/middleware"
	"github.com/shashiranjanraj/vastra/pkg/router"
	"github.com/shashiranjanraj/vastra/pkg/ws"
)

func RegisterAPI(r *router.Router) {
	catalog := controllers.NewCatalogController()
	auth := controllers.NewAuthController()
	cart := controllers.NewCartController()
	checkout := controllers.NewCheckoutController()
	orders := controllers.NewOrderController()
	addresses := controllers.NewAddressController()

	// Storefront — browsing is open to guests.
	r.Get("/", "shop.home", ctx.Wrap(catalog.Home))
	r.Get("/category/{slug}", "shop.category", ctx.Wrap(catalog.Category))
	r.Get("/product/{product_id}", "shop.product", ctx.Wrap(catalog.Detail))
	r.Get("/search", "shop.search", ctx.Wrap(catalog.Search))
	r.Get("/graphql", "shop.graphql", graph.Handler())
	r.Post("/graphql", "", graph.Handler())

	// Accounts.
	r.Post("/signup", "auth.signup", ctx.Wrap(auth.Signup))
	r.Post("/login", "auth.login", ctx.Wrap(auth.Login))
	r.Post("/logout", "auth.logout", ctx.Wrap(auth.Logout))

	// Cart add handles guests itself with a login prompt.
	r.Post("/cart/add/{product_id}", "cart.add", ctx.Wrap(cart.Add))

	protected := r.Group("", middleware.Auth)
	protected.Get("/profile", "auth.profile", ctx.Wrap(auth.Profile))

	protected.Get("/cart", "cart.show", ctx.Wrap(cart.Show))
	protected.Post("/cart/update/{item_id}", "cart.update", ctx.Wrap(cart.UpdateItem))

	protected.Get("/checkout", "checkout.show", ctx.Wrap(checkout.Show))
	protected.Get("/buy-now", "checkout.buynow", ctx.Wrap(checkout.Show))

	protected.Get("/address", "address.list", ctx.Wrap(addresses.List))
	protected.Post("/address_add", "address.add", ctx.Wrap(addresses.Add))
	protected.Post("/address_update/{address_id}", "address.update", ctx.Wrap(addresses.Update))

	protected.Post("/place-order", "order.place", ctx.Wrap(orders.Place))
	protected.Get("/order-success/{order_id}", "order.success", ctx.Wrap(orders.Success))
	protected.Get("/orders", "order.list", ctx.Wrap(orders.List))
	protected.Get("/orders/{order_id}", "order.detail", ctx.Wrap(orders.Detail))
	protected.Post("/orders/{order_id}/cancel", "order.cancel", ctx.Wrap(orders.Cancel))

	protected.Get("/ws/orders", "ws.orders", ctx.Wrap(func(c *ctx.Context) {
		ws.Upgrade(c.W, c.R, feed.Orders, middleware.UserID(c.R.Context()))
	}))
}
