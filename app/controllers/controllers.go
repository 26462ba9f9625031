// Package controllers holds the HTTP handlers for the storefront.
//
// Every mutation supports two clients: XHR/API callers get a JSON envelope,
// browser form posts get a flash message and a redirect — the same split the
// storefront frontend relies on.
package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/middleware"
	"github.com/shashiranjanraj/vastra/pkg/session"
)

const flashKey = "message"

// flash is the message shown after a redirect.
type flash struct {
	Level string `json:"level"` // "success" | "info" | "warning" | "error"
	Text  string `json:"text"`
}

func currentUser(c *ctx.Context) uint {
	return middleware.UserID(c.Context())
}

// redirectWith saves a flash message and redirects the browser.
func redirectWith(c *ctx.Context, sess *session.Session, level, text, to string) {
	sess.Flash(flashKey, flash{Level: level, Text: text})
	if err := sess.Save(c.W); err != nil {
		logger.WithCtx(c.Context()).Warn("session save failed", "error", err)
	}
	c.Redirect(http.StatusSeeOther, to)
}

// back is the redirect target for "stay where you were" flows.
func back(c *ctx.Context, fallback string) string {
	if ref := c.R.Referer(); ref != "" {
		return ref
	}
	return fallback
}

// fail translates a domain error into the right client response: a JSON
// error for XHR, a flash + redirect otherwise. fallback is the redirect
// target. Unknown errors become a logged 500.
func fail(c *ctx.Context, sess *session.Session, err error, fallback string) {
	status, msg := classify(err)

	if c.IsXHR() {
		c.Error(status, msg)
		return
	}
	if status == http.StatusInternalServerError {
		logger.WithCtx(c.Context()).Error("request failed", "error", err)
	}
	redirectWith(c, sess, "error", msg, fallback)
}

func classify(err error) (int, string) {
	var stock *services.InsufficientStockError
	switch {
	case errors.As(err, &stock):
		return http.StatusBadRequest, stock.Message()
	case errors.Is(err, services.ErrOutOfStock):
		return http.StatusBadRequest, "Sorry, this product is out of stock."
	case errors.Is(err, services.ErrEmptyCart):
		return http.StatusBadRequest, "Your cart is empty."
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, services.ErrUnauthenticated):
		return http.StatusUnauthorized, "Please login before adding items to cart."
	case errors.Is(err, services.ErrInvalidLogin):
		return http.StatusUnauthorized, "Invalid email or password."
	case errors.Is(err, services.ErrEmailTaken):
		return http.StatusUnprocessableEntity, "Email already registered."
	case errors.Is(err, services.ErrInvalidTransition):
		return http.StatusConflict, "This order can no longer be changed."
	default:
		return http.StatusInternalServerError, "Something went wrong"
	}
}
