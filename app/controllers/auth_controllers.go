package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
	"github.com/shashiranjanraj/vastra/pkg/middleware"
	"github.com/shashiranjanraj/vastra/pkg/session"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{service: services.NewAuthService()}
}

type signupInput struct {
	Name     string `json:"name"     validate:"required,min=2,max=255"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// Signup registers a new account. The user still logs in afterwards, like
// the storefront's signup → login flow.
func (ct *AuthController) Signup(c *ctx.Context) {
	var in signupInput
	if !c.BindJSON(&in) {
		return
	}

	user, err := ct.service.Signup(in.Name, in.Email, in.Password)
	if err != nil {
		fail(c, session.FromCtx(c.R), err, "/signup")
		return
	}
	c.Created(user)
}

type loginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials, establishes the cookie session, and returns a
// JWT for API clients.
func (ct *AuthController) Login(c *ctx.Context) {
	var in loginInput
	if !c.BindJSON(&in) {
		return
	}

	user, token, err := ct.service.Login(in.Email, in.Password)
	if err != nil {
		fail(c, session.FromCtx(c.R), err, "/login")
		return
	}

	sess := session.FromCtx(c.R)
	sess.Set(middleware.SessionUserKey, user.ID)
	if err := sess.Save(c.W); err != nil {
		c.Error(http.StatusInternalServerError, "session error")
		return
	}

	c.Success(map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Logout destroys the session.
func (ct *AuthController) Logout(c *ctx.Context) {
	sess := session.FromCtx(c.R)
	sess.Invalidate()
	redirectWith(c, sess, "info", "Logged out successfully.", "/")
}

// Profile returns the authenticated user.
func (ct *AuthController) Profile(c *ctx.Context) {
	user, err := ct.service.Profile(currentUser(c))
	if err != nil {
		fail(c, session.FromCtx(c.R), err, "/")
		return
	}
	c.Success(user)
}
