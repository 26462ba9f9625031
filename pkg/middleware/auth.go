package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/vastra/pkg/auth"
	"github.com/shashiranjanraj/vastra/pkg/response"
	"github.com/shashiranjanraj/vastra/pkg/session"
)

type userKey struct{}

// SessionUserKey is the session entry holding the logged-in user's id.
const SessionUserKey = "user_id"

// Identify resolves the requester's identity — from the cookie session for
// the web flow, or a Bearer JWT for XHR/API clients — and stores the user id
// in the request context. It never rejects; guests pass through with id 0.
// Wire it after the session middleware.
func Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := uint(0)

		if id, ok := session.FromCtx(r).GetInt(SessionUserKey); ok {
			uid = uint(id)
		} else if token := bearerToken(r); token != "" {
			if claims, err := auth.ValidateToken(token); err == nil {
				uid = claims.UserID
			}
		}

		if uid != 0 {
			r = r.WithContext(WithUser(r.Context(), uid))
		}
		next.ServeHTTP(w, r)
	})
}

// Auth rejects unauthenticated requests: 401 JSON for XHR/API calls, a
// redirect to /login otherwise (the storefront's "please login" flow).
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserID(r.Context()) == 0 {
			if isXHR(r) {
				response.Unauthorized(w)
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserID returns the authenticated user's id from ctx, or 0 for guests.
func UserID(ctx context.Context) uint {
	if uid, ok := ctx.Value(userKey{}).(uint); ok {
		return uid
	}
	return 0
}

// WithUser stores a user id in ctx. Exposed for tests.
func WithUser(ctx context.Context, uid uint) context.Context {
	return context.WithValue(ctx, userKey{}, uid)
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

func isXHR(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest")
}
