// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ebronson/hackboard/auth"
)

// AccessCookie is the cookie the frontend stores the identity token in.
// The Authorization header takes precedence when both are present.
const AccessCookie = "hb_access"

type contextKey string

const userKey contextKey = "user"

// WithUser attaches a verified identity to the context.
func WithUser(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, userKey, id)
}

// UserFrom returns the verified identity attached by RequireUser, or
// false when the request never passed through it.
func UserFrom(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(userKey).(auth.Identity)
	return id, ok
}

func extractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie(AccessCookie); err == nil {
		return c.Value
	}
	return ""
}

// RequireUser verifies the request's token against the identity service
// and attaches the resulting identity to the request context.
func RequireUser(verifier *auth.Verifier, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		id, err := verifier.Check(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenInvalid) {
				ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}
			slog.Error("identity verification failed", "error", err)
			ErrorResponse(w, http.StatusBadGateway, "Identity service unavailable")
			return
		}

		next(w, r.WithContext(WithUser(r.Context(), id)))
	}
}

// RequireAdmin is RequireUser plus an admin check. Admins are the super
// admin, anyone with the faculty role, and emails in the admins table.
func RequireAdmin(verifier *auth.Verifier, db *sql.DB, superAdmin string, next http.HandlerFunc) http.HandlerFunc {
	return RequireUser(verifier, func(w http.ResponseWriter, r *http.Request) {
		id, _ := UserFrom(r.Context())
		if !auth.IsAdmin(db, id, superAdmin) {
			ErrorResponse(w, http.StatusForbidden, "Admin access required")
			return
		}
		next(w, r)
	})
}
