// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"agora/internal/models"
	"agora/internal/session"
	"agora/internal/web"
)

// SessionGetter loads the session attached to a request, if any.
type SessionGetter interface {
	Get(ctx context.Context, r *http.Request) (*session.Data, error)
}

// UserFinder loads a user by id. It returns nil, nil when the user is gone.
type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Attach installs an empty web.Context on the request. Every later
// middleware fills in its part of it.
func Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(web.With(r.Context(), &web.Context{})))
	})
}

// Identify resolves the session cookie to a fresh user row. The session is
// always recorded; the user is attached only once an admin has passed 2FA.
// Lookup failures leave the request anonymous.
func Identify(sessions SessionGetter, users UserFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wc := web.From(r.Context())

			data, err := sessions.Get(r.Context(), r)
			if err != nil {
				zap.S().Warnw("session lookup failed", "error", err)
			}
			if data == nil {
				next.ServeHTTP(w, r)
				return
			}
			wc.Session = data

			user, err := users.FindByID(r.Context(), data.UserID)
			if err != nil {
				zap.S().Errorw("user lookup failed", "user_id", data.UserID, "error", err)
			}
			if user != nil && (!user.Needs2FA() || data.TwoFADone) {
				wc.User = user
			}

			next.ServeHTTP(w, r)
		})
	}
}
