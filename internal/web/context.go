// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package web holds the per-request state shared between middleware and
// page handlers. Middleware fills one Context early in the chain; handlers
// and guards read it back with From.
package web

import (
	"context"

	"agora/internal/models"
	"agora/internal/session"
)

type contextKey struct{}

// Context is the request-scoped view of who is calling.
type Context struct {
	// User is the logged-in account, reloaded for this request. Nil for
	// anonymous visitors and for admins that have not finished 2FA.
	User *models.User

	// Session is the raw session payload, present even before 2FA.
	Session *session.Data

	// CSRFToken is echoed into every form rendered for this request.
	CSRFToken string
}

// IsLogin reports whether a user is attached.
func (c *Context) IsLogin() bool {
	return c.User != nil
}

// IsAdmin reports whether the attached user passes the admin threshold.
func (c *Context) IsAdmin() bool {
	return c.User != nil && c.User.IsAdmin()
}

// With returns a copy of ctx carrying c.
func With(ctx context.Context, c *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// From returns the request Context stored in ctx. A request that never
// passed through the middleware gets an empty, anonymous Context.
func From(ctx context.Context) *Context {
	if c, ok := ctx.Value(contextKey{}).(*Context); ok {
		return c
	}
	return &Context{}
}
