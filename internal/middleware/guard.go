// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"

	"agora/internal/metrics"
	"agora/internal/web"
)

// Denial is the response a guard sends instead of running the handler.
type Denial struct {
	Status   int
	Message  string
	Redirect string // when set, the client is sent here with 303
}

func (d *Denial) write(w http.ResponseWriter, r *http.Request) {
	if d.Redirect != "" {
		http.Redirect(w, r, d.Redirect, http.StatusSeeOther)
		return
	}
	http.Error(w, d.Message, d.Status)
}

// Guard inspects a request and returns nil to let it through.
type Guard func(r *http.Request) *Denial

// Guards runs gs in order before the handler. The first denial ends the
// request; later guards and the handler never run.
func Guards(gs ...Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, g := range gs {
				if d := g(r); d != nil {
					d.write(w, r)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NoPermission is the fixed body sent when a user lacks the required role.
const NoPermission = "No permission."

// AdminOnly rejects anonymous callers and users below the admin threshold.
func AdminOnly(r *http.Request) *Denial {
	if web.From(r.Context()).IsAdmin() {
		return nil
	}
	metrics.PermissionDeniedTotal.WithLabelValues("admin").Inc()
	return &Denial{Status: http.StatusForbidden, Message: NoPermission}
}

// LoginRequired sends anonymous callers to the login page.
func LoginRequired(r *http.Request) *Denial {
	if web.From(r.Context()).IsLogin() {
		return nil
	}
	metrics.PermissionDeniedTotal.WithLabelValues("login").Inc()
	return &Denial{Redirect: "/login"}
}

// SessionRequired admits any request carrying a session, including admins
// still in the middle of 2FA.
func SessionRequired(r *http.Request) *Denial {
	if web.From(r.Context()).Session != nil {
		return nil
	}
	return &Denial{Redirect: "/login"}
}
