// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for Agora.
// Routes are organized into public, login, session and admin groups, each
// with its own guard list.
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"agora/internal/handlers"
	"agora/internal/middleware"
	"agora/web"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps carries everything the router wires together.
type Deps struct {
	Sessions    middleware.SessionGetter
	Users       middleware.UserFinder
	DB          Pinger
	RateLimiter *middleware.RateLimiter

	Home     *handlers.Home
	Sections *handlers.Sections
	Articles *handlers.Articles
	Auth     *handlers.Auth
	Accounts *handlers.Accounts
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Probes and assets carry no session and no CSRF cookie.
	r.Get("/health", healthHandler(d.DB))
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Attach)
		r.Use(middleware.CSRF)
		r.Use(middleware.Identify(d.Sessions, d.Users))

		r.Get("/", d.Home.Index)
		r.Get("/blogs", d.Home.Blogs)
		r.Get("/article", d.Articles.Detail)

		r.Get("/login", d.Auth.LoginPage)
		r.Post("/login", d.RateLimiter.Limit(d.Auth.LoginSubmit))
		r.Get("/signup", d.Auth.SignupPage)
		r.Post("/signup", d.RateLimiter.Limit(d.Auth.SignupSubmit))
		r.Post("/logout", d.Auth.Logout)

		// 2FA: a session is enough, the user is not attached yet.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Guards(middleware.SessionRequired))
			r.Get("/2fa/setup", d.Auth.TwoFASetupPage)
			r.Post("/2fa/setup", d.Auth.TwoFASubmit)
			r.Get("/2fa/verify", d.Auth.TwoFAVerifyPage)
			r.Post("/2fa/verify", d.Auth.TwoFASubmit)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Guards(middleware.LoginRequired))
			r.Get("/p/article/create", d.Articles.CreatePage)
			r.With(handlers.RequireForm("section_id", "title", "raw_content")).
				Post("/s/article/create", d.Articles.Create)
			r.Get("/p/article/edit", d.Articles.EditPage)
			r.With(handlers.RequireForm("id", "section_id", "title", "raw_content")).
				Post("/s/article/edit", d.Articles.Edit)
			r.With(handlers.RequireForm("id")).
				Post("/s/article/delete", d.Articles.Delete)
			r.With(handlers.RequireForm("title")).
				Post("/s/blog/create", d.Articles.CreateBlog)
		})

		// Section module: every route is admin only.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Guards(middleware.AdminOnly))
			r.Get("/section", d.Sections.Detail)
			r.Get("/blog", d.Sections.Detail)
			r.Get("/blog_with_author", d.Sections.DetailByAuthor)
			r.Get("/p/section/create", d.Sections.CreatePage)
			r.Get("/p/section/edit", d.Sections.EditPage)
			r.With(handlers.RequireForm("title", "description")).
				Post("/s/section/create", d.Sections.Create)
			r.With(handlers.RequireForm("id", "title", "description")).
				Post("/s/section/edit", d.Sections.Edit)
			r.Get("/p/section/rearrange", d.Sections.RearrangePage)
			r.Post("/s/section/rearrange", d.Sections.Rearrange)

			r.Get("/p/users", d.Accounts.List)
			r.With(handlers.RequireForm("id")).
				Post("/s/users/reset_2fa", d.Accounts.ResetTwoFA)
		})
	})

	return r
}

// healthHandler answers {"status":"ok"}, or 503 when the database does not
// answer a ping within two seconds.
func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				zap.S().Warnw("health check: database unreachable", "error", err)
				render.Status(r, http.StatusServiceUnavailable)
				render.JSON(w, r, map[string]string{"status": "unavailable"})
				return
			}
		}
		render.JSON(w, r, map[string]string{"status": "ok"})
	}
}
