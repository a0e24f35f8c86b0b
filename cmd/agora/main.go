// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the Agora forum server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"agora/internal/config"
	"agora/internal/database"
	"agora/internal/handlers"
	"agora/internal/logger"
	"agora/internal/middleware"
	"agora/internal/render"
	"agora/internal/router"
	"agora/internal/session"
	"agora/internal/store"
)

const (
	// Login and signup POSTs allowed per client IP per window.
	authAttempts = 10
	authWindow   = time.Minute
)

func main() {
	if err := run(); err != nil {
		zap.S().Errorw("agora stopped", "error", err)
		_ = zap.S().Sync()
		fmt.Fprintf(os.Stderr, "agora: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log, err := logger.New(cfg.App.LogDir, logger.IsTerminal())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	log.Infow("configuration loaded", "env", cfg.App.Env, "addr", cfg.Addr())

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Seed development data (no-op if users already exist).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			return fmt.Errorf("seed database: %w", err)
		}
	}

	valkeyClient, err := session.Connect(cfg.ValkeyAddr(), cfg.Valkey.Password)
	if err != nil {
		return fmt.Errorf("connect valkey: %w", err)
	}
	defer valkeyClient.Close()

	// Outside development, session cookies are HTTPS-only.
	sessionStore := session.NewStore(valkeyClient, !cfg.IsDev())

	renderer, err := render.New()
	if err != nil {
		return fmt.Errorf("init template renderer: %w", err)
	}

	userStore := store.NewUserStore(db)
	sectionStore := store.NewSectionStore(db)
	articleStore := store.NewArticleStore(db)

	limiter := middleware.NewRateLimiter(authAttempts, authWindow)
	defer limiter.Stop()

	r := router.New(router.Deps{
		Sessions:    sessionStore,
		Users:       userStore,
		DB:          db,
		RateLimiter: limiter,
		Home:        handlers.NewHome(renderer, sectionStore, articleStore, cfg.App.PageSize),
		Sections:    handlers.NewSections(renderer, sectionStore, articleStore, cfg.App.PageSize),
		Articles:    handlers.NewArticles(renderer, sectionStore, articleStore),
		Auth:        handlers.NewAuth(renderer, sessionStore, userStore),
		Accounts:    handlers.NewAccounts(renderer, userStore),
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
		log.Infow("shutdown signal received")
	}

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Infow("server stopped gracefully")
	return nil
}
