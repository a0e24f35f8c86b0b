// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"agora/internal/models"
	"agora/internal/render"
	"agora/internal/web"
)

// AccountAdmin is the user management access needed by admins.
type AccountAdmin interface {
	List(ctx context.Context) ([]models.User, error)
	ResetTOTP(ctx context.Context, userID uuid.UUID) error
}

// Accounts groups the admin user management pages.
type Accounts struct {
	renderer Pages
	users    AccountAdmin
}

// NewAccounts creates a new Accounts handler group.
func NewAccounts(renderer Pages, users AccountAdmin) *Accounts {
	return &Accounts{renderer: renderer, users: users}
}

// List renders every account with its role and 2FA state.
func (h *Accounts) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		zap.S().Errorw("list users failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Page(w, r, "users", &render.PageData{
		Title: "Users",
		Data:  map[string]any{"users": users},
	})
}

// ResetTwoFA clears another user's TOTP enrollment, forcing setup again on
// their next login. Admins cannot reset their own.
func (h *Accounts) ResetTwoFA(w http.ResponseWriter, r *http.Request) {
	admin := web.From(r.Context()).User

	targetID, err := formUUID(r, "id")
	if err != nil {
		badRequest(w, err)
		return
	}
	if targetID == admin.ID {
		http.Error(w, "Cannot reset your own 2FA", http.StatusForbidden)
		return
	}

	if err := h.users.ResetTOTP(r.Context(), targetID); err != nil {
		zap.S().Errorw("reset 2fa failed", "target_user", targetID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	zap.S().Infow("2fa reset by admin", "admin", admin.Account, "target_user", targetID)
	http.Redirect(w, r, "/p/users", http.StatusSeeOther)
}
