// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the HTTP page handlers. Handlers depend on the
// narrow interfaces below; the store, session and render packages provide
// the production implementations.
package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"agora/internal/models"
	"agora/internal/render"
	"agora/internal/session"
)

// SectionRepo is the section data access used by the handlers.
type SectionRepo interface {
	Create(ctx context.Context, n models.SectionNew) (*models.Section, error)
	CreateBlog(ctx context.Context, n models.BlogNew) (*models.Section, error)
	Update(ctx context.Context, e models.SectionEdit) (*models.Section, error)
	UpdateWeight(ctx context.Context, u models.UpdateSectionWeight) (*models.Section, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Section, error)
	GetBySUser(ctx context.Context, userID uuid.UUID) (*models.Section, error)
	ForumSections(ctx context.Context) ([]models.Section, error)
	Blogs(ctx context.Context) ([]models.Section, error)
}

// ArticleRepo is the article data access used by the handlers.
type ArticleRepo interface {
	Create(ctx context.Context, c models.ArticleCreate) (*models.Article, error)
	Update(ctx context.Context, e models.ArticleEdit) (*models.Article, error)
	Delete(ctx context.Context, d models.ArticleDelete) (*models.Article, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Article, error)
	Paging(ctx context.Context, page, pageSize uint) ([]models.Article, error)
	PagingBySection(ctx context.Context, sectionID uuid.UUID, page, pageSize uint) ([]models.Article, error)
	CountBySection(ctx context.Context, sectionID uuid.UUID) (int, error)
}

// UserRepo is the account data access used by the auth handlers.
type UserRepo interface {
	FindByAccount(ctx context.Context, account string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, n models.UserNew) (*models.User, error)
	CheckPassword(user *models.User, password string) bool
	SetTOTPSecret(ctx context.Context, userID uuid.UUID, secret string) error
	EnableTOTP(ctx context.Context, userID uuid.UUID) error
}

// SessionManager creates, updates and destroys login sessions.
type SessionManager interface {
	Create(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error)
	Update(ctx context.Context, r *http.Request, data *session.Data) error
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// Pages renders a named page template.
type Pages interface {
	Page(w http.ResponseWriter, r *http.Request, name string, data *render.PageData)
}
