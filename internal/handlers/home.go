// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"agora/internal/render"
	"agora/internal/store"
	"agora/internal/web"
)

// Home groups the landing page and the blog directory.
type Home struct {
	renderer Pages
	sections SectionRepo
	articles ArticleRepo
	pageSize uint
}

// NewHome creates a new Home handler group.
func NewHome(renderer Pages, sections SectionRepo, articles ArticleRepo, pageSize uint) *Home {
	return &Home{
		renderer: renderer,
		sections: sections,
		articles: articles,
		pageSize: pageSize,
	}
}

// Index lists the forum sections by weight and the newest articles.
func (h *Home) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	secs, err := h.sections.ForumSections(ctx)
	if err != nil {
		zap.S().Errorw("list forum sections failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	latest, err := h.articles.Paging(ctx, 0, h.pageSize)
	if err != nil {
		zap.S().Errorw("latest articles failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Page(w, r, "index", &render.PageData{
		Data: map[string]any{
			"sections": secs,
			"articles": latest,
		},
	})
}

// Blogs lists every blog section. Logged-in users without a blog get the
// form to open one.
func (h *Home) Blogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	blogs, err := h.sections.Blogs(ctx)
	if err != nil {
		zap.S().Errorw("list blogs failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := map[string]any{
		"blogs":    blogs,
		"has_blog": false,
	}
	if user := web.From(ctx).User; user != nil {
		mine, err := h.sections.GetBySUser(ctx, user.ID)
		if err != nil && !store.IsNotFound(err) {
			zap.S().Errorw("blog lookup failed", "user_id", user.ID, "error", err)
		}
		if err == nil {
			data["has_blog"] = true
			data["my_blog"] = mine
		}
	}

	h.renderer.Page(w, r, "blogs", &render.PageData{Title: "Blogs", Data: data})
}
