// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"agora/internal/models"
	"agora/internal/render"
	"agora/internal/store"
	"agora/internal/web"
)

// Sections groups the section detail, create, edit and rearrange pages.
type Sections struct {
	renderer Pages
	sections SectionRepo
	articles ArticleRepo
	pageSize uint
}

// NewSections creates a new Sections handler group.
func NewSections(renderer Pages, sections SectionRepo, articles ArticleRepo, pageSize uint) *Sections {
	return &Sections{
		renderer: renderer,
		sections: sections,
		articles: articles,
		pageSize: pageSize,
	}
}

// totalPages is the page count shown under a section listing. An exact
// multiple of the page size yields one trailing empty page.
func totalPages(totalItems int, pageSize uint) int {
	return totalItems/int(pageSize) + 1
}

// Detail renders a section (or blog) by its id with one page of articles.
func (h *Sections) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := queryUUID(r, "id")
	if err != nil {
		badRequest(w, err)
		return
	}
	page, err := queryPage(r, "current_page")
	if err != nil {
		badRequest(w, err)
		return
	}

	sec, err := h.sections.GetByID(r.Context(), id)
	if store.IsNotFound(err) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	if err != nil {
		zap.S().Errorw("get section failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.detail(w, r, sec, page)
}

// DetailByAuthor renders the blog owned by the author_id query parameter.
func (h *Sections) DetailByAuthor(w http.ResponseWriter, r *http.Request) {
	authorID, err := queryUUID(r, "author_id")
	if err != nil {
		badRequest(w, err)
		return
	}
	page, err := queryPage(r, "current_page")
	if err != nil {
		badRequest(w, err)
		return
	}

	sec, err := h.sections.GetBySUser(r.Context(), authorID)
	if store.IsNotFound(err) {
		http.Error(w, "no this section", http.StatusBadRequest)
		return
	}
	if err != nil {
		zap.S().Errorw("get blog by author failed", "author_id", authorID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.detail(w, r, sec, page)
}

func (h *Sections) detail(w http.ResponseWriter, r *http.Request, sec *models.Section, page int) {
	ctx := r.Context()
	wc := web.From(ctx)

	total, err := h.articles.CountBySection(ctx, sec.ID)
	if err != nil {
		zap.S().Errorw("count articles failed", "section_id", sec.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	articles, err := h.articles.PagingBySection(ctx, sec.ID, uint(page-1), h.pageSize)
	if err != nil {
		zap.S().Errorw("page articles failed", "section_id", sec.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := map[string]any{
		"section":       sec,
		"is_a_blog":     sec.IsBlog(),
		"is_myown_blog": wc.User != nil && sec.OwnedBy(wc.User.ID),
		"is_admin":      wc.IsAdmin(),
		"is_login":      wc.IsLogin(),
		"total_item":    total,
		"total_page":    totalPages(total, h.pageSize),
		"current_page":  page,
		"articles":      articles,
	}
	if wc.User != nil {
		data["user"] = wc.User
	}

	h.renderer.Page(w, r, "section", &render.PageData{Title: sec.Title, Data: data})
}

// CreatePage renders the new-section form.
func (h *Sections) CreatePage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Page(w, r, "section_new", &render.PageData{Title: "New section"})
}

// EditPage renders the edit form for the section in the id query parameter.
func (h *Sections) EditPage(w http.ResponseWriter, r *http.Request) {
	id, err := queryUUID(r, "id")
	if err != nil {
		badRequest(w, err)
		return
	}

	sec, err := h.sections.GetByID(r.Context(), id)
	if store.IsNotFound(err) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	if err != nil {
		zap.S().Errorw("get section failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Page(w, r, "section_edit", &render.PageData{
		Title: "Edit " + sec.Title,
		Data:  map[string]any{"section": sec},
	})
}

// Create stores a new forum section from the title and description fields.
func (h *Sections) Create(w http.ResponseWriter, r *http.Request) {
	n := models.SectionNew{
		Title:       trimmed(r.PostFormValue("title")),
		Description: trimmed(r.PostFormValue("description")),
	}
	sec, err := h.sections.Create(r.Context(), n)
	if err != nil {
		zap.S().Errorw("section create failed", "title", n.Title, "error", err)
		http.Error(w, "section create error.", http.StatusInternalServerError)
		return
	}

	zap.S().Infow("section created", "id", sec.ID, "title", sec.Title)
	http.Redirect(w, r, "/section?id="+sec.ID.String(), http.StatusSeeOther)
}

// Edit overwrites the title and description of an existing section.
func (h *Sections) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := formUUID(r, "id")
	if err != nil {
		badRequest(w, err)
		return
	}

	e := models.SectionEdit{
		ID:          id,
		Title:       trimmed(r.PostFormValue("title")),
		Description: trimmed(r.PostFormValue("description")),
	}
	sec, err := h.sections.Update(r.Context(), e)
	if err != nil {
		zap.S().Errorw("section edit failed", "id", id, "error", err)
		http.Error(w, "section edit error.", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/section?id="+sec.ID.String(), http.StatusSeeOther)
}

// RearrangePage lists the forum sections in their current order.
func (h *Sections) RearrangePage(w http.ResponseWriter, r *http.Request) {
	secs, err := h.sections.ForumSections(r.Context())
	if err != nil {
		zap.S().Errorw("list forum sections failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Page(w, r, "section_rearrange", &render.PageData{
		Title: "Arrange sections",
		Data:  map[string]any{"sections": secs},
	})
}

// Rearrange assigns order[i] as the weight of the i-th forum section in the
// listing order. Updates are applied one by one; a failure stops the loop
// and earlier updates remain.
func (h *Sections) Rearrange(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	order := r.PostForm["order"]

	ctx := r.Context()
	secs, err := h.sections.ForumSections(ctx)
	if err != nil {
		zap.S().Errorw("list forum sections failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	for i, sec := range secs {
		if i >= len(order) {
			badRequest(w, missing("order"))
			return
		}
		weight, err := parseWeight(i, order[i])
		if err != nil {
			badRequest(w, err)
			return
		}
		if _, err := h.sections.UpdateWeight(ctx, models.UpdateSectionWeight{ID: sec.ID, Weight: weight}); err != nil {
			zap.S().Errorw("update section weight failed", "id", sec.ID, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, "/p/section/rearrange", http.StatusSeeOther)
}
