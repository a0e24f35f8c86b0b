// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"agora/internal/markdown"
	"agora/internal/metrics"
	"agora/internal/middleware"
	"agora/internal/models"
	"agora/internal/render"
	"agora/internal/store"
	"agora/internal/web"
)

// Articles groups the article pages and the blog-opening action.
type Articles struct {
	renderer Pages
	sections SectionRepo
	articles ArticleRepo
}

// NewArticles creates a new Articles handler group.
func NewArticles(renderer Pages, sections SectionRepo, articles ArticleRepo) *Articles {
	return &Articles{
		renderer: renderer,
		sections: sections,
		articles: articles,
	}
}

func forbid(w http.ResponseWriter) {
	metrics.PermissionDeniedTotal.WithLabelValues("owner").Inc()
	http.Error(w, middleware.NoPermission, http.StatusForbidden)
}

// canPost reports whether u may add articles to sec. Forums are open to
// every logged-in user; a blog only to its owner and admins.
func canPost(u *models.User, sec *models.Section) bool {
	if u == nil {
		return false
	}
	if !sec.IsBlog() {
		return true
	}
	return u.IsAdmin() || sec.OwnedBy(u.ID)
}

// loadArticle fetches the article named by id and writes 404 or 500 on
// failure. A nil result means the response has been written.
func (h *Articles) loadArticle(w http.ResponseWriter, r *http.Request, id uuid.UUID) *models.Article {
	a, err := h.articles.GetByID(r.Context(), id)
	if store.IsNotFound(err) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return nil
	}
	if err != nil {
		zap.S().Errorw("get article failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil
	}
	return a
}

// loadSection is loadArticle for sections.
func (h *Articles) loadSection(w http.ResponseWriter, r *http.Request, id uuid.UUID) *models.Section {
	sec, err := h.sections.GetByID(r.Context(), id)
	if store.IsNotFound(err) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return nil
	}
	if err != nil {
		zap.S().Errorw("get section failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil
	}
	return sec
}

// Detail renders a single article.
func (h *Articles) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := queryUUID(r, "id")
	if err != nil {
		badRequest(w, err)
		return
	}

	a := h.loadArticle(w, r, id)
	if a == nil {
		return
	}

	data := map[string]any{
		"article":  a,
		"can_edit": a.EditableBy(web.From(r.Context()).User),
	}
	if sec, err := h.sections.GetByID(r.Context(), a.SectionID); err == nil {
		data["section"] = sec
	}

	h.renderer.Page(w, r, "article", &render.PageData{Title: a.Title, Data: data})
}

// CreatePage renders an empty article form for the section_id query parameter.
func (h *Articles) CreatePage(w http.ResponseWriter, r *http.Request) {
	sectionID, err := queryUUID(r, "section_id")
	if err != nil {
		badRequest(w, err)
		return
	}

	sec := h.loadSection(w, r, sectionID)
	if sec == nil {
		return
	}
	if !canPost(web.From(r.Context()).User, sec) {
		forbid(w)
		return
	}

	h.renderer.Page(w, r, "article_form", &render.PageData{
		Title: "New article",
		Data:  map[string]any{"section_id": sec.ID},
	})
}

// Create publishes a new article. The Markdown body is rendered to HTML
// once, here, and both forms are stored.
func (h *Articles) Create(w http.ResponseWriter, r *http.Request) {
	wc := web.From(r.Context())

	sectionID, err := formUUID(r, "section_id")
	if err != nil {
		badRequest(w, err)
		return
	}

	sec := h.loadSection(w, r, sectionID)
	if sec == nil {
		return
	}
	if !canPost(wc.User, sec) {
		forbid(w)
		return
	}

	c := models.ArticleCreate{
		SectionID:  sec.ID,
		AuthorID:   wc.User.ID,
		Title:      trimmed(r.PostFormValue("title")),
		RawContent: r.PostFormValue("raw_content"),
	}
	if msg := checkForm(c); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	c.Content, err = markdown.ToHTML(c.RawContent)
	if err != nil {
		zap.S().Errorw("markdown render failed", "error", err)
		http.Error(w, "article create error.", http.StatusInternalServerError)
		return
	}

	a, err := h.articles.Create(r.Context(), c)
	if err != nil {
		zap.S().Errorw("article create failed", "section_id", sec.ID, "error", err)
		http.Error(w, "article create error.", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/article?id="+a.ID.String(), http.StatusSeeOther)
}

// EditPage renders the article form prefilled for its author or an admin.
func (h *Articles) EditPage(w http.ResponseWriter, r *http.Request) {
	id, err := queryUUID(r, "id")
	if err != nil {
		badRequest(w, err)
		return
	}

	a := h.loadArticle(w, r, id)
	if a == nil {
		return
	}
	if !a.EditableBy(web.From(r.Context()).User) {
		forbid(w)
		return
	}

	h.renderer.Page(w, r, "article_form", &render.PageData{
		Title: "Edit " + a.Title,
		Data:  map[string]any{"article": a, "section_id": a.SectionID},
	})
}

// Edit overwrites an article with the submitted fields.
func (h *Articles) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := formUUID(r, "id")
	if err != nil {
		badRequest(w, err)
		return
	}
	sectionID, err := formUUID(r, "section_id")
	if err != nil {
		badRequest(w, err)
		return
	}

	a := h.loadArticle(w, r, id)
	if a == nil {
		return
	}
	user := web.From(r.Context()).User
	if !a.EditableBy(user) {
		forbid(w)
		return
	}
	if sectionID != a.SectionID {
		sec := h.loadSection(w, r, sectionID)
		if sec == nil {
			return
		}
		if !canPost(user, sec) {
			forbid(w)
			return
		}
	}

	e := models.ArticleEdit{
		ID:         a.ID,
		SectionID:  sectionID,
		Title:      trimmed(r.PostFormValue("title")),
		RawContent: r.PostFormValue("raw_content"),
	}
	if msg := checkForm(e); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	e.Content, err = markdown.ToHTML(e.RawContent)
	if err != nil {
		zap.S().Errorw("markdown render failed", "error", err)
		http.Error(w, "article edit error.", http.StatusInternalServerError)
		return
	}

	updated, err := h.articles.Update(r.Context(), e)
	if err != nil {
		zap.S().Errorw("article edit failed", "id", a.ID, "error", err)
		http.Error(w, "article edit error.", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/article?id="+updated.ID.String(), http.StatusSeeOther)
}

// Delete removes an article and returns to its section.
func (h *Articles) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := formUUID(r, "id")
	if err != nil {
		badRequest(w, err)
		return
	}

	a := h.loadArticle(w, r, id)
	if a == nil {
		return
	}
	if !a.EditableBy(web.From(r.Context()).User) {
		forbid(w)
		return
	}

	prior, err := h.articles.Delete(r.Context(), models.ArticleDelete{ID: a.ID})
	if err != nil {
		zap.S().Errorw("article delete failed", "id", a.ID, "error", err)
		http.Error(w, "article delete error.", http.StatusInternalServerError)
		return
	}

	zap.S().Infow("article deleted", "id", prior.ID, "title", prior.Title)
	if web.From(r.Context()).IsAdmin() {
		http.Redirect(w, r, "/section?id="+prior.SectionID.String(), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// CreateBlog opens the caller's personal blog. Each user owns at most one.
func (h *Articles) CreateBlog(w http.ResponseWriter, r *http.Request) {
	user := web.From(r.Context()).User

	_, err := h.sections.GetBySUser(r.Context(), user.ID)
	switch {
	case err == nil:
		http.Error(w, "blog already exists", http.StatusBadRequest)
		return
	case !store.IsNotFound(err):
		zap.S().Errorw("blog lookup failed", "user_id", user.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	n := models.BlogNew{
		Title:       trimmed(r.PostFormValue("title")),
		Description: trimmed(r.PostFormValue("description")),
		SUser:       user.ID,
	}
	if msg := checkForm(n); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	if _, err := h.sections.CreateBlog(r.Context(), n); err != nil {
		zap.S().Errorw("blog create failed", "user_id", user.ID, "error", err)
		http.Error(w, "blog create error.", http.StatusInternalServerError)
		return
	}

	// Section pages are admin-only; everyone else lands on the blog index.
	if user.IsAdmin() {
		http.Redirect(w, r, "/blog_with_author?author_id="+user.ID.String(), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/blogs", http.StatusSeeOther)
}
