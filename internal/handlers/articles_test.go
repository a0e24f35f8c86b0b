// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agora/internal/models"
	"agora/internal/web"
)

func newArticle(sectionID, authorID uuid.UUID) *models.Article {
	now := time.Now()
	return &models.Article{
		ID: uuid.New(), SectionID: sectionID, AuthorID: authorID, Title: "Hello",
		RawContent: "hi", Content: "<p>hi</p>\n", CreatedTime: now, UpdatedTime: now,
	}
}

func TestArticleDetail(t *testing.T) {
	sec := forum("General", 1)
	wc := userCtx()
	a := newArticle(sec.ID, wc.User.ID)
	pages := &fakePages{}
	h := NewArticles(pages, newMemSections(sec), newMemArticles(a))

	rr := serve(h.Detail, newRequest(http.MethodGet, "/article?id="+a.ID.String(), nil, wc))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "article", pages.name)
	assert.Equal(t, a, pages.data.Data["article"])
	assert.Equal(t, sec, pages.data.Data["section"])
	assert.Equal(t, true, pages.data.Data["can_edit"])

	rr = serve(h.Detail, newRequest(http.MethodGet, "/article?id="+a.ID.String(), nil, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, false, pages.data.Data["can_edit"])
}

func TestArticleDetail_NotFound(t *testing.T) {
	h := NewArticles(&fakePages{}, newMemSections(), newMemArticles())

	rr := serve(h.Detail, newRequest(http.MethodGet, "/article?id="+uuid.NewString(), nil, nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestArticleCreate(t *testing.T) {
	sec := forum("General", 1)
	arts := newMemArticles()
	h := NewArticles(&fakePages{}, newMemSections(sec), arts)
	wc := userCtx()

	form := url.Values{"section_id": {sec.ID.String()}, "title": {"First"}, "raw_content": {"**bold**"}}
	rr := serve(h.Create, newRequest(http.MethodPost, "/s/article/create", form, wc))

	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Len(t, arts.rows, 1)
	for id, a := range arts.rows {
		assert.Equal(t, "/article?id="+id.String(), rr.Header().Get("Location"))
		assert.Equal(t, wc.User.ID, a.AuthorID)
		assert.Equal(t, "**bold**", a.RawContent)
		assert.Contains(t, a.Content, "<strong>bold</strong>")
	}
}

func TestArticleCreate_BlogOfAnotherUser(t *testing.T) {
	owner := uuid.New()
	blog := &models.Section{ID: uuid.New(), Title: "Theirs", Stype: models.SectionBlog, SUser: &owner}
	arts := newMemArticles()
	h := NewArticles(&fakePages{}, newMemSections(blog), arts)

	form := url.Values{"section_id": {blog.ID.String()}, "title": {"Hi"}, "raw_content": {"x"}}
	rr := serve(h.Create, newRequest(http.MethodPost, "/s/article/create", form, userCtx()))

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "No permission.\n", rr.Body.String())
	assert.Empty(t, arts.rows)
}

func TestArticleCreate_MissingBody(t *testing.T) {
	sec := forum("General", 1)
	arts := newMemArticles()
	h := NewArticles(&fakePages{}, newMemSections(sec), arts)

	form := url.Values{"section_id": {sec.ID.String()}, "title": {"First"}, "raw_content": {""}}
	rr := serve(h.Create, newRequest(http.MethodPost, "/s/article/create", form, userCtx()))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Article body is required.\n", rr.Body.String())
}

func TestArticleEdit_Permissions(t *testing.T) {
	sec := forum("General", 1)
	author := userCtx()
	tests := []struct {
		name string
		wc   *web.Context
		want int
	}{
		{"author", author, http.StatusSeeOther},
		{"admin", adminCtx(), http.StatusSeeOther},
		{"stranger", userCtx(), http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newArticle(sec.ID, author.User.ID)
			h := NewArticles(&fakePages{}, newMemSections(sec), newMemArticles(a))

			form := url.Values{
				"id": {a.ID.String()}, "section_id": {sec.ID.String()},
				"title": {"Edited"}, "raw_content": {"new body"},
			}
			rr := serve(h.Edit, newRequest(http.MethodPost, "/s/article/edit", form, tt.wc))

			assert.Equal(t, tt.want, rr.Code)
			if tt.want == http.StatusSeeOther {
				assert.Equal(t, "Edited", a.Title)
				assert.Equal(t, "/article?id="+a.ID.String(), rr.Header().Get("Location"))
			} else {
				assert.Equal(t, "Hello", a.Title)
			}
		})
	}
}

func TestArticleEditPage(t *testing.T) {
	sec := forum("General", 1)
	wc := userCtx()
	a := newArticle(sec.ID, wc.User.ID)
	pages := &fakePages{}
	h := NewArticles(pages, newMemSections(sec), newMemArticles(a))

	rr := serve(h.EditPage, newRequest(http.MethodGet, "/p/article/edit?id="+a.ID.String(), nil, wc))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "article_form", pages.name)
	assert.Equal(t, a.SectionID, pages.data.Data["section_id"])

	rr = serve(h.EditPage, newRequest(http.MethodGet, "/p/article/edit?id="+a.ID.String(), nil, userCtx()))
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestArticleDelete(t *testing.T) {
	sec := forum("General", 1)
	wc := userCtx()
	a := newArticle(sec.ID, wc.User.ID)
	arts := newMemArticles(a)
	h := NewArticles(&fakePages{}, newMemSections(sec), arts)

	form := url.Values{"id": {a.ID.String()}}
	rr := serve(h.Delete, newRequest(http.MethodPost, "/s/article/delete", form, userCtx()))
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Len(t, arts.rows, 1)

	rr = serve(h.Delete, newRequest(http.MethodPost, "/s/article/delete", form, wc))
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"), "section pages are closed to non-admins")
	assert.Empty(t, arts.rows)

	rr = serve(h.Delete, newRequest(http.MethodPost, "/s/article/delete", form, wc))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestArticleDelete_AdminBackToSection(t *testing.T) {
	sec := forum("General", 1)
	a := newArticle(sec.ID, uuid.New())
	arts := newMemArticles(a)
	h := NewArticles(&fakePages{}, newMemSections(sec), arts)

	form := url.Values{"id": {a.ID.String()}}
	rr := serve(h.Delete, newRequest(http.MethodPost, "/s/article/delete", form, adminCtx()))
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/section?id="+sec.ID.String(), rr.Header().Get("Location"))
	assert.Empty(t, arts.rows)
}

func TestCreateBlog(t *testing.T) {
	secs := newMemSections()
	h := NewArticles(&fakePages{}, secs, newMemArticles())
	wc := userCtx()

	form := url.Values{"title": {"Joe's notes"}, "description": {""}}
	rr := serve(h.CreateBlog, newRequest(http.MethodPost, "/s/blog/create", form, wc))

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/blogs", rr.Header().Get("Location"))
	require.Len(t, secs.rows, 1)
	for _, s := range secs.rows {
		assert.True(t, s.IsBlog())
		assert.True(t, s.OwnedBy(wc.User.ID))
	}

	rr = serve(h.CreateBlog, newRequest(http.MethodPost, "/s/blog/create", form, wc))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "blog already exists\n", rr.Body.String())
	assert.Len(t, secs.rows, 1)
}

func TestCreateBlog_AdminLandsOnBlog(t *testing.T) {
	h := NewArticles(&fakePages{}, newMemSections(), newMemArticles())
	wc := adminCtx()

	form := url.Values{"title": {"Release notes"}}
	rr := serve(h.CreateBlog, newRequest(http.MethodPost, "/s/blog/create", form, wc))

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/blog_with_author?author_id="+wc.User.ID.String(), rr.Header().Get("Location"))
}
