// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agora/internal/models"
)

func TestHomeIndex(t *testing.T) {
	arts := newMemArticles()
	pages := &fakePages{}
	h := NewHome(pages, newMemSections(forum("B", 2), forum("A", 1)), arts, testPageSize)

	rr := serve(h.Index, newRequest(http.MethodGet, "/", nil, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "index", pages.name)
	secs := pages.data.Data["sections"].([]models.Section)
	require.Len(t, secs, 2)
	assert.Equal(t, "A", secs[0].Title)
	assert.Equal(t, uint(0), arts.lastPage)
	assert.Equal(t, uint(testPageSize), arts.lastSize)
}

func TestHomeBlogs(t *testing.T) {
	wc := userCtx()
	owner := wc.User.ID
	blog := &models.Section{ID: uuid.New(), Title: "Mine", Stype: models.SectionBlog, SUser: &owner}
	pages := &fakePages{}
	h := NewHome(pages, newMemSections(blog, forum("General", 1)), newMemArticles(), testPageSize)

	rr := serve(h.Blogs, newRequest(http.MethodGet, "/blogs", nil, wc))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "blogs", pages.name)
	assert.Len(t, pages.data.Data["blogs"], 1)
	assert.Equal(t, true, pages.data.Data["has_blog"])
	assert.Equal(t, blog, pages.data.Data["my_blog"])

	rr = serve(h.Blogs, newRequest(http.MethodGet, "/blogs", nil, userCtx()))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, false, pages.data.Data["has_blog"])
	assert.NotContains(t, pages.data.Data, "my_blog")

	rr = serve(h.Blogs, newRequest(http.MethodGet, "/blogs", nil, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, false, pages.data.Data["has_blog"])
}
