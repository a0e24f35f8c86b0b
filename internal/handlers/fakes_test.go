// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// fakes_test.go provides in-memory stand-ins for the repositories, the
// session manager and the renderer so handler tests run without PostgreSQL
// or Valkey.
package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"agora/internal/models"
	"agora/internal/render"
	"agora/internal/session"
	"agora/internal/store"
	"agora/internal/web"
)

func notFound(op, entity string) error {
	return &store.OpError{Op: op, Entity: entity, Err: store.ErrNotFound}
}

// memSections is an in-memory SectionRepo. calls counts every method
// invocation; failWeightAt makes the n-th UpdateWeight call (1-based) fail.
type memSections struct {
	mu           sync.Mutex
	rows         map[uuid.UUID]*models.Section
	calls        int
	weightCalls  int
	failWeightAt int
	failCreate   bool
}

func newMemSections(secs ...*models.Section) *memSections {
	m := &memSections{rows: map[uuid.UUID]*models.Section{}}
	for _, s := range secs {
		m.rows[s.ID] = s
	}
	return m
}

func (m *memSections) Create(_ context.Context, n models.SectionNew) (*models.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.failCreate {
		return nil, &store.OpError{Op: store.OpInsert, Entity: "section", Err: context.DeadlineExceeded}
	}
	s := &models.Section{ID: uuid.New(), Title: n.Title, Description: n.Description, CreatedTime: time.Now()}
	m.rows[s.ID] = s
	return s, nil
}

func (m *memSections) CreateBlog(_ context.Context, n models.BlogNew) (*models.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	owner := n.SUser
	s := &models.Section{ID: uuid.New(), Title: n.Title, Description: n.Description, Stype: models.SectionBlog, SUser: &owner, CreatedTime: time.Now()}
	m.rows[s.ID] = s
	return s, nil
}

func (m *memSections) Update(_ context.Context, e models.SectionEdit) (*models.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	s, ok := m.rows[e.ID]
	if !ok {
		return nil, notFound(store.OpUpdate, "section")
	}
	s.Title, s.Description = e.Title, e.Description
	return s, nil
}

func (m *memSections) UpdateWeight(_ context.Context, u models.UpdateSectionWeight) (*models.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.weightCalls++
	if m.failWeightAt == m.weightCalls {
		return nil, &store.OpError{Op: store.OpUpdate, Entity: "section", Err: context.Canceled}
	}
	s, ok := m.rows[u.ID]
	if !ok {
		return nil, notFound(store.OpUpdate, "section")
	}
	s.Weight = u.Weight
	return s, nil
}

func (m *memSections) GetByID(_ context.Context, id uuid.UUID) (*models.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	s, ok := m.rows[id]
	if !ok {
		return nil, notFound(store.OpGet, "section")
	}
	return s, nil
}

func (m *memSections) GetBySUser(_ context.Context, userID uuid.UUID) (*models.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	for _, s := range m.rows {
		if s.OwnedBy(userID) {
			return s, nil
		}
	}
	return nil, notFound(store.OpGet, "section")
}

func (m *memSections) byType(t models.SectionType) []models.Section {
	out := []models.Section{}
	for _, s := range m.rows {
		if s.Stype == t {
			out = append(out, *s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight < out[j].Weight
		}
		return out[i].CreatedTime.Before(out[j].CreatedTime)
	})
	return out
}

func (m *memSections) ForumSections(context.Context) ([]models.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.byType(models.SectionForum), nil
}

func (m *memSections) Blogs(context.Context) ([]models.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.byType(models.SectionBlog), nil
}

// memArticles is an in-memory ArticleRepo that records paging arguments.
type memArticles struct {
	mu       sync.Mutex
	rows     map[uuid.UUID]*models.Article
	calls    int
	count    int // returned by CountBySection when >= 0 rows are not used
	lastPage uint
	lastSize uint
}

func newMemArticles(as ...*models.Article) *memArticles {
	m := &memArticles{rows: map[uuid.UUID]*models.Article{}, count: -1}
	for _, a := range as {
		m.rows[a.ID] = a
	}
	return m
}

func (m *memArticles) Create(_ context.Context, c models.ArticleCreate) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	now := time.Now()
	a := &models.Article{
		ID: uuid.New(), SectionID: c.SectionID, AuthorID: c.AuthorID, Title: c.Title,
		RawContent: c.RawContent, Content: c.Content, CreatedTime: now, UpdatedTime: now,
	}
	m.rows[a.ID] = a
	return a, nil
}

func (m *memArticles) Update(_ context.Context, e models.ArticleEdit) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	a, ok := m.rows[e.ID]
	if !ok {
		return nil, notFound(store.OpUpdate, "article")
	}
	a.SectionID, a.Title, a.RawContent, a.Content = e.SectionID, e.Title, e.RawContent, e.Content
	a.UpdatedTime = time.Now()
	return a, nil
}

func (m *memArticles) Delete(_ context.Context, d models.ArticleDelete) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	a, ok := m.rows[d.ID]
	if !ok {
		return nil, notFound(store.OpDelete, "article")
	}
	delete(m.rows, d.ID)
	return a, nil
}

func (m *memArticles) GetByID(_ context.Context, id uuid.UUID) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	a, ok := m.rows[id]
	if !ok {
		return nil, notFound(store.OpGet, "article")
	}
	return a, nil
}

func (m *memArticles) Paging(_ context.Context, page, pageSize uint) ([]models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastPage, m.lastSize = page, pageSize
	return []models.Article{}, nil
}

func (m *memArticles) PagingBySection(_ context.Context, sectionID uuid.UUID, page, pageSize uint) ([]models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastPage, m.lastSize = page, pageSize
	out := []models.Article{}
	for _, a := range m.rows {
		if a.SectionID == sectionID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *memArticles) CountBySection(_ context.Context, sectionID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.count >= 0 {
		return m.count, nil
	}
	n := 0
	for _, a := range m.rows {
		if a.SectionID == sectionID {
			n++
		}
	}
	return n, nil
}

// fakePages records the last rendered page instead of executing templates.
type fakePages struct {
	name string
	data *render.PageData
}

func (f *fakePages) Page(w http.ResponseWriter, r *http.Request, name string, data *render.PageData) {
	f.name, f.data = name, data
	w.WriteHeader(http.StatusOK)
}

// fakeSessionManager records session writes.
type fakeSessionManager struct {
	created   *session.Data
	updated   *session.Data
	destroyed bool
}

func (f *fakeSessionManager) Create(_ context.Context, _ http.ResponseWriter, d *session.Data) (string, error) {
	f.created = d
	return "sid", nil
}

func (f *fakeSessionManager) Update(_ context.Context, _ *http.Request, d *session.Data) error {
	f.updated = d
	return nil
}

func (f *fakeSessionManager) Destroy(context.Context, http.ResponseWriter, *http.Request) error {
	f.destroyed = true
	return nil
}

// newRequest builds a request carrying wc. A non-nil form becomes a
// urlencoded POST body.
func newRequest(method, target string, form url.Values, wc *web.Context) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if wc == nil {
		wc = &web.Context{}
	}
	return req.WithContext(web.With(req.Context(), wc))
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func adminCtx() *web.Context {
	return &web.Context{User: &models.User{ID: uuid.New(), Account: "root", Role: models.RoleAdmin}}
}

func userCtx() *web.Context {
	return &web.Context{User: &models.User{ID: uuid.New(), Account: "joe", Role: models.RoleRegular}}
}

func forum(title string, weight float64) *models.Section {
	return &models.Section{ID: uuid.New(), Title: title, Stype: models.SectionForum, Weight: weight, CreatedTime: time.Now()}
}
