// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public site.
// Every page template defines a "content" block that is placed inside the
// shared base layout.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"agora/internal/models"
	"agora/internal/web"
)

//go:embed templates/*.html
var templateFS embed.FS

const baseTemplate = "base.html"

// PageData holds everything passed to a template. Handlers fill Title and
// Data; Page fills the caller identity and CSRF token from the request.
type PageData struct {
	Title     string
	User      *models.User
	IsLogin   bool
	IsAdmin   bool
	CSRFToken string
	Data      map[string]any
}

// Renderer holds the parsed page templates.
type Renderer struct {
	templates map[string]*template.Template
}

var funcMap = template.FuncMap{
	// safeHTML marks stored, already-sanitized article HTML as safe.
	"safeHTML": func(s string) template.HTML {
		return template.HTML(s)
	},
	"date": func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	},
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
}

// New parses every page template from the embedded filesystem, each paired
// with the base layout.
func New() (*Renderer, error) {
	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob templates: %w", err)
	}

	rn := &Renderer{templates: make(map[string]*template.Template)}
	for _, page := range pages {
		name := path.Base(page)
		if name == baseTemplate {
			continue
		}

		tmpl, err := template.New(baseTemplate).Funcs(funcMap).ParseFS(
			templateFS, "templates/"+baseTemplate, page,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		rn.templates[strings.TrimSuffix(name, ".html")] = tmpl
	}

	return rn, nil
}

// Page renders the named page inside the base layout. The output is
// buffered so a template error never leaves a half-written response.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		zap.S().Errorw("template not found", "template", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	wc := web.From(r.Context())
	data.User = wc.User
	data.IsLogin = wc.IsLogin()
	data.IsAdmin = wc.IsAdmin()
	data.CSRFToken = wc.CSRFToken
	if data.Data == nil {
		data.Data = map[string]any{}
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, baseTemplate, data); err != nil {
		zap.S().Errorw("template execution failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
