// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// paramError reports a missing or malformed request parameter.
type paramError struct {
	name   string
	reason string
}

func (e *paramError) Error() string {
	return e.reason + " parameter: " + e.name
}

func missing(name string) error   { return &paramError{name: name, reason: "missing"} }
func malformed(name string) error { return &paramError{name: name, reason: "malformed"} }

// badRequest answers 400 with the parameter error as body.
func badRequest(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func parseUUID(name, raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, missing(name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, malformed(name)
	}
	return id, nil
}

// queryUUID reads a required UUID from the query string.
func queryUUID(r *http.Request, name string) (uuid.UUID, error) {
	return parseUUID(name, r.URL.Query().Get(name))
}

// formUUID reads a required UUID from the POST body.
func formUUID(r *http.Request, name string) (uuid.UUID, error) {
	return parseUUID(name, r.PostFormValue(name))
}

// queryPage reads a 1-indexed page number, defaulting to 1.
func queryPage(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, malformed(name)
	}
	return n, nil
}

// parseWeight converts one submitted order value.
func parseWeight(i int, raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, malformed(fmt.Sprintf("order[%d]", i))
	}
	return f, nil
}

// RequireForm rejects POSTs that lack any of the named form fields with 400
// before the handler runs. Presence is checked, not content.
func RequireForm(fields ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Bad Request", http.StatusBadRequest)
				return
			}
			for _, f := range fields {
				if _, ok := r.PostForm[f]; !ok {
					badRequest(w, missing(f))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
