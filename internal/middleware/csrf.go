// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"go.uber.org/zap"

	"agora/internal/web"
)

const (
	// csrfTokenLength is the byte length of CSRF tokens (32 bytes = 64 hex chars).
	csrfTokenLength = 32

	// CSRFCookieName is the cookie that holds the CSRF token.
	CSRFCookieName = "agora_csrf"

	// CSRFHeaderName lets scripted clients send the token as a header.
	CSRFHeaderName = "X-CSRF-Token"

	// CSRFFormField is the hidden form field name.
	CSRFFormField = "csrf_token"
)

// CSRF provides double-submit cookie protection. A token cookie is issued on
// first contact and copied into the request's web.Context so the very first
// rendered form already carries it. POST, PUT, PATCH and DELETE must echo
// the token back as a header or form field. Must run after Attach.
func CSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if cookie, err := r.Cookie(CSRFCookieName); err == nil {
			token = cookie.Value
		}
		if token == "" {
			var err error
			token, err = generateCSRFToken()
			if err != nil {
				zap.S().Errorw("csrf token generation failed", "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     CSRFCookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteStrictMode,
			})
		}
		web.From(r.Context()).CSRFToken = token

		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		submitted := r.Header.Get(CSRFHeaderName)
		if submitted == "" {
			submitted = r.FormValue(CSRFFormField)
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(submitted)) != 1 {
			http.Error(w, "CSRF token mismatch", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// generateCSRFToken creates a cryptographically random token.
func generateCSRFToken() (string, error) {
	b := make([]byte, csrfTokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
