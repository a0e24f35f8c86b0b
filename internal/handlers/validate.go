// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// fieldMessages maps struct fields to the message shown when they fail.
// A "Struct.Field" key takes precedence over the bare field name.
var fieldMessages = map[string]string{
	"BlogNew.Title": "Title is required (max 255 characters).",
	"Title":         "Title is required (max 300 characters).",
	"RawContent":    "Article body is required.",
	"Account":       "Account is required (max 64 characters).",
	"Nickname":      "Nickname is required (max 64 characters).",
	"Password":      "Password must be at least 6 characters.",
}

// checkForm validates a form struct and returns the first user-facing error
// message, or "" when the struct is valid.
func checkForm(v any) string {
	err := validate.Struct(v)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if msg, ok := fieldMessages[fe.StructNamespace()]; ok {
			return msg
		}
		if msg, ok := fieldMessages[fe.Field()]; ok {
			return msg
		}
		return strings.ToLower(fe.Field()) + " is invalid."
	}
	return "Invalid form."
}

// trimmed returns s with surrounding whitespace removed.
func trimmed(s string) string {
	return strings.TrimSpace(s)
}
