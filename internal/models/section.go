// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// SectionType distinguishes forum boards from personal blogs.
type SectionType int

const (
	SectionForum SectionType = 0
	SectionBlog  SectionType = 1
)

// Section is a forum board or, when Stype is SectionBlog, a single user's
// personal blog.
type Section struct {
	ID          uuid.UUID   `db:"id" json:"id"`
	Title       string      `db:"title" json:"title"`
	Description string      `db:"description" json:"description"`
	Stype       SectionType `db:"stype" json:"stype"`
	SUser       *uuid.UUID  `db:"suser" json:"suser,omitempty"`
	Weight      float64     `db:"weight" json:"weight"`
	CreatedTime time.Time   `db:"created_time" json:"created_time"`
}

// IsBlog returns true if the section is a personal blog.
func (s *Section) IsBlog() bool {
	return s.Stype == SectionBlog
}

// OwnedBy reports whether userID owns this section.
func (s *Section) OwnedBy(userID uuid.UUID) bool {
	return s.SUser != nil && *s.SUser == userID
}

// SectionNew is the write record for creating a forum section.
type SectionNew struct {
	Title       string `db:"title"`
	Description string `db:"description"`
}

// SectionEdit replaces the title and description of an existing section.
type SectionEdit struct {
	ID          uuid.UUID `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
}

// UpdateSectionWeight sets the manual sort key of a section.
type UpdateSectionWeight struct {
	ID     uuid.UUID `db:"id"`
	Weight float64   `db:"weight"`
}

// BlogNew is the write record for opening a personal blog.
type BlogNew struct {
	Title       string    `db:"title" validate:"required,max=255"`
	Description string    `db:"description"`
	SUser       uuid.UUID `db:"suser" validate:"required"`
}
