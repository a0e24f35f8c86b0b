// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Article is a content item belonging to exactly one section.
type Article struct {
	ID          uuid.UUID `db:"id" json:"id"`
	SectionID   uuid.UUID `db:"section_id" json:"section_id"`
	AuthorID    uuid.UUID `db:"author_id" json:"author_id"`
	Title       string    `db:"title" json:"title"`
	RawContent  string    `db:"raw_content" json:"raw_content"`
	Content     string    `db:"content" json:"content"` // rendered HTML
	CreatedTime time.Time `db:"created_time" json:"created_time"`
	UpdatedTime time.Time `db:"updated_time" json:"updated_time"`
}

// EditableBy reports whether u may edit or delete the article: its author
// or any administrator.
func (a *Article) EditableBy(u *User) bool {
	if u == nil {
		return false
	}
	return u.IsAdmin() || a.AuthorID == u.ID
}

// ArticleCreate is the write record for a new article. The id and
// timestamps are assigned by the store.
type ArticleCreate struct {
	SectionID  uuid.UUID `db:"section_id" validate:"required"`
	AuthorID   uuid.UUID `db:"author_id" validate:"required"`
	Title      string    `db:"title" validate:"required,max=300"`
	RawContent string    `db:"raw_content" validate:"required"`
	Content    string    `db:"content"`
}

// ArticleEdit overwrites the editable fields of the row matching ID.
type ArticleEdit struct {
	ID         uuid.UUID `db:"id" validate:"required"`
	SectionID  uuid.UUID `db:"section_id" validate:"required"`
	Title      string    `db:"title" validate:"required,max=300"`
	RawContent string    `db:"raw_content" validate:"required"`
	Content    string    `db:"content"`
}

// ArticleDelete identifies the article to remove.
type ArticleDelete struct {
	ID uuid.UUID `db:"id"`
}
