// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"agora/internal/models"
)

const sectionEntity = "section"

const sectionColumns = `id, title, description, stype, suser, weight, created_time`

// SectionStore manages forum sections and blogs in the database.
type SectionStore struct {
	db *sqlx.DB
}

// NewSectionStore returns a new SectionStore.
func NewSectionStore(db *sqlx.DB) *SectionStore {
	return &SectionStore{db: db}
}

// getOne runs a single-row statement and scans it into a Section.
func (s *SectionStore) getOne(ctx context.Context, op string, b sq.Sqlizer) (*models.Section, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, opErr(op, sectionEntity, err)
	}
	var sec models.Section
	if err := s.db.GetContext(ctx, &sec, query, args...); err != nil {
		return nil, opErr(op, sectionEntity, err)
	}
	return &sec, nil
}

// list runs a multi-row select and scans every row.
func (s *SectionStore) list(ctx context.Context, b sq.SelectBuilder) ([]models.Section, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build section query: %w", err)
	}
	items := []models.Section{}
	if err := s.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return items, nil
}

// Create inserts a new forum section and returns it.
func (s *SectionStore) Create(ctx context.Context, n models.SectionNew) (*models.Section, error) {
	return s.getOne(ctx, OpInsert, psql.Insert("section").
		Columns("title", "description", "stype").
		Values(n.Title, n.Description, models.SectionForum).
		Suffix("RETURNING "+sectionColumns))
}

// CreateBlog inserts a personal blog owned by n.SUser.
func (s *SectionStore) CreateBlog(ctx context.Context, n models.BlogNew) (*models.Section, error) {
	return s.getOne(ctx, OpInsert, psql.Insert("section").
		Columns("title", "description", "stype", "suser").
		Values(n.Title, n.Description, models.SectionBlog, n.SUser).
		Suffix("RETURNING "+sectionColumns))
}

// Update overwrites the title and description of the section matching e.ID.
func (s *SectionStore) Update(ctx context.Context, e models.SectionEdit) (*models.Section, error) {
	return s.getOne(ctx, OpUpdate, psql.Update("section").
		Set("title", e.Title).
		Set("description", e.Description).
		Where(sq.Eq{"id": e.ID}).
		Suffix("RETURNING "+sectionColumns))
}

// UpdateWeight sets the manual sort key of one section.
func (s *SectionStore) UpdateWeight(ctx context.Context, u models.UpdateSectionWeight) (*models.Section, error) {
	return s.getOne(ctx, OpUpdate, psql.Update("section").
		Set("weight", u.Weight).
		Where(sq.Eq{"id": u.ID}).
		Suffix("RETURNING "+sectionColumns))
}

// Delete removes a section and returns its prior contents.
func (s *SectionStore) Delete(ctx context.Context, id uuid.UUID) (*models.Section, error) {
	return s.getOne(ctx, OpDelete, psql.Delete("section").
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING "+sectionColumns))
}

// GetByID retrieves a section by its id.
func (s *SectionStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Section, error) {
	return s.getOne(ctx, OpGet, psql.Select(sectionColumns).
		From("section").
		Where(sq.Eq{"id": id}))
}

// GetBySUser retrieves the blog owned by userID.
func (s *SectionStore) GetBySUser(ctx context.Context, userID uuid.UUID) (*models.Section, error) {
	return s.getOne(ctx, OpGet, psql.Select(sectionColumns).
		From("section").
		Where(sq.Eq{"suser": userID}).
		Limit(1))
}

// ForumSections returns every forum-type section in ascending weight order.
// The rearrange form relies on this order being stable between the page
// render and the submission.
func (s *SectionStore) ForumSections(ctx context.Context) ([]models.Section, error) {
	return s.list(ctx, psql.Select(sectionColumns).
		From("section").
		Where(sq.Eq{"stype": models.SectionForum}).
		OrderBy("weight ASC", "created_time ASC"))
}

// Blogs returns every blog section, newest first.
func (s *SectionStore) Blogs(ctx context.Context) ([]models.Section, error) {
	return s.list(ctx, psql.Select(sectionColumns).
		From("section").
		Where(sq.Eq{"stype": models.SectionBlog}).
		OrderBy("created_time DESC"))
}
