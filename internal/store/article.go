// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"math"
	"math/bits"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"agora/internal/models"
)

const articleEntity = "article"

const articleColumns = `id, section_id, author_id, title, raw_content, content, created_time, updated_time`

// ArticleStore handles all article-related database operations.
type ArticleStore struct {
	db *sqlx.DB
}

// NewArticleStore creates a new ArticleStore with the given connection pool.
func NewArticleStore(db *sqlx.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

func (s *ArticleStore) getOne(ctx context.Context, op string, b sq.Sqlizer) (*models.Article, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, opErr(op, articleEntity, err)
	}
	var a models.Article
	if err := s.db.GetContext(ctx, &a, query, args...); err != nil {
		return nil, opErr(op, articleEntity, err)
	}
	return &a, nil
}

// Create inserts a new article and returns it with the generated id.
func (s *ArticleStore) Create(ctx context.Context, c models.ArticleCreate) (*models.Article, error) {
	return s.getOne(ctx, OpInsert, psql.Insert("article").
		Columns("section_id", "author_id", "title", "raw_content", "content").
		Values(c.SectionID, c.AuthorID, c.Title, c.RawContent, c.Content).
		Suffix("RETURNING "+articleColumns))
}

// Update overwrites every editable field of the article matching e.ID.
func (s *ArticleStore) Update(ctx context.Context, e models.ArticleEdit) (*models.Article, error) {
	return s.getOne(ctx, OpUpdate, psql.Update("article").
		Set("section_id", e.SectionID).
		Set("title", e.Title).
		Set("raw_content", e.RawContent).
		Set("content", e.Content).
		Set("updated_time", sq.Expr("NOW()")).
		Where(sq.Eq{"id": e.ID}).
		Suffix("RETURNING "+articleColumns))
}

// Delete removes an article and returns the row as it was before deletion.
func (s *ArticleStore) Delete(ctx context.Context, d models.ArticleDelete) (*models.Article, error) {
	return s.getOne(ctx, OpDelete, psql.Delete("article").
		Where(sq.Eq{"id": d.ID}).
		Suffix("RETURNING "+articleColumns))
}

// GetByID retrieves an article by its id.
func (s *ArticleStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	return s.getOne(ctx, OpGet, psql.Select(articleColumns).
		From("article").
		Where(sq.Eq{"id": id}))
}

// Paging returns one 0-indexed page of articles, newest first.
func (s *ArticleStore) Paging(ctx context.Context, page, pageSize uint) ([]models.Article, error) {
	return s.page(ctx, psql.Select(articleColumns).From("article"), page, pageSize)
}

// PagingBySection is Paging restricted to the articles of one section.
func (s *ArticleStore) PagingBySection(ctx context.Context, sectionID uuid.UUID, page, pageSize uint) ([]models.Article, error) {
	return s.page(ctx, psql.Select(articleColumns).
		From("article").
		Where(sq.Eq{"section_id": sectionID}), page, pageSize)
}

// page applies the shared ordering and LIMIT/OFFSET window to b. A window
// that starts past the bigint range holds no rows.
func (s *ArticleStore) page(ctx context.Context, b sq.SelectBuilder, page, pageSize uint) ([]models.Article, error) {
	hi, offset := bits.Mul(pageSize, page)
	if hi != 0 || uint64(offset) > math.MaxInt64 || uint64(pageSize) > math.MaxInt64 {
		return []models.Article{}, nil
	}

	query, args, err := b.
		OrderBy("created_time DESC").
		Suffix("LIMIT ? OFFSET ?", pageSize, offset).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build article page query: %w", err)
	}

	items := []models.Article{}
	if err := s.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("page articles: %w", err)
	}
	return items, nil
}

// CountBySection returns the number of articles in a section.
func (s *ArticleStore) CountBySection(ctx context.Context, sectionID uuid.UUID) (int, error) {
	query, args, err := psql.Select("COUNT(*)").
		From("article").
		Where(sq.Eq{"section_id": sectionID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build article count query: %w", err)
	}

	var count int
	if err := s.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}
