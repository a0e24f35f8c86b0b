// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access for all Agora entities. Each
// store struct wraps an injected *sqlx.DB pool and exposes typed query
// methods. Statements are built with squirrel so every value travels as a
// bound parameter.
package store

import (
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"agora/internal/metrics"
)

// psql builds PostgreSQL statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ErrNotFound is wrapped by an OpError when no row matched.
var ErrNotFound = errors.New("not found")

// Operation names used in OpError messages.
const (
	OpInsert = "Insert"
	OpUpdate = "Update"
	OpDelete = "Delete"
	OpGet    = "get"
)

// OpError is returned by the single-row data-access operations. Its message
// is fixed per operation and entity ("Insert article error."); the wrapped
// error is ErrNotFound when no row matched, or the driver error otherwise.
type OpError struct {
	Op     string
	Entity string
	Err    error
}

func (e *OpError) Error() string {
	return e.Op + " " + e.Entity + " error."
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// opErr wraps err for op on entity, translating sql.ErrNoRows to ErrNotFound.
// Only driver failures are counted.
func opErr(op, entity string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return &OpError{Op: op, Entity: entity, Err: ErrNotFound}
	}
	metrics.StoreErrorsTotal.WithLabelValues(entity, op).Inc()
	return &OpError{Op: op, Entity: entity, Err: err}
}

// IsNotFound reports whether err means that no row matched.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
