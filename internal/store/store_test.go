// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// store_test.go provides shared helpers for the store tests: a sqlmock-backed
// pool for unit tests and a real PostgreSQL pool for integration tests, which
// are skipped if PostgreSQL is not available.
package store

import (
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"agora/internal/database"
)

// newMockDB returns a sqlx pool backed by sqlmock. Queries are matched
// verbatim and unmet expectations fail the test during cleanup.
func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet SQL expectations: %v", err)
		}
		db.Close()
	})
	return sqlx.NewDb(db, "pgx"), mock
}

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("AGORA_DB__HOST", "localhost")
	port := envOr("AGORA_DB__PORT", "5432")
	user := envOr("AGORA_DB__USER", "agora")
	pass := envOr("AGORA_DB__PASSWORD", "changeme")
	name := envOr("AGORA_DB__NAME", "agora")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped.
func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.Connect(testDSN())
	if err != nil {
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanSections removes test sections (and their articles by cascade).
func cleanSections(t *testing.T, db *sqlx.DB, titles ...string) {
	t.Helper()
	for _, title := range titles {
		db.Exec("DELETE FROM section WHERE title = $1", title)
	}
}

// cleanUsers removes test users by account name.
func cleanUsers(t *testing.T, db *sqlx.DB, accounts ...string) {
	t.Helper()
	for _, account := range accounts {
		db.Exec("DELETE FROM users WHERE account = $1", account)
	}
}
