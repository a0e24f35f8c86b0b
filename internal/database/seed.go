// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"agora/internal/models"
)

// Default development credentials created by Seed.
const (
	SeedAdminAccount  = "admin"
	SeedAdminPassword = "admin"
)

// Seed populates the database with initial development data.
// It creates a default admin user and a first forum section if no users
// exist. The admin will be prompted to set up 2FA on first login.
func Seed(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM users"); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		zap.S().Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO users (account, nickname, password_hash, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, SeedAdminAccount, "Administrator", string(hash), models.RoleAdmin, false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO section (title, description, stype, weight)
		VALUES ($1, $2, $3, $4)
	`, "General", "Anything goes.", models.SectionForum, 0)
	if err != nil {
		return fmt.Errorf("seed insert section: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	zap.S().Infow("database seeded with default admin user",
		"account", SeedAdminAccount,
		"password", SeedAdminPassword,
	)
	return nil
}
