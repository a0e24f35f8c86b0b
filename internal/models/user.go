// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and the write records used by the data-access layer.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is a user's privilege level. Higher values carry more privilege.
type Role int

const (
	RoleRegular Role = 0
	RoleAuthor  Role = 1
	RoleAdmin   Role = 9
)

// AdminThreshold is the minimum role that counts as an administrator, both
// for the permission gate and for admin-only page toggles.
const AdminThreshold = RoleAdmin

// User represents a forum account.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Account      string    `db:"account" json:"account"`
	Nickname     string    `db:"nickname" json:"nickname"`
	PasswordHash string    `db:"password_hash" json:"-"` // Never serialize the hash
	Role         Role      `db:"role" json:"role"`
	TOTPSecret   *string   `db:"totp_secret" json:"-"`
	TOTPEnabled  bool      `db:"totp_enabled" json:"totp_enabled"`
	CreatedTime  time.Time `db:"created_time" json:"created_time"`
}

// IsAdmin reports whether the user's role reaches the admin threshold.
func (u *User) IsAdmin() bool {
	return u.Role >= AdminThreshold
}

// Needs2FA reports whether the user must pass a TOTP check at login.
// Only administrators are held to 2FA.
func (u *User) Needs2FA() bool {
	return u.IsAdmin()
}

// Needs2FASetup returns true if the user has not completed 2FA enrollment.
func (u *User) Needs2FASetup() bool {
	return !u.TOTPEnabled
}

// UserNew holds the fields needed to register an account.
type UserNew struct {
	Account  string `validate:"required,max=64"`
	Nickname string `validate:"required,max=64"`
	Password string `validate:"required,min=6"`
	Role     Role
}
