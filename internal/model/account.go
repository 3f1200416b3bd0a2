// Package model holds the domain types shared by repositories, services and
// handlers.
package model

import (
	"strings"
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleStyler  Role = "styler"
	RolePartner Role = "partner"
	RoleAdmin   Role = "admin"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleStyler, RolePartner, RoleAdmin}

func (r Role) IsValid() bool {
	switch r {
	case RoleStyler, RolePartner, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// Account mirrors the accounts table. PasswordHash never leaves the process.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsApproved   bool      `json:"isApproved"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Summary is the redacted view embedded in populated resources.
func (a Account) Summary() *AccountSummary {
	return &AccountSummary{ID: a.ID, Email: a.Email, Role: a.Role}
}

type AccountSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// NormalizeEmail lower-cases and trims an email so identity is case-insensitive.
func NormalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// AccountFilter narrows account listings.
type AccountFilter struct {
	Email string
	Role  Role
}
