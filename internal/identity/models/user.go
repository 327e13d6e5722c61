// Package models defines the identity records and request shapes.
package models

import (
	"net/mail"
	"strings"
	"time"

	"foodbridge/pkg/domain"
	dErrors "foodbridge/pkg/domain-errors"
)

// User is a registered account. PasswordHash is a bcrypt hash and never
// leaves the process.
type User struct {
	ID           domain.UserID `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Role         domain.Role   `json:"role"`
	PasswordHash []byte        `json:"-"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Actor returns the request-scoped identity for this user.
func (u *User) Actor() domain.Actor {
	return domain.Actor{ID: u.ID, Name: u.Name, Role: u.Role}
}

// RegisterRequest carries a new account's details.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate enforces the registration constraints.
func (r *RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return dErrors.New(dErrors.CodeValidation, "a valid email is required")
	}
	if len(r.Password) < 4 {
		return dErrors.New(dErrors.CodeValidation, "password must be at least 4 characters")
	}
	if _, err := domain.ParseRole(r.Role); err != nil {
		return dErrors.New(dErrors.CodeValidation, "role must be donor or recipient")
	}
	return nil
}

// LoginRequest carries credentials for an existing account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login: the signed token plus the
// public view of the account.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
