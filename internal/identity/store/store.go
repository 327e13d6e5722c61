// Package store persists identity records.
package store

import (
	"context"

	"foodbridge/internal/identity/models"
	"foodbridge/pkg/domain"
)

// UserStore persists accounts. Email lookups are case-insensitive.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id domain.UserID) (*models.User, error)
}
