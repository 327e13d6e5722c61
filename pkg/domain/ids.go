// Package domain holds the typed identifiers and enums shared across
// features. Typed IDs prevent cross-type assignment at compile time.
package domain

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	dErrors "foodbridge/pkg/domain-errors"
)

// UserID identifies a registered user.
type UserID uuid.UUID

// ParseUserID validates and returns a UserID. Rejects empty, malformed, and
// nil UUIDs so zero-value IDs never cross a trust boundary.
func ParseUserID(s string) (UserID, error) {
	if s == "" {
		return UserID{}, dErrors.New(dErrors.CodeValidation, "user id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, dErrors.Wrap(err, dErrors.CodeValidation, "user id must be a valid UUID")
	}
	if u == uuid.Nil {
		return UserID{}, dErrors.New(dErrors.CodeValidation, "user id cannot be the nil UUID")
	}
	return UserID(u), nil
}

// NewUserID returns a fresh random UserID.
func NewUserID() UserID {
	return UserID(uuid.New())
}

func (u UserID) String() string {
	return uuid.UUID(u).String()
}

// IsNil reports whether the ID is the zero value.
func (u UserID) IsNil() bool {
	return uuid.UUID(u) == uuid.Nil
}

// MarshalText lets UserID round-trip through JSON as its canonical string.
func (u UserID) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *UserID) UnmarshalText(b []byte) error {
	parsed, err := uuid.Parse(string(b))
	if err != nil {
		return fmt.Errorf("parse user id: %w", err)
	}
	*u = UserID(parsed)
	return nil
}

// DonationID identifies a donation record. IDs are assigned sequentially by
// the engine, start at 1, and are never reused.
type DonationID int64

// ParseDonationID validates a string form of a donation ID, typically a URL
// path segment.
func ParseDonationID(s string) (DonationID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeValidation, "donation id must be an integer")
	}
	if n < 1 {
		return 0, dErrors.New(dErrors.CodeValidation, "donation id must be positive")
	}
	return DonationID(n), nil
}

func (d DonationID) String() string {
	return strconv.FormatInt(int64(d), 10)
}

// IsNil reports whether the ID is unassigned.
func (d DonationID) IsNil() bool {
	return d == 0
}
