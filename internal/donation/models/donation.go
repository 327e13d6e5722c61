// Package models defines the donation record and its state transitions.
package models

import (
	"time"

	"foodbridge/pkg/domain"
	dErrors "foodbridge/pkg/domain-errors"
	"foodbridge/pkg/geo"
)

// Claimant references the recipient who claimed a donation: identity plus
// display name, denormalized at claim time.
type Claimant struct {
	ID   domain.UserID `json:"id"`
	Name string        `json:"name"`
}

// Donation is the central record: an offered item, its location, and its
// claim/expiry status.
//
// Invariants:
//   - ID is assigned once by the engine and never changes or gets reused
//   - Claimed == true implies ClaimedBy is present; false implies absent
//   - Quantity >= 1 always
//   - An expired donation is invalid for search but stays in storage until
//     explicitly cleared
type Donation struct {
	ID          domain.DonationID `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Quantity    int               `json:"quantity"`
	Lat         float64           `json:"lat"`
	Lon         float64           `json:"lon"`
	DonorID     domain.UserID     `json:"donor_id"`
	DonorName   string            `json:"donor_name"`
	CreatedAt   time.Time         `json:"created_at"`
	// ExpiresAt is absent for donations that never expire.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Claimed   bool       `json:"claimed"`
	ClaimedBy *Claimant  `json:"claimed_by,omitempty"`
}

// Location returns the donation's coordinates.
func (d *Donation) Location() geo.Coordinates {
	return geo.Coordinates{Lat: d.Lat, Lon: d.Lon}
}

// IsExpired reports whether ExpiresAt is present and strictly before now.
func (d *Donation) IsExpired(now time.Time) bool {
	return d.ExpiresAt != nil && d.ExpiresAt.Before(now)
}

// IsAvailable reports whether the donation should appear in search results:
// not claimed and not expired.
func (d *Donation) IsAvailable(now time.Time) bool {
	return !d.Claimed && !d.IsExpired(now)
}

// CanClaim checks the claim transition. Expiry is deliberately not checked
// here: search hides expired donations, but a direct claim by id still goes
// through, since donor and recipient may have already coordinated handoff.
func (d *Donation) CanClaim(actor domain.Actor) error {
	if !actor.IsAuthenticated() {
		return dErrors.New(dErrors.CodeUnauthorized, "authentication required to claim")
	}
	if actor.Role != domain.RoleRecipient {
		return dErrors.New(dErrors.CodeForbidden, "only recipients can claim donations")
	}
	if d.Claimed {
		return dErrors.New(dErrors.CodeConflict, "donation already claimed")
	}
	return nil
}

// ApplyClaim marks the donation claimed by the actor. Call CanClaim first.
func (d *Donation) ApplyClaim(actor domain.Actor) {
	d.Claimed = true
	d.ClaimedBy = &Claimant{ID: actor.ID, Name: actor.Name}
}

// Validate checks the structural invariants, used when importing snapshots.
func (d *Donation) Validate() error {
	if d.ID < 1 {
		return dErrors.New(dErrors.CodeMalformedData, "donation id must be positive")
	}
	if d.Title == "" {
		return dErrors.New(dErrors.CodeMalformedData, "donation title is required")
	}
	if !d.Location().IsFinite() {
		return dErrors.New(dErrors.CodeMalformedData, "donation location must be finite")
	}
	if d.Quantity < 1 {
		return dErrors.New(dErrors.CodeMalformedData, "donation quantity must be at least 1")
	}
	if d.CreatedAt.IsZero() {
		return dErrors.New(dErrors.CodeMalformedData, "donation created_at is required")
	}
	if d.Claimed && d.ClaimedBy == nil {
		return dErrors.New(dErrors.CodeMalformedData, "claimed donation missing claimant")
	}
	if !d.Claimed && d.ClaimedBy != nil {
		return dErrors.New(dErrors.CodeMalformedData, "unclaimed donation carries a claimant")
	}
	return nil
}

// Clone returns a deep copy so callers can hand out records without
// aliasing engine state.
func (d *Donation) Clone() Donation {
	out := *d
	if d.ExpiresAt != nil {
		t := *d.ExpiresAt
		out.ExpiresAt = &t
	}
	if d.ClaimedBy != nil {
		c := *d.ClaimedBy
		out.ClaimedBy = &c
	}
	return out
}
