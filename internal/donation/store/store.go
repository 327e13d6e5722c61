// Package store provides blob persistence for the donation collection.
//
// The engine owns the collection in memory; a SnapshotStore persists the
// whole collection as one blob around mutations. There is deliberately no
// per-record CRUD: the persisted unit is the snapshot, matching the engine's
// all-or-nothing commit discipline.
package store

import (
	"context"

	"foodbridge/internal/donation/models"
)

// SnapshotStore loads and saves the full donation collection.
//
// Implementations must make Save atomic from the reader's point of view: a
// concurrent Load returns either the previous or the new collection, never a
// mix. Load on an empty backend returns an empty slice, not an error.
type SnapshotStore interface {
	Load(ctx context.Context) ([]models.Donation, error)
	Save(ctx context.Context, donations []models.Donation) error
}
