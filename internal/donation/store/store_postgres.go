package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"foodbridge/internal/donation/models"
)

// PostgresStore persists the snapshot in a key-value blob table. The schema
// stays a plain key-value mapping on purpose: the persisted shape is the
// snapshot blob, not relational donation rows.
type PostgresStore struct {
	db *sql.DB
}

const createSnapshotsTable = `
CREATE TABLE IF NOT EXISTS snapshots (
	key TEXT PRIMARY KEY,
	payload JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// NewPostgres constructs a PostgreSQL-backed snapshot store, creating the
// blob table if needed.
func NewPostgres(ctx context.Context, db *sql.DB) (*PostgresStore, error) {
	if _, err := db.ExecContext(ctx, createSnapshotsTable); err != nil {
		return nil, fmt.Errorf("create snapshots table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Load(ctx context.Context) ([]models.Donation, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM snapshots WHERE key = $1`, snapshotKey,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return []models.Donation{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Donations == nil {
		snap.Donations = []models.Donation{}
	}
	return snap.Donations, nil
}

func (s *PostgresStore) Save(ctx context.Context, donations []models.Donation) error {
	payload, err := json.Marshal(models.Snapshot{Donations: donations})
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
		snapshotKey, payload,
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
