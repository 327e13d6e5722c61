package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"foodbridge/internal/donation/models"
)

// snapshotKey is the single blob under which the collection lives.
const snapshotKey = "foodbridge:donations"

// RedisStore persists the snapshot as one JSON blob in Redis. SET is atomic,
// which gives Save its all-or-nothing property for free.
type RedisStore struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed snapshot store.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Load(ctx context.Context) ([]models.Donation, error) {
	raw, err := s.client.Get(ctx, snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
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

func (s *RedisStore) Save(ctx context.Context, donations []models.Donation) error {
	payload, err := json.Marshal(models.Snapshot{Donations: donations})
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.client.Set(ctx, snapshotKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
