//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodbridge/internal/donation/models"
	"foodbridge/pkg/domain"
	"foodbridge/pkg/testutil/containers"
)

func TestRedisStoreRoundTrip(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	defer rc.Terminate(t)

	ctx := context.Background()
	st := NewRedis(rc.Client)

	t.Run("load empty returns empty slice", func(t *testing.T) {
		got, err := st.Load(ctx)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("save then load round-trips", func(t *testing.T) {
		expiry := time.Now().Add(4 * time.Hour).UTC().Truncate(time.Millisecond)
		in := []models.Donation{
			{
				ID:        1,
				Title:     "Rice 5kg",
				Quantity:  1,
				Lat:       -1.286389,
				Lon:       36.817223,
				DonorID:   domain.NewUserID(),
				DonorName: "Alice Donor",
				CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
				ExpiresAt: &expiry,
			},
		}
		require.NoError(t, st.Save(ctx, in))

		got, err := st.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, in, got)
	})

	t.Run("save replaces the whole snapshot", func(t *testing.T) {
		require.NoError(t, st.Save(ctx, nil))

		got, err := st.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
