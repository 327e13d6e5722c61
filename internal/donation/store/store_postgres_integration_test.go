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

func TestPostgresStoreRoundTrip(t *testing.T) {
	pc := containers.NewPostgresContainer(t)
	defer pc.Terminate(t)

	ctx := context.Background()
	st, err := NewPostgres(ctx, pc.DB)
	require.NoError(t, err)

	t.Run("load empty returns empty slice", func(t *testing.T) {
		got, err := st.Load(ctx)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("save then load round-trips", func(t *testing.T) {
		claimant := models.Claimant{ID: domain.NewUserID(), Name: "Bob Recipient"}
		in := []models.Donation{
			{
				ID:        3,
				Title:     "Cooking oil",
				Quantity:  4,
				Lat:       -1.3,
				Lon:       36.9,
				DonorID:   domain.NewUserID(),
				DonorName: "Alice Donor",
				CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
				Claimed:   true,
				ClaimedBy: &claimant,
			},
		}
		require.NoError(t, st.Save(ctx, in))

		got, err := st.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, in, got)
	})

	t.Run("save is an upsert", func(t *testing.T) {
		require.NoError(t, st.Save(ctx, nil))
		require.NoError(t, st.Save(ctx, nil))

		got, err := st.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
