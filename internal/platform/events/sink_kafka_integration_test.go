//go:build integration

package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"foodbridge/pkg/domain"
	"foodbridge/pkg/testutil/containers"
)

func TestKafkaSinkProducesEvents(t *testing.T) {
	rp := containers.NewRedpandaContainer(t)
	defer rp.Terminate(t)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	const topic = "foodbridge.donation-events.test"
	sink, err := NewKafkaSink(ctx, []string{rp.Broker}, topic)
	require.NoError(t, err)
	defer sink.Close()

	actor := domain.NewUserID()
	require.NoError(t, sink.Deliver(ctx, Event{
		Type:       TypeDonationClaimed,
		Timestamp:  time.Now(),
		ActorID:    actor,
		DonationID: 42,
	}))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(rp.Broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	require.NoError(t, fetches.Err())

	records := fetches.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "42", string(records[0].Key))

	var got Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	assert.Equal(t, TypeDonationClaimed, got.Type)
	assert.Equal(t, domain.DonationID(42), got.DonationID)
	assert.Equal(t, actor, got.ActorID)
}
