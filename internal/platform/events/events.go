// Package events records donation lifecycle events and fans them out to
// sinks. Publishing is asynchronous and best-effort: a slow or failing sink
// never blocks or fails an engine operation.
package events

import (
	"context"
	"log/slog"
	"time"

	"foodbridge/pkg/domain"
)

// Type names a lifecycle event.
type Type string

const (
	TypeDonationCreated  Type = "donation_created"
	TypeDonationClaimed  Type = "donation_claimed"
	TypeDonationsCleared Type = "donations_cleared"
	TypeSnapshotImported Type = "snapshot_imported"
)

// Event is emitted from the engine to capture key actions. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	Type       Type              `json:"type"`
	Timestamp  time.Time         `json:"timestamp"`
	ActorID    domain.UserID     `json:"actor_id,omitempty"`
	DonationID domain.DonationID `json:"donation_id,omitempty"`
	RequestID  string            `json:"request_id,omitempty"`
	// Count carries the record count for bulk events (import, clear).
	Count int `json:"count,omitempty"`
}

// Sink receives events one at a time, in publish order.
type Sink interface {
	Deliver(ctx context.Context, event Event) error
}

// Publisher buffers events on a channel and drains them to sinks from a
// single background worker.
type Publisher struct {
	inbox  chan Event
	sinks  []Sink
	logger *slog.Logger
}

// NewPublisher creates a publisher with the given sinks. Events are dropped
// with a warning if the buffer fills; the engine never blocks on sinks.
func NewPublisher(logger *slog.Logger, sinks ...Sink) *Publisher {
	return &Publisher{
		inbox:  make(chan Event, 256),
		sinks:  sinks,
		logger: logger,
	}
}

// Emit enqueues an event. Safe to call on a nil publisher so the engine can
// run without an event trail.
func (p *Publisher) Emit(event Event) {
	if p == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case p.inbox <- event:
	default:
		p.logger.Warn("event dropped, inbox full", "type", event.Type)
	}
}

// Run drains the inbox until ctx is cancelled, then returns nil so a
// shutdown does not surface as an error. Sink errors are logged, not
// propagated; delivery is best-effort.
func (p *Publisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-p.inbox:
			for _, sink := range p.sinks {
				if err := sink.Deliver(ctx, event); err != nil {
					p.logger.Error("event delivery failed",
						"type", event.Type,
						"error", err,
					)
				}
			}
		}
	}
}
