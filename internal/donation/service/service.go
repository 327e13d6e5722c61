// Package service implements the donation matching engine.
//
// The engine is an explicit instance owning the donation collection. It is
// constructed against a snapshot store, restored from the last persisted
// snapshot, and applies every mutation with all-or-nothing semantics: the
// new collection is persisted to the blob store first and committed to
// memory only on success, so a failed call never leaves a half-applied
// collection behind.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"foodbridge/internal/donation/models"
	"foodbridge/internal/donation/store"
	"foodbridge/internal/platform/events"
	"foodbridge/internal/platform/metrics"
	"foodbridge/pkg/domain"
	dErrors "foodbridge/pkg/domain-errors"
	"foodbridge/pkg/geo"
	"foodbridge/pkg/requestcontext"
)

// Engine owns the donation collection and applies the matching operations.
type Engine struct {
	mu        sync.RWMutex
	donations []models.Donation // most recent first

	snapshots store.SnapshotStore
	logger    *slog.Logger
	metrics   *metrics.Metrics
	events    *events.Publisher
	tracer    trace.Tracer
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets a logger for operational detail.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithEvents sets the lifecycle event publisher.
func WithEvents(p *events.Publisher) Option {
	return func(e *Engine) {
		e.events = p
	}
}

// New creates an engine bound to a snapshot store. Call Restore before
// serving to load the persisted collection.
func New(snapshots store.SnapshotStore, opts ...Option) (*Engine, error) {
	if snapshots == nil {
		return nil, fmt.Errorf("snapshot store is required")
	}

	e := &Engine{
		snapshots: snapshots,
		logger:    slog.Default(),
		tracer:    otel.Tracer("foodbridge/donation"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Restore loads the persisted snapshot into memory, replacing whatever the
// engine currently holds.
func (e *Engine) Restore(ctx context.Context) error {
	donations, err := e.snapshots.Load(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load donation snapshot")
	}

	e.mu.Lock()
	e.donations = donations
	e.mu.Unlock()

	e.logger.InfoContext(ctx, "donation snapshot restored", "count", len(donations))
	return nil
}

// Create validates the request, assigns the next sequential id, and prepends
// the new donation to the collection. Any authenticated user may donate,
// regardless of role.
func (e *Engine) Create(ctx context.Context, req models.CreateDonationRequest, actor domain.Actor) (*models.Donation, error) {
	ctx, span := e.tracer.Start(ctx, "donation.create")
	defer span.End()

	if !actor.IsAuthenticated() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required to donate")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	var expiresAt *time.Time
	if req.ExpiresInMinutes > 0 {
		t := now.Add(time.Duration(req.ExpiresInMinutes) * time.Minute)
		expiresAt = &t
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	d := models.Donation{
		ID:          e.nextIDLocked(),
		Title:       req.Title,
		Description: req.Description,
		Quantity:    req.NormalizedQuantity(),
		Lat:         *req.Lat,
		Lon:         *req.Lon,
		DonorID:     actor.ID,
		DonorName:   actor.Name,
		CreatedAt:   now,
		ExpiresAt:   expiresAt,
	}

	candidate := make([]models.Donation, 0, len(e.donations)+1)
	candidate = append(candidate, d)
	candidate = append(candidate, e.donations...)

	if err := e.persistLocked(ctx, candidate); err != nil {
		return nil, err
	}
	e.donations = candidate

	e.metrics.IncDonationsCreated()
	e.events.Emit(events.Event{
		Type:       events.TypeDonationCreated,
		ActorID:    actor.ID,
		DonationID: d.ID,
		RequestID:  requestcontext.RequestID(ctx),
	})
	e.logger.InfoContext(ctx, "donation created",
		"donation_id", d.ID,
		"donor_id", actor.ID,
	)

	out := d.Clone()
	return &out, nil
}

// Claim marks a donation as taken by a recipient. The transition is one-way:
// a second claim fails with a conflict regardless of caller. Expiry is not
// re-validated here; see models.Donation.CanClaim.
func (e *Engine) Claim(ctx context.Context, id domain.DonationID, actor domain.Actor) (*models.Donation, error) {
	ctx, span := e.tracer.Start(ctx, "donation.claim")
	defer span.End()

	if !actor.IsAuthenticated() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required to claim")
	}
	if actor.Role != domain.RoleRecipient {
		return nil, dErrors.New(dErrors.CodeForbidden, "only recipients can claim donations")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i := range e.donations {
		if e.donations[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, dErrors.New(dErrors.CodeNotFound, "donation not found")
	}

	updated := e.donations[idx].Clone()
	if err := updated.CanClaim(actor); err != nil {
		return nil, err
	}
	updated.ApplyClaim(actor)

	candidate := make([]models.Donation, len(e.donations))
	copy(candidate, e.donations)
	candidate[idx] = updated

	if err := e.persistLocked(ctx, candidate); err != nil {
		return nil, err
	}
	e.donations = candidate

	e.metrics.IncDonationsClaimed()
	e.events.Emit(events.Event{
		Type:       events.TypeDonationClaimed,
		ActorID:    actor.ID,
		DonationID: id,
		RequestID:  requestcontext.RequestID(ctx),
	})
	e.logger.InfoContext(ctx, "donation claimed",
		"donation_id", id,
		"claimant_id", actor.ID,
	)

	out := updated.Clone()
	return &out, nil
}

// FindNearby returns unclaimed, unexpired donations within radiusKm of the
// origin, sorted by ascending distance with ties kept in insertion order.
// A non-finite origin switches to browse-everything mode: all available
// donations in their existing order, without distances. Pure: no mutation.
func (e *Engine) FindNearby(ctx context.Context, origin geo.Coordinates, radiusKm float64) []models.NearbyResult {
	ctx, span := e.tracer.Start(ctx, "donation.find_nearby")
	defer span.End()

	start := time.Now()
	defer func() { e.metrics.ObserveNearbySearch(time.Since(start)) }()

	now := requestcontext.Now(ctx)

	e.mu.RLock()
	defer e.mu.RUnlock()

	results := make([]models.NearbyResult, 0, len(e.donations))
	browse := !origin.IsFinite()
	for i := range e.donations {
		d := &e.donations[i]
		if !d.IsAvailable(now) {
			continue
		}
		if browse {
			results = append(results, models.NearbyResult{Donation: d.Clone()})
			continue
		}
		dist := geo.HaversineKm(origin, d.Location())
		if dist > radiusKm {
			continue
		}
		distCopy := dist
		results = append(results, models.NearbyResult{
			Donation:          d.Clone(),
			DistanceKm:        &distCopy,
			DistanceKmDisplay: models.DisplayDistance(dist),
		})
	}

	if !browse {
		sort.SliceStable(results, func(i, j int) bool {
			return *results[i].DistanceKm < *results[j].DistanceKm
		})
	}
	return results
}

// ClearAll wipes the whole collection. Irreversible; any confirmation
// belongs to the caller.
func (e *Engine) ClearAll(ctx context.Context) error {
	ctx, span := e.tracer.Start(ctx, "donation.clear_all")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	cleared := len(e.donations)
	if err := e.persistLocked(ctx, []models.Donation{}); err != nil {
		return err
	}
	e.donations = nil

	e.events.Emit(events.Event{
		Type:      events.TypeDonationsCleared,
		ActorID:   requestcontext.Actor(ctx).ID,
		RequestID: requestcontext.RequestID(ctx),
		Count:     cleared,
	})
	e.logger.InfoContext(ctx, "donations cleared", "count", cleared)
	return nil
}

// ExportSnapshot returns a full copy of the collection.
func (e *Engine) ExportSnapshot(ctx context.Context) (*models.Snapshot, error) {
	_, span := e.tracer.Start(ctx, "donation.export_snapshot")
	defer span.End()

	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]models.Donation, len(e.donations))
	for i := range e.donations {
		out[i] = e.donations[i].Clone()
	}
	return &models.Snapshot{Donations: out}, nil
}

// ImportSnapshot replaces the entire collection with the given snapshot.
// All-or-nothing: a structurally invalid payload leaves the collection
// untouched.
func (e *Engine) ImportSnapshot(ctx context.Context, snap *models.Snapshot) error {
	ctx, span := e.tracer.Start(ctx, "donation.import_snapshot")
	defer span.End()

	if snap == nil {
		return dErrors.New(dErrors.CodeMalformedData, "snapshot payload is required")
	}
	if err := snap.Validate(); err != nil {
		return err
	}

	incoming := make([]models.Donation, len(snap.Donations))
	for i := range snap.Donations {
		incoming[i] = snap.Donations[i].Clone()
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.persistLocked(ctx, incoming); err != nil {
		return err
	}
	e.donations = incoming

	e.events.Emit(events.Event{
		Type:      events.TypeSnapshotImported,
		ActorID:   requestcontext.Actor(ctx).ID,
		RequestID: requestcontext.RequestID(ctx),
		Count:     len(incoming),
	})
	e.logger.InfoContext(ctx, "snapshot imported", "count", len(incoming))
	return nil
}

// nextIDLocked returns max existing id + 1, or 1 for an empty collection.
// Scanning instead of tracking a counter keeps correctness across snapshot
// imports, where the max id can move in either direction.
func (e *Engine) nextIDLocked() domain.DonationID {
	var max domain.DonationID
	for i := range e.donations {
		if e.donations[i].ID > max {
			max = e.donations[i].ID
		}
	}
	return max + 1
}

// persistLocked writes the candidate collection to the blob store. Failures
// surface as unavailable-collaborator errors; the caller must not commit.
func (e *Engine) persistLocked(ctx context.Context, candidate []models.Donation) error {
	if err := e.snapshots.Save(ctx, candidate); err != nil {
		e.metrics.IncSnapshotSaveFailures()
		e.logger.ErrorContext(ctx, "snapshot save failed", "error", err)
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to persist donations")
	}
	return nil
}
