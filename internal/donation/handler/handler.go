// Package handler exposes the donation engine over HTTP.
package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service,LocationProvider

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"foodbridge/internal/donation/models"
	"foodbridge/internal/platform/middleware"
	"foodbridge/pkg/domain"
	dErrors "foodbridge/pkg/domain-errors"
	"foodbridge/pkg/geo"
	"foodbridge/pkg/platform/httputil"
	"foodbridge/pkg/requestcontext"
)

// DefaultRadiusKm applies when a nearby search does not name a radius.
const DefaultRadiusKm = 10.0

// Service defines the engine operations the handler depends on.
type Service interface {
	Create(ctx context.Context, req models.CreateDonationRequest, actor domain.Actor) (*models.Donation, error)
	Claim(ctx context.Context, id domain.DonationID, actor domain.Actor) (*models.Donation, error)
	FindNearby(ctx context.Context, origin geo.Coordinates, radiusKm float64) []models.NearbyResult
	ClearAll(ctx context.Context) error
	ExportSnapshot(ctx context.Context) (*models.Snapshot, error)
	ImportSnapshot(ctx context.Context, snap *models.Snapshot) error
}

// LocationProvider resolves the caller's position when the request does not
// carry coordinates.
type LocationProvider interface {
	RequestCurrentLocation(ctx context.Context, clientIP string) (geo.Coordinates, error)
}

// Handler handles donation endpoints.
type Handler struct {
	service   Service
	locations LocationProvider
	logger    *slog.Logger
	validator middleware.TokenValidator
}

// New creates a donation Handler. locations may be nil when no source is
// configured; nearby searches then require explicit coordinates or fall
// through to browse mode.
func New(service Service, locations LocationProvider, validator middleware.TokenValidator, logger *slog.Logger) *Handler {
	return &Handler{
		service:   service,
		locations: locations,
		logger:    logger,
		validator: validator,
	}
}

// Register registers the donation routes. All of them require a valid token.
func (h *Handler) Register(r chi.Router) {
	dr := chi.NewRouter()
	dr.Use(middleware.RequireAuth(h.validator, h.logger))
	dr.Post("/donations", h.handleCreate)
	dr.Get("/donations", h.handleBrowse)
	dr.Get("/donations/nearby", h.handleFindNearby)
	dr.Get("/location", h.handleLocation)
	dr.Post("/donations/{id}/claim", h.handleClaim)
	dr.Delete("/donations", h.handleClearAll)
	dr.Get("/donations/export", h.handleExport)
	dr.Post("/donations/import", h.handleImport)

	r.Mount("/", dr)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateDonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	donation, err := h.service.Create(ctx, req, requestcontext.Actor(ctx))
	if err != nil {
		h.logger.WarnContext(ctx, "create donation failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, donation)
}

// handleBrowse lists every available donation in insertion order, without
// distances. It is the explicit form of the fallback a nearby search takes
// when no origin can be resolved.
func (h *Handler) handleBrowse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	browse := geo.Coordinates{Lat: math.NaN(), Lon: math.NaN()}
	results := h.service.FindNearby(ctx, browse, 0)
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"results": results,
		"count":   len(results),
	})
}

// handleLocation answers with the caller's resolved coordinates, so clients
// can show where a search would be anchored. Resolution failures surface as
// the provider's unavailable error rather than a silent fallback.
func (h *Handler) handleLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.locations == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnavailable, "location source is not configured"))
		return
	}
	origin, err := h.locations.RequestCurrentLocation(ctx, requestcontext.ClientIP(ctx))
	if err != nil {
		h.logger.WarnContext(ctx, "location lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, origin)
}

// handleFindNearby resolves the search origin in order of preference:
// explicit lat/lon query params, then the location provider against the
// client IP, then browse-everything mode.
func (h *Handler) handleFindNearby(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	radiusKm := DefaultRadiusKm
	if raw := r.URL.Query().Get("radius_km"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "radius_km must be a non-negative number"))
			return
		}
		radiusKm = parsed
	}

	origin, err := h.resolveOrigin(ctx, r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	results := h.service.FindNearby(ctx, origin, radiusKm)
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"results": results,
		"count":   len(results),
	})
}

func (h *Handler) resolveOrigin(ctx context.Context, r *http.Request) (geo.Coordinates, error) {
	browse := geo.Coordinates{Lat: math.NaN(), Lon: math.NaN()}

	latRaw := r.URL.Query().Get("lat")
	lonRaw := r.URL.Query().Get("lon")
	if latRaw != "" || lonRaw != "" {
		lat, latErr := strconv.ParseFloat(latRaw, 64)
		lon, lonErr := strconv.ParseFloat(lonRaw, 64)
		if latErr != nil || lonErr != nil {
			return browse, dErrors.New(dErrors.CodeBadRequest, "lat and lon must both be numbers")
		}
		return geo.Coordinates{Lat: lat, Lon: lon}, nil
	}

	if h.locations == nil {
		return browse, nil
	}
	origin, err := h.locations.RequestCurrentLocation(ctx, requestcontext.ClientIP(ctx))
	if err != nil {
		// An unreachable location source degrades to browsing, it does
		// not fail the search.
		h.logger.WarnContext(ctx, "location lookup failed, browsing without origin",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		return browse, nil
	}
	return origin, nil
}

func (h *Handler) handleClaim(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := domain.ParseDonationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid donation id"))
		return
	}

	donation, err := h.service.Claim(ctx, id, requestcontext.Actor(ctx))
	if err != nil {
		h.logger.WarnContext(ctx, "claim failed",
			"request_id", requestcontext.RequestID(ctx),
			"donation_id", id,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, donation)
}

func (h *Handler) handleClearAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.service.ClearAll(ctx); err != nil {
		h.logger.ErrorContext(ctx, "clear donations failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	snap, err := h.service.ExportSnapshot(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, snap)
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var snap models.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeMalformedData, "snapshot payload is not valid json"))
		return
	}

	if err := h.service.ImportSnapshot(ctx, &snap); err != nil {
		h.logger.WarnContext(ctx, "snapshot import failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"imported": len(snap.Donations),
	})
}
