package models

import (
	"strconv"
	"strings"

	dErrors "foodbridge/pkg/domain-errors"
	"foodbridge/pkg/geo"
)

// CreateDonationRequest carries the caller-supplied fields for a new
// donation. Lat and Lon are pointers so a missing coordinate is
// distinguishable from zero.
type CreateDonationRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Quantity    int      `json:"quantity"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
	// ExpiresInMinutes > 0 sets an expiry; zero or negative means the
	// donation never expires.
	ExpiresInMinutes int `json:"expires_in_minutes"`
}

// Validate enforces the create constraints: non-empty title, present and
// finite location.
func (r *CreateDonationRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return dErrors.New(dErrors.CodeValidation, "title is required")
	}
	if r.Lat == nil || r.Lon == nil {
		return dErrors.New(dErrors.CodeValidation, "location is required")
	}
	loc := geo.Coordinates{Lat: *r.Lat, Lon: *r.Lon}
	if !loc.IsFinite() {
		return dErrors.New(dErrors.CodeValidation, "location must be finite coordinates")
	}
	return nil
}

// NormalizedQuantity defaults omitted or invalid quantities to 1.
func (r *CreateDonationRequest) NormalizedQuantity() int {
	if r.Quantity < 1 {
		return 1
	}
	return r.Quantity
}

// NearbyResult annotates a donation with its distance from the search
// origin. DistanceKm keeps full precision for filtering and sorting; the
// rounded form exists only for display. In browse-everything mode (non-finite
// origin) DistanceKm is absent.
type NearbyResult struct {
	Donation
	DistanceKm        *float64 `json:"distance_km,omitempty"`
	DistanceKmDisplay string   `json:"distance_km_display,omitempty"`
}

// DisplayDistance formats a raw distance to 2 decimal places.
func DisplayDistance(km float64) string {
	return strconv.FormatFloat(km, 'f', 2, 64)
}

// Snapshot is a full serialized copy of the donation collection, the unit of
// export/import and of blob persistence.
type Snapshot struct {
	Donations []Donation `json:"donations"`
}

// Validate checks that the snapshot is a structurally valid collection:
// donations field present, every record valid, ids unique. A nil slice means
// the field was absent from the payload; an empty collection must say so
// explicitly, otherwise a stray {} import would wipe the collection.
func (s *Snapshot) Validate() error {
	if s.Donations == nil {
		return dErrors.New(dErrors.CodeMalformedData, "donations field is required")
	}
	seen := make(map[int64]struct{}, len(s.Donations))
	for i := range s.Donations {
		if err := s.Donations[i].Validate(); err != nil {
			return err
		}
		id := int64(s.Donations[i].ID)
		if _, dup := seen[id]; dup {
			return dErrors.New(dErrors.CodeMalformedData, "duplicate donation id "+strconv.FormatInt(id, 10))
		}
		seen[id] = struct{}{}
	}
	return nil
}
