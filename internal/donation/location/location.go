// Package location resolves a caller's position for nearby searches.
// Resolution is a one-shot request against an external source, so failures
// surface as unavailable-collaborator errors rather than being cached or
// retried here.
package location

import (
	"context"

	"foodbridge/pkg/geo"
)

// Provider answers a single "where is this caller" request.
type Provider interface {
	RequestCurrentLocation(ctx context.Context, clientIP string) (geo.Coordinates, error)
}
