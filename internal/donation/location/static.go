package location

import (
	"context"

	"foodbridge/pkg/geo"
)

// StaticProvider always answers with a fixed position. It backs deployments
// without a GeoIP database, where every caller is assumed to be near the
// configured default.
type StaticProvider struct {
	coords geo.Coordinates
}

func NewStaticProvider(coords geo.Coordinates) *StaticProvider {
	return &StaticProvider{coords: coords}
}

func (p *StaticProvider) RequestCurrentLocation(_ context.Context, _ string) (geo.Coordinates, error) {
	return p.coords, nil
}
