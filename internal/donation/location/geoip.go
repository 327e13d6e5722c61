package location

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"

	dErrors "foodbridge/pkg/domain-errors"
	"foodbridge/pkg/geo"
)

// GeoIPProvider resolves coordinates from the caller's IP using a MaxMind
// GeoIP2 City database.
type GeoIPProvider struct {
	reader *geoip2.Reader
}

// NewGeoIPProvider opens the database at the given path. An empty path
// returns (nil, nil) so callers can fall through to a static provider.
func NewGeoIPProvider(path string) (*GeoIPProvider, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geoip: open database: %w", err)
	}
	return &GeoIPProvider{reader: reader}, nil
}

func (p *GeoIPProvider) RequestCurrentLocation(_ context.Context, clientIP string) (geo.Coordinates, error) {
	if p == nil || p.reader == nil {
		return geo.Coordinates{}, dErrors.New(dErrors.CodeUnavailable, "location source is not configured")
	}
	parsed := net.ParseIP(clientIP)
	if parsed == nil {
		return geo.Coordinates{}, dErrors.New(dErrors.CodeUnavailable, "client address is not a resolvable ip")
	}
	record, err := p.reader.City(parsed)
	if err != nil {
		return geo.Coordinates{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "location lookup failed")
	}
	loc := geo.Coordinates{Lat: record.Location.Latitude, Lon: record.Location.Longitude}
	if !loc.IsFinite() || (loc.Lat == 0 && loc.Lon == 0) {
		// MaxMind returns zero coordinates for addresses it cannot place.
		return geo.Coordinates{}, dErrors.New(dErrors.CodeUnavailable, "no location known for client address")
	}
	return loc, nil
}

// Close closes the underlying database reader.
func (p *GeoIPProvider) Close() error {
	if p == nil || p.reader == nil {
		return nil
	}
	return p.reader.Close()
}
