package location

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "foodbridge/pkg/domain-errors"
	"foodbridge/pkg/geo"
)

func TestStaticProviderReturnsConfiguredCoordinates(t *testing.T) {
	want := geo.Coordinates{Lat: -1.286389, Lon: 36.817223}
	p := NewStaticProvider(want)

	got, err := p.RequestCurrentLocation(context.Background(), "203.0.113.9")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGeoIPProviderEmptyPathIsNil(t *testing.T) {
	p, err := NewGeoIPProvider("")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestGeoIPProviderMissingDatabase(t *testing.T) {
	_, err := NewGeoIPProvider("/nonexistent/GeoLite2-City.mmdb")
	assert.Error(t, err)
}

func TestNilGeoIPProviderIsUnavailable(t *testing.T) {
	var p *GeoIPProvider

	_, err := p.RequestCurrentLocation(context.Background(), "203.0.113.9")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
}
