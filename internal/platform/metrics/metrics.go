// Package metrics holds all Prometheus metrics for the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the application counters and histograms. A nil *Metrics is
// safe to call so tests can skip registration.
type Metrics struct {
	DonationsCreated     prometheus.Counter
	DonationsClaimed     prometheus.Counter
	SnapshotSaveFailures prometheus.Counter
	NearbySearchDuration prometheus.Histogram
	UsersRegistered      prometheus.Counter
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		DonationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "foodbridge_donations_created_total",
			Help: "Total number of donations created",
		}),
		DonationsClaimed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "foodbridge_donations_claimed_total",
			Help: "Total number of donations claimed",
		}),
		SnapshotSaveFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "foodbridge_snapshot_save_failures_total",
			Help: "Total number of failed snapshot writes to the blob store",
		}),
		NearbySearchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "foodbridge_nearby_search_duration_ms",
			Help:    "Latency of nearby donation searches in milliseconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
		}),
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "foodbridge_users_registered_total",
			Help: "Total number of registered users",
		}),
	}
}

// IncDonationsCreated increments the created counter by 1.
func (m *Metrics) IncDonationsCreated() {
	if m != nil {
		m.DonationsCreated.Inc()
	}
}

// IncDonationsClaimed increments the claimed counter by 1.
func (m *Metrics) IncDonationsClaimed() {
	if m != nil {
		m.DonationsClaimed.Inc()
	}
}

// IncSnapshotSaveFailures increments the snapshot failure counter by 1.
func (m *Metrics) IncSnapshotSaveFailures() {
	if m != nil {
		m.SnapshotSaveFailures.Inc()
	}
}

// ObserveNearbySearch records one search duration.
func (m *Metrics) ObserveNearbySearch(d time.Duration) {
	if m != nil {
		m.NearbySearchDuration.Observe(float64(d.Microseconds()) / 1000.0)
	}
}

// IncUsersRegistered increments the registration counter by 1.
func (m *Metrics) IncUsersRegistered() {
	if m != nil {
		m.UsersRegistered.Inc()
	}
}
