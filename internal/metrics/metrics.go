package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts what the update endpoint actually does.
type Metrics struct {
	CheckRequests     *prometheus.CounterVec
	UpdatesServed     *prometheus.CounterVec
	ReleasesPublished prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		CheckRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "updatekit_check_requests_total",
			Help: "Update check requests received, by platform.",
		}, []string{"platform"}),
		UpdatesServed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "updatekit_updates_served_total",
			Help: "Checks answered with an update payload, by platform.",
		}, []string{"platform"}),
		ReleasesPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "updatekit_releases_published_total",
			Help: "Release manifests accepted from publishers.",
		}),
	}
}
