// Package metrics exposes Prometheus instrumentation for the mutation
// and broadcast paths.
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Mutations counts committed mutations by entity kind and action
	// (created, updated, deleted). Failed mutations are not counted.
	Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prayertrack_mutations_total",
		Help: "Committed document mutations by entity kind and action.",
	}, []string{"kind", "action"})

	// BroadcastDeliveries counts change-event payloads handed to
	// subscribers.
	BroadcastDeliveries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prayertrack_broadcast_deliveries_total",
		Help: "Change-event deliveries enqueued to live subscribers.",
	})

	// LiveSubscribers tracks the current subscriber count.
	LiveSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "prayertrack_live_subscribers",
		Help: "Currently connected live-update subscribers.",
	})
)

// Handler serves the Prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
