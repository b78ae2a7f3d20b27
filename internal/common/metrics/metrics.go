// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CatalogMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_mutations_total",
			Help: "Total number of catalog tree mutations applied locally",
		},
		[]string{"op"},
	)

	CatalogPersistFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_persist_failures_total",
			Help: "Total number of failed remote persists",
		},
	)

	CatalogRemotePushes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_remote_pushes_total",
			Help: "Total number of remote push updates applied",
		},
	)

	CatalogSyncs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_syncs_total",
			Help: "Total number of manual sync attempts",
		},
		[]string{"result"},
	)

	InteractionEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interaction_events_total",
			Help: "Total number of interaction store mutations",
		},
		[]string{"kind"},
	)

	NotificationsPushed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_pushed_total",
			Help: "Total number of notifications enqueued per kind",
		},
		[]string{"kind"},
	)
)
