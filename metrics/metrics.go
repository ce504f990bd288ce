package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MutationsTotal counts committed store mutations.
	MutationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shoplist_store_mutations_total",
		Help: "Number of committed snapshot store mutations.",
	})

	// SnapshotSavesTotal counts successful snapshot writes.
	SnapshotSavesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shoplist_snapshot_saves_total",
		Help: "Number of successful snapshot persistence cycles.",
	})

	// SnapshotSaveFailuresTotal counts failed snapshot writes. Failures are
	// retried on the next cycle, so this counter growing without
	// SnapshotSavesTotal moving means storage is unavailable.
	SnapshotSaveFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shoplist_snapshot_save_failures_total",
		Help: "Number of failed snapshot persistence cycles.",
	})

	// BroadcastsTotal counts events published to channels, by event name.
	BroadcastsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shoplist_broadcast_events_total",
		Help: "Number of events published to list and user channels.",
	}, []string{"event"})

	// ActiveConnections tracks live realtime connections.
	ActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "shoplist_active_connections",
		Help: "Number of live realtime connections.",
	})
)
