package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PlatformSyncsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "labsync_platform_syncs_total",
		Help: "Platform sync attempts by platform and outcome.",
	},
		[]string{"platform", "outcome"},
	)

	OrdersSavedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "labsync_orders_saved_total",
		Help: "Orders reported saved by platform syncs.",
	},
		[]string{"platform"},
	)

	NotificationsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "labsync_notifications_sent_total",
		Help: "Notification emails delivered, by kind.",
	},
		[]string{"kind"},
	)

	NotificationsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "labsync_notifications_failed_total",
		Help: "Notification emails that could not be delivered, by kind.",
	},
		[]string{"kind"},
	)

	AutoSyncTicksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "labsync_autosync_ticks_total",
		Help: "Auto-sync cycles by result (completed or skipped).",
	},
		[]string{"result"},
	)

	SnapshotOrders = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "labsync_snapshot_orders",
		Help: "Orders held in the current in-memory snapshot.",
	})
)
