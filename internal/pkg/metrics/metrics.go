// Package metrics defines and registers all custom Prometheus metrics for the
// package tracker service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on import via
// promauto and exposed by the router on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tracker"

// ── Tracking fetch metrics ────────────────────────────────────────────────────

// TrackingFetchTotal counts remote tracking fetches.
// Label:
//   - result: "ok", "not_found" or "error"
var TrackingFetchTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tracking_fetch_total",
		Help:      "Total number of remote tracking document fetches, by result.",
	},
	[]string{"result"},
)

// TrackingFetchDuration measures how long a remote fetch takes.
var TrackingFetchDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "tracking_fetch_duration_seconds",
		Help:      "Duration of remote tracking document fetches.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Notification engine metrics ───────────────────────────────────────────────

// StatusSyncTotal counts notification engine evaluations.
// Label:
//   - outcome: "changed", "unchanged", "no_baseline" or "error"
var StatusSyncTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_sync_total",
		Help:      "Total number of status comparisons against the saved baseline, by outcome.",
	},
	[]string{"outcome"},
)

// NotificationsTotal counts notifications handed to the sink.
// Labels:
//   - kind: "status_changed" or "delivered"
//   - result: "sent" or "failed"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notifications emitted, by kind and delivery result.",
	},
	[]string{"kind", "result"},
)

// ── Refresh dispatcher metrics ────────────────────────────────────────────────

// RefreshJobsTotal counts background refresh jobs.
// Label:
//   - result: "ok" or "error"
var RefreshJobsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refresh_jobs_total",
		Help:      "Total number of background refresh jobs processed, by result.",
	},
	[]string{"result"},
)

// RefreshQueueDepth tracks the number of jobs waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var RefreshQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "refresh_queue_depth",
		Help:      "Current number of refresh jobs pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Saved package metrics ─────────────────────────────────────────────────────

// SavedPackagesChangesTotal counts mutations of the saved package table.
// Label:
//   - op: "insert", "delete", "update_status" or "update_name"
var SavedPackagesChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "saved_packages_changes_total",
		Help:      "Total number of saved package mutations, by operation.",
	},
	[]string{"op"},
)
