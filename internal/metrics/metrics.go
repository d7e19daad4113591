// Package metrics defines and registers all custom Prometheus metrics for
// the notes service. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// package init via promauto; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "notes"

// ── Rate limiting ─────────────────────────────────────────────────────────────

// RateLimitDecisionsTotal counts admission decisions by outcome.
// Label:
//   - outcome: "admitted", "throttled", or "blocked"
var RateLimitDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratelimit_decisions_total",
		Help:      "Total number of rate-limit admission decisions, by outcome.",
	},
	[]string{"outcome"},
)

// ── Note operations ───────────────────────────────────────────────────────────

// NotesCreatedTotal counts successfully created notes.
var NotesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of notes created.",
	},
)

// NotesSharedTotal counts successful share grants (idempotent replays included).
var NotesSharedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shared_total",
		Help:      "Total number of successful note shares.",
	},
)

// SearchesTotal counts full-text search queries that reached the repository.
var SearchesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of full-text search queries executed.",
	},
)

// ── Activity pipeline ─────────────────────────────────────────────────────────

// ActivityProcessedTotal counts activity events that completed processing.
// Label:
//   - action: the note action recorded ("created", "updated", "deleted", "shared")
var ActivityProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_processed_total",
		Help:      "Total number of activity events successfully persisted.",
	},
	[]string{"action"},
)

// ActivityDedupTotal counts deduplication decisions in the activity pipeline.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new event, processed)
var ActivityDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_dedup_total",
		Help:      "Total number of activity deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ActivityQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
