// Package metrics defines the custom Prometheus metrics of the content API.
// HTTP request metrics come from echoprometheus; everything here is domain level.
//
// All collectors register with the default registry on package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "content"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts login and registration attempts.
// Labels:
//   - kind: "customer" or "admin"
//   - action: "login", "register", "reset"
//   - result: "ok" or a short failure reason (e.g. "not_found", "bad_password", "conflict")
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts by user kind, action and result.",
	},
	[]string{"kind", "action", "result"},
)

// ── Blog metrics ──────────────────────────────────────────────────────────────

// BlogInteractionsTotal counts reader interactions with posts.
// Label:
//   - action: "comment", "like", "unlike"
var BlogInteractionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blog_interactions_total",
		Help:      "Total number of comments and like toggles.",
	},
	[]string{"action"},
)

// ── Mail metrics ──────────────────────────────────────────────────────────────

// MailJobsTotal counts outbound mail jobs.
// Label:
//   - result: "sent", "failed", or "dropped" (queue full)
var MailJobsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_jobs_total",
		Help:      "Total number of mail jobs by outcome.",
	},
	[]string{"result"},
)

// MailQueueDepth tracks jobs waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index
var MailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of mail jobs pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Sweep metrics ─────────────────────────────────────────────────────────────

// SubscriptionsExpiredTotal counts subscriptions flipped to expired by the sweep.
var SubscriptionsExpiredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "subscriptions_expired_total",
		Help:      "Total number of subscriptions marked expired by the daily sweep.",
	},
)

// SweepRunsTotal counts sweep executions.
// Label:
//   - result: "ok", "skipped" (lease held elsewhere), or "error"
var SweepRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sweep_runs_total",
		Help:      "Total number of subscription sweep runs by result.",
	},
	[]string{"result"},
)

// SweepDuration measures one sweep from lease acquisition to completion.
var SweepDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sweep_duration_seconds",
		Help:      "Duration of a subscription sweep run.",
		Buckets:   prometheus.DefBuckets,
	},
)
