// Package metrics defines and registers all custom Prometheus metrics for
// the institute API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register themselves with the default registry at init time; the
// router exposes them on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "institute"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "failure", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created.",
	},
)

// AuthRejectionsTotal counts requests rejected at the authentication or
// authorization gates.
// Label:
//   - reason: "no_token", "bad_token", "user_gone", "no_identity", "forbidden"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the auth middleware.",
	},
	[]string{"reason"},
)

// LoginDuration measures successful login latency end-to-end, dominated
// by the bcrypt comparison.
var LoginDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "login_duration_seconds",
		Help:      "Duration of successful logins from request to token issue.",
		Buckets:   prometheus.DefBuckets,
	},
)

// AuditQueueDepth tracks the current number of audit events waiting in
// each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
