// Package metrics defines the custom Prometheus metrics of the storefront API.
// Every metric is registered with the default registry on package init through
// promauto; HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Catalog ───────────────────────────────────────────────────────────────────

// CatalogQueriesTotal counts served catalog reads.
// Labels:
//   - view: get_one, search, best_seller, new_arrival, filter
//   - result: ok, empty, error
var CatalogQueriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_queries_total",
		Help:      "Total number of catalog reads, by view and result.",
	},
	[]string{"view", "result"},
)

// CatalogCacheTotal counts lookups against the top-N cache.
// Label:
//   - result: hit, miss, error
var CatalogCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_cache_total",
		Help:      "Total number of catalog cache lookups, labelled by result.",
	},
	[]string{"result"},
)

// ProductsStoredTotal counts products created through the store endpoint.
var ProductsStoredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_stored_total",
		Help:      "Total number of products stored.",
	},
)

// ── Accounts and access ───────────────────────────────────────────────────────

// AccessDeniedTotal counts requests rejected by the role guard.
// Label:
//   - reason: unauthenticated or forbidden
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests denied by the role guard.",
	},
	[]string{"reason"},
)

// AccountsCreatedTotal counts successful sign-ups.
var AccountsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_created_total",
		Help:      "Total number of accounts created.",
	},
)

// ResetCodeTransitionsTotal counts password reset state changes.
// Label:
//   - state: issued, validated, consumed
var ResetCodeTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reset_code_transitions_total",
		Help:      "Total number of password reset code transitions, by target state.",
	},
	[]string{"state"},
)

// ── Audit dispatcher ──────────────────────────────────────────────────────────

// AuditQueueDepth tracks events waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsTotal counts audit events by outcome.
// Label:
//   - result: written, failed, dropped
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit events, by outcome.",
	},
	[]string{"result"},
)

// AuditWriteDuration measures one audit insert.
var AuditWriteDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_write_duration_seconds",
		Help:      "Duration of a single audit event write.",
		Buckets:   prometheus.DefBuckets,
	},
)
