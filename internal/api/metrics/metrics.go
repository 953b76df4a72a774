// Package metrics defines and registers all custom Prometheus metrics for the
// storefront. It is the single source of truth for metric names, labels, and
// help strings. Metrics register themselves with the default registry at
// package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// DispatchesTotal counts front-controller dispatches by validated route.
// Only allow-listed route names appear as label values; unrecognised input
// is counted under the fallback route it resolves to.
var DispatchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dispatches_total",
		Help:      "Total number of front-controller dispatches, by resolved route.",
	},
	[]string{"route"},
)

// RouteFallbacksTotal counts requests whose route parameter failed the
// allow-list and was replaced by the default route.
var RouteFallbacksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "route_fallbacks_total",
		Help:      "Total number of invalid route values silently replaced by the default route.",
	},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "failure", or "invalid" (field validation failed)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts by outcome.
// Label:
//   - result: "success", "failure", or "invalid" (field validation failed)
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by outcome.",
	},
	[]string{"result"},
)

// CartOperationsTotal counts cart mutations by operation.
// Label:
//   - op: "add", "remove", or "update"
var CartOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_operations_total",
		Help:      "Total number of cart mutations, by operation.",
	},
	[]string{"op"},
)

// SessionRotationsTotal counts session identifier rotations.
var SessionRotationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_rotations_total",
		Help:      "Total number of session identifier rotations.",
	},
)
