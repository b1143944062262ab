// Package metrics defines the custom Prometheus metrics for the account and
// auth API. It is the single source of truth for metric names, labels, and
// help strings; promauto registers everything with the default registry at
// package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sep"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts signed tokens handed out.
// Label:
//   - type: "access" or "refresh"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of tokens issued, by token type.",
	},
	[]string{"type"},
)

// PolicyViolationsTotal counts rejected credential mutations.
// Label:
//   - policy: "password" or "email"
var PolicyViolationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "policy_violations_total",
		Help:      "Total number of credential policy violations, by policy kind.",
	},
	[]string{"policy"},
)

// ClientUpdatesTotal counts successful account mutations.
// Label:
//   - field: "email", "password", "credentials", "role" or "score"
var ClientUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "client_updates_total",
		Help:      "Total number of successful client account mutations, by field.",
	},
	[]string{"field"},
)
