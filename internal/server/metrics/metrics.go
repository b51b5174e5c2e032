// Package metrics exposes Prometheus instruments for the auth endpoints.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Operation label values.
const (
	OpSignup   = "signup"
	OpLogin    = "login"
	OpLogout   = "logout"
	OpMe       = "me"
	OpIdentity = "identity"
	OpHash     = "hash"
	OpVerify   = "verify"
	OpThrottle = "throttle"
)

// Outcome label values, one per terminal state.
const (
	OutcomeCreated            = "created"
	OutcomeAuthenticated      = "authenticated"
	OutcomeLoggedOut          = "logged_out"
	OutcomeConfirmed          = "confirmed"
	OutcomeValidationRejected = "validation_rejected"
	OutcomeDuplicateRejected  = "duplicate_rejected"
	OutcomeMalformedRejected  = "malformed_rejected"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeUnauthorized       = "unauthorized"
	OutcomeRateLimited        = "rate_limited"
	OutcomeServerError        = "server_error"
)

// Metrics groups the collectors registered on one registry.
type Metrics struct {
	Registry     *prometheus.Registry
	AuthRequests *prometheus.CounterVec
	HashDuration *prometheus.HistogramVec
}

// New builds a private registry carrying the auth collectors plus the Go and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		AuthRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quizauth_auth_requests_total",
				Help: "Auth requests by operation and terminal outcome",
			},
			[]string{"operation", "outcome"},
		),
		HashDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quizauth_password_hash_seconds",
				Help:    "Time spent in bcrypt hash and verify",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation"},
		),
	}

	reg.MustRegister(
		m.AuthRequests,
		m.HashDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RecordOutcome is nil-safe so callers without metrics can skip the check.
func (m *Metrics) RecordOutcome(operation, outcome string) {
	if m == nil {
		return
	}
	m.AuthRequests.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) ObserveHash(operation string, d time.Duration) {
	if m == nil {
		return
	}
	m.HashDuration.WithLabelValues(operation).Observe(d.Seconds())
}
