// Package metrics holds the service's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Invitation metrics
var (
	// InvitationValidationsTotal counts validator outcomes: valid, not_found,
	// accepted, expired, revoked, error.
	InvitationValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "access_invitation_validations_total",
			Help: "Invitation token validations by outcome",
		},
		[]string{"outcome"},
	)

	// InvitationTransitionsTotal counts persisted status changes.
	InvitationTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "access_invitation_transitions_total",
			Help: "Invitation status transitions by target status",
		},
		[]string{"to"},
	)

	// InvitationsCreatedTotal counts new invitations by invited role.
	InvitationsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "access_invitations_created_total",
			Help: "Invitations created by role",
		},
		[]string{"role"},
	)
)

// Authorization metrics
var (
	// AuthorizationDeniedTotal counts guard refusals by permission.
	AuthorizationDeniedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "access_authorization_denied_total",
			Help: "Guarded operations refused by permission",
		},
		[]string{"permission"},
	)

	// KeyRefreshTotal counts JWKS refresh attempts by result.
	KeyRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "access_jwks_refresh_total",
			Help: "JWKS refresh attempts by result",
		},
		[]string{"result"},
	)
)

// HTTP metrics
var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "access_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status code",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "code"},
	)
)

// InstrumentRoute records latency for one route pattern.
func InstrumentRoute(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		HTTPRequestDuration.WithLabelValues(route, strconv.Itoa(sw.status)).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
