package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/reservoir/internal/access/metrics"
)

func TestInstrumentRoute(t *testing.T) {
	h := metrics.InstrumentRoute("GET /ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, 1, testutil.CollectAndCount(metrics.HTTPRequestDuration, "access_http_request_duration_seconds"))
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(metrics.InvitationValidationsTotal.WithLabelValues("valid"))
	metrics.InvitationValidationsTotal.WithLabelValues("valid").Inc()
	require.Equal(t, before+1, testutil.ToFloat64(metrics.InvitationValidationsTotal.WithLabelValues("valid")))
}
