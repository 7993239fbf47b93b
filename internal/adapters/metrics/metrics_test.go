package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorCounts(t *testing.T) {
	c := NewCollector()

	c.RecordAuthSuccess("signin")
	c.RecordAuthSuccess("signin")
	c.RecordAuthFailure("signin")
	c.RecordHTTPStatus(403)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.authSuccess.WithLabelValues("signin")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.authFailure.WithLabelValues("signin")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.httpStatus.WithLabelValues("403")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := NewCollector()
	c.RecordAuthSuccess("signup")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "forum_auth_success_total")
}
