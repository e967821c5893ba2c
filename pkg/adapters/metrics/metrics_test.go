package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveOperation(t *testing.T) {
	m := New()

	m.ObserveOperation("add", nil)
	m.ObserveOperation("add", nil)
	m.ObserveOperation("delete", errors.New("locked"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("add", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("delete", "error")))
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.ObserveRequest("GET", "GET /links", 200)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `weblinks_http_requests_total{code="200",method="GET",route="GET /links"} 1`)
}
