package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorCounts(t *testing.T) {
	c := NewCollector("kg")
	c.NodeCreated()
	c.NodeCreated()
	c.NodeDeleted(3)
	c.EdgeCreated()
	c.EdgeDeleted()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.NodesCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.NodesDeleted))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.EdgesCascaded))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.EdgesCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.EdgesDeleted))
}

func TestCollectorsAreIndependent(t *testing.T) {
	a := NewCollector("kg")
	b := NewCollector("kg")
	a.NodeCreated()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.NodesCreated))
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.NodeCreated()
		c.NodeDeleted(1)
		c.EdgeCreated()
		c.EdgeDeleted()
		c.RecordHTTPRequest(http.MethodGet, "/graph", http.StatusOK, time.Millisecond)
	})
	assert.Nil(t, c.Registry())
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := NewCollector("kg")
	c.RecordHTTPRequest(http.MethodGet, "/graph", http.StatusOK, 5*time.Millisecond)

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `kg_http_requests_total{method="GET",route="/graph",status="200"} 1`)
}
