package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// TestObserveOperation 测试用例执行结果按success/failure分别计数
func TestObserveOperation(t *testing.T) {
	success := BookOperationsTotal.WithLabelValues("metrics_test", ResultSuccess)
	failure := BookOperationsTotal.WithLabelValues("metrics_test", ResultFailure)
	beforeSuccess := testutil.ToFloat64(success)
	beforeFailure := testutil.ToFloat64(failure)

	ObserveOperation("metrics_test", nil, 0.01)
	ObserveOperation("metrics_test", nil, 0.02)
	ObserveOperation("metrics_test", errors.New("boom"), 0.03)

	assert.Equal(t, beforeSuccess+2, testutil.ToFloat64(success))
	assert.Equal(t, beforeFailure+1, testutil.ToFloat64(failure))
}

// TestCounterVec 测试带标签的Counter
func TestCounterVec(t *testing.T) {
	labels := map[string]string{"method": "GET", "path": "/api/v1/books", "status": "200"}
	before := testutil.ToFloat64(HTTPRequestsTotal.With(labels))

	IncCounterVec(HTTPRequestsTotal, labels)
	IncCounterVec(HTTPRequestsTotal, labels)

	assert.Equal(t, before+2, testutil.ToFloat64(HTTPRequestsTotal.With(labels)))
}

// TestGaugeVec 测试熔断器状态Gauge
func TestGaugeVec(t *testing.T) {
	labels := map[string]string{"name": "metrics_test"}

	SetGaugeVec(CircuitBreakerState, labels, 1)
	assert.Equal(t, float64(1), testutil.ToFloat64(CircuitBreakerState.With(labels)))

	SetGaugeVec(CircuitBreakerState, labels, 0)
	assert.Equal(t, float64(0), testutil.ToFloat64(CircuitBreakerState.With(labels)))
}
