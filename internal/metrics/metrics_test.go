package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/yanizio/curriculum-ai/internal/version"
)

func TestMetricsRegistered(t *testing.T) {
	for _, c := range []prometheus.Collector{
		HTTPRequestsTotal,
		HTTPRequestDuration,
		ReadinessCheckFailuresTotal,
		SecretCacheHitsTotal,
		BuildInfo,
	} {
		err := prometheus.Register(c)
		var are prometheus.AlreadyRegisteredError
		assert.ErrorAs(t, err, &are, "collector should already be registered by init()")
	}
}

func TestBuildInfo(t *testing.T) {
	g := BuildInfo.WithLabelValues(version.Version, version.Commit)
	assert.Equal(t, 1.0, testutil.ToFloat64(g))
}

func TestReadinessFailureCounter(t *testing.T) {
	c := ReadinessCheckFailuresTotal.WithLabelValues("metrics-test")
	before := testutil.ToFloat64(c)
	c.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(c))
}
