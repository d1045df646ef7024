// Package metrics holds Prometheus instruments used across the service.
// All collectors are registered with the global registry, so importing this
// package is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yanizio/curriculum-ai/internal/version"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Cumulative number of HTTP requests by route, method, and status.",
		}, []string{"route", "method", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"})

	ReadinessCheckFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readiness_check_failures_total",
			Help: "Cumulative number of failed readiness checks by check name.",
		}, []string{"check"})

	SecretCacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vault_secret_cache_hits_total",
			Help: "Cumulative number of Vault secret reads served from cache.",
		})

	BuildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ai_service_build_info",
			Help: "Always 1; labels carry the running version and commit.",
		}, []string{"version", "commit"})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		ReadinessCheckFailuresTotal,
		SecretCacheHitsTotal,
		BuildInfo,
	)
	BuildInfo.WithLabelValues(version.Version, version.Commit).Set(1)
}
