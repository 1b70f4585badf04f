// Package metrics defines the Prometheus collectors the server exports.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "empowr_http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "empowr_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{.005, .01, .05, .1, .5, 1, 2, 3, 5},
		},
		[]string{"method", "route"},
	)

	AssessmentsScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "empowr_assessments_scored_total",
			Help: "Total number of assessments scored by risk level",
		},
		[]string{"risk_level"},
	)

	BlendedScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "empowr_blended_score",
			Help:    "Distribution of blended scores produced by assessments",
			Buckets: prometheus.LinearBuckets(300, 50, 12),
		},
	)

	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "empowr_auth_attempts_total",
			Help: "Total number of login and register attempts by outcome",
		},
		[]string{"action", "outcome"},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "empowr_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter, by limit tier",
		},
		[]string{"tier"},
	)
)

// ObserveAssessment records one scored assessment.
func ObserveAssessment(riskLevel string, blended int) {
	AssessmentsScored.WithLabelValues(riskLevel).Inc()
	BlendedScores.Observe(float64(blended))
}
