package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, route, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "writeproperly_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	CompletionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "writeproperly_completion_duration_seconds",
		Help:    "Time spent waiting for the completion provider.",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"function"})

	// Outcomes counts dispatched requests by function and outcome
	// (answered, no_answer, error).
	Outcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "writeproperly_outcomes_total",
		Help: "Dispatched requests by function and outcome.",
	}, []string{"function", "outcome"})
)
