// Package metrics holds the service's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RecordsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "casefiles",
			Name:      "records_created_total",
			Help:      "Case files appended to the store, by status.",
		},
		[]string{"status"},
	)

	PersistenceFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "casefiles",
			Name:      "persistence_failures_total",
			Help:      "Durable writes of the record collection that failed.",
		},
		[]string{"op"},
	)

	SummariesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "casefiles",
			Name:      "summaries_total",
			Help:      "Summaries produced, by outcome (ok, empty, error).",
		},
		[]string{"outcome"},
	)

	SummariesInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "casefiles",
			Name:      "summaries_in_flight",
			Help:      "Summarization tasks currently running.",
		},
	)

	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "casefiles",
			Name:      "login_attempts_total",
			Help:      "Session gate login attempts, by result.",
		},
		[]string{"result"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "casefiles",
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route template, method and status code.",
		},
		[]string{"route", "method", "code"},
	)
)

// Handler exposes the default registry.
func Handler() http.Handler { return promhttp.Handler() }
