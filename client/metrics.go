package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "casefiles_client",
		Name:      "requests_total",
		Help:      "SDK calls by operation and result (ok, http_error, transport_error).",
	},
	[]string{"op", "result"},
)
