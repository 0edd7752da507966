// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values
const (
	OutcomeOK          = "ok"
	OutcomeClientError = "client_error"
	OutcomeServerError = "server_error"
	OutcomeNoData      = "no_data"
	OutcomeInvalid     = "invalid"
)

var (
	Calculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vaa_calculations_total",
			Help: "Total number of match calculations by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	CalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vaa_calculation_duration_seconds",
			Help:    "Duration of catalog load plus scoring in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	ShareTokens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vaa_share_tokens_total",
			Help: "Share tokens issued or decoded, by outcome",
		},
		[]string{"operation", "outcome"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "status"},
	)
)
