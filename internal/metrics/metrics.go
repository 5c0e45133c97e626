package metrics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	// Conversions counts conversion calls by operation.
	Conversions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emotions_conversions_total",
			Help: "Total number of emoji conversions performed.",
		},
		[]string{"op"}, // unicode, aliases, strip, render, known
	)

	// HTTPRequests counts API requests by route pattern and status code.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emotions_http_requests_total",
			Help: "Total number of HTTP API requests.",
		},
		[]string{"route", "status"},
	)

	// RateLimited counts requests rejected by the API rate limiter.
	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "emotions_http_rate_limited_total",
			Help: "Total number of HTTP API requests rejected by the rate limiter.",
		},
	)
)

// Handler serves the Prometheus registry under /metrics.
func Handler() http.Handler {
	mux := chi.NewRouter()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// StartServer starts the Prometheus metrics HTTP server.
func StartServer(addr string) {
	if addr == "" {
		log.Info().Msg("Metrics server address not configured, Prometheus endpoint will not be available.")
		return
	}

	log.Info().Str("address", addr).Msg("Starting Prometheus metrics server")
	go func() {
		if err := http.ListenAndServe(addr, Handler()); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("Prometheus metrics server failed")
		}
	}()
}
