// Package metrics exposes Prometheus instruments for backend calls, editing and
// playback.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BackendRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "graphstudio_backend_requests_total",
		Help: "Total number of backend requests, labelled by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	BackendDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "graphstudio_backend_request_duration_ms",
		Help:    "Backend round trip latency in milliseconds.",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"endpoint"})

	EditorClicks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "graphstudio_editor_clicks_total",
		Help: "Canvas clicks handled, labelled by mode and outcome.",
	}, []string{"mode", "outcome"})

	PlaybackSteps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "graphstudio_playback_steps_total",
		Help: "Animation steps applied, labelled by step type.",
	}, []string{"type"})

	PlaybacksStale = promauto.NewCounter(prometheus.CounterOpts{
		Name: "graphstudio_playbacks_stale_total",
		Help: "Runs whose response or playback was superseded by a newer operation.",
	})

	StreamClients = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "graphstudio_stream_clients",
		Help: "Connected renderer clients, labelled by transport.",
	}, []string{"transport"})
)
