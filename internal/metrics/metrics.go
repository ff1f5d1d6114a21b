// Package metrics exposes prometheus counters for the ingestion pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequests counts outbound platform API attempts by endpoint and
	// outcome ("success", "http_error", "transport_error").
	APIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "monitor_api_requests_total",
		Help: "Outbound API attempts by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	// KeyRotations counts how often a failed attempt advanced the rotation
	// to the next credential.
	KeyRotations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "monitor_key_rotations_total",
		Help: "Credential rotations after a failed API attempt.",
	})

	// RowsInserted counts video rows created by upsert batches.
	RowsInserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "monitor_rows_inserted_total",
		Help: "Video rows inserted by upsert batches.",
	})

	// RowsUpdated counts video rows refreshed in place.
	RowsUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "monitor_rows_updated_total",
		Help: "Video rows updated by upsert batches.",
	})

	// RowsPurged counts rows removed by retention cleanup.
	RowsPurged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "monitor_rows_purged_total",
		Help: "Video rows removed by retention cleanup.",
	})
)
