package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadscout_fetch_total",
			Help: "Total number of search fetches by outcome",
		},
		[]string{"outcome"},
	)

	FetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "leadscout_fetch_duration_seconds",
			Help:    "Duration of search fetches in seconds, browser launch included",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
	)

	FetchLeads = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "leadscout_fetch_leads",
			Help:    "Number of valid leads extracted per successful fetch",
			Buckets: []float64{0, 1, 2, 5, 10},
		},
	)

	LeadsCollected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadscout_leads_collected_total",
			Help: "Total number of leads appended to a client's collection",
		},
		[]string{"client"},
	)

	DuplicatesRemoved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadscout_duplicates_removed_total",
			Help: "Total number of duplicate leads dropped from exports",
		},
		[]string{"client"},
	)

	ReportFiles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadscout_report_files_total",
			Help: "Total number of report files written by kind",
		},
		[]string{"kind"},
	)
)

// RecordFetch updates the fetch metrics. outcome is "ok" for a successful
// fetch, otherwise the failure kind.
func RecordFetch(outcome string, d time.Duration, leads int) {
	FetchTotal.WithLabelValues(outcome).Inc()
	FetchDuration.Observe(d.Seconds())
	if outcome == "ok" {
		FetchLeads.Observe(float64(leads))
	}
}

// WriteTextfile dumps the default registry in the text exposition format, for
// pickup by a node_exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// Server encapsulates an HTTP server for Prometheus metrics.
type Server struct {
	srv *http.Server
}

// Start begins listening on the specified port and exposes /metrics.
func Start(port int) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		// Suppress the error from intentional shutdown
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server failed", "port", port, "error", err)
		}
	}()

	return &Server{srv: srv}
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) error {
	if s == nil || s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
