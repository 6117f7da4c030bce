// Package metrics exposes spread gauges over a Prometheus pull endpoint.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"spreadwatch/internal/domain"
)

// Metrics owns the spread gauges and their registry.
type Metrics struct {
	registry *prometheus.Registry
	spread   *prometheus.GaugeVec
	delta    *prometheus.GaugeVec
}

// New creates the price_spread and spread_delta gauge vectors on a
// dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	spread := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "price_spread",
		Help: "Price spread for each symbol",
	}, []string{"symbol"})
	delta := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "spread_delta",
		Help: "Absolute spread delta for each symbol",
	}, []string{"symbol"})
	registry.MustRegister(spread, delta)

	return &Metrics{registry: registry, spread: spread, delta: delta}
}

// Publish overwrites the gauges with the latest observations. Gauges only
// ever hold the last set value.
func (m *Metrics) Publish(observations []domain.SpreadObservation) {
	for _, observation := range observations {
		m.spread.WithLabelValues(observation.Symbol).Set(observation.Value.InexactFloat64())
		m.delta.WithLabelValues(observation.Symbol).Set(observation.Delta.InexactFloat64())
	}
}

// Serve exposes the registry on /metrics (blocking) and shuts the listener
// down when ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "metrics server failed")
	}
	return nil
}
