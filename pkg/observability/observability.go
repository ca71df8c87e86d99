// Package observability builds the logger, tracer and metrics registry shared by every module.
package observability

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Black-And-White-Club/ladder-bot/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// ServiceName tags logs and traces.
const ServiceName = "ladder-bot"

// Config selects the log destination and level.
type Config struct {
	Environment string
	Level       slog.Level
	Output      io.Writer
}

// Observability is handed to every module constructor.
type Observability struct {
	Logger     *slog.Logger
	Tracer     trace.Tracer
	Registry   *prometheus.Registry
	Collectors *metrics.Collectors
}

// New creates a JSON logger, a tracer from the global otel provider and a fresh Prometheus registry.
func New(cfg Config) (*Observability, error) {
	handler := slog.NewJSONHandler(cfg.Output, &slog.HandlerOptions{Level: cfg.Level})
	logger := slog.New(handler).With(
		slog.String("service", ServiceName),
		slog.String("environment", cfg.Environment),
	)

	registry := prometheus.NewRegistry()
	if err := registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("register go collector: %w", err)
	}
	if err := registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("register process collector: %w", err)
	}

	c, err := metrics.NewCollectors(registry)
	if err != nil {
		return nil, err
	}

	return &Observability{
		Logger:     logger,
		Tracer:     otel.Tracer(ServiceName),
		Registry:   registry,
		Collectors: c,
	}, nil
}
