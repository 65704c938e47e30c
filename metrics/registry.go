// Package metrics owns the process metrics registry and the request counter.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config configures the metrics registry.
type Config struct {
	ServiceName string
	Version     string
	Exporter    string // prometheus|stdout|otlp|none
}

// Registry is the process-wide collection of named instruments.
// It is built once at startup and handed to the components that record metrics.
type Registry struct {
	provider *sdkmetric.MeterProvider
	meter    metric.Meter
	prom     *prometheus.Registry // nil unless the prometheus exporter is active
}

// NewRegistry builds a registry exporting through the configured exporter.
func NewRegistry(ctx context.Context, cfg Config) (*Registry, error) {
	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	var promReg *prometheus.Registry
	if cfg.Exporter == "prometheus" {
		promReg = prometheus.NewRegistry()
	}

	reader, err := newReader(ctx, cfg.Exporter, promReg)
	if err != nil {
		return nil, err
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	reg := newRegistry(cfg.ServiceName, res, reader)
	reg.prom = promReg
	return reg, nil
}

// NewRegistryWithReader builds a registry around an existing reader, such as a
// sdkmetric.ManualReader.
func NewRegistryWithReader(serviceName string, reader sdkmetric.Reader) *Registry {
	return newRegistry(serviceName, resource.Empty(), reader)
}

func newRegistry(serviceName string, res *resource.Resource, reader sdkmetric.Reader) *Registry {
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	return &Registry{
		provider: mp,
		meter:    mp.Meter(serviceName),
	}
}

func newResource(ctx context.Context, cfg Config) (*resource.Resource, error) {
	attrs := resource.WithAttributes(
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.Version),
		attribute.String("service.instance.id", uuid.NewString()),
	)
	res, err := resource.New(ctx, attrs)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// Meter returns the registry's meter.
func (r *Registry) Meter() metric.Meter {
	return r.meter
}

// Handler returns the Prometheus scrape handler, or nil when another exporter is in use.
func (r *Registry) Handler() http.Handler {
	if r.prom == nil {
		return nil
	}
	return promhttp.HandlerFor(r.prom, promhttp.HandlerOpts{})
}

// Shutdown flushes pending exports and releases the provider.
func (r *Registry) Shutdown(ctx context.Context) error {
	if err := r.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("meter shutdown: %w", err)
	}
	return nil
}
