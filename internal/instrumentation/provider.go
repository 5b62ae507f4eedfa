package instrumentation

import (
	"context"
	"fmt"
	"net/http"
	"os"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config holds the configuration for the instrumentation provider.
type Config struct {
	// ServiceName identifies the service in exported metrics.
	ServiceName string

	// ServiceVersion is the running version of the service.
	ServiceVersion string

	// Enabled determines whether metrics are collected at all. When false
	// the provider hands out no-op recorders.
	Enabled bool
}

// Provider encapsulates the OpenTelemetry meter provider and its Prometheus
// exporter. Metrics land in a dedicated registry so the /metrics endpoint
// only exposes what this process registered.
type Provider struct {
	config        Config
	meterProvider *metric.MeterProvider
	registry      *promclient.Registry
	metrics       *Metrics
	enabled       bool
}

// NewProvider creates an instrumentation provider. When config.Enabled is
// false the returned provider carries a no-op metrics recorder and nothing
// else.
func NewProvider(ctx context.Context, config Config) (*Provider, error) {
	if !config.Enabled {
		return &Provider{config: config, metrics: &Metrics{}}, nil
	}

	resourceAttrs := []attribute.KeyValue{
		semconv.ServiceName(config.ServiceName),
		semconv.ServiceVersion(config.ServiceVersion),
	}
	if hostname, err := os.Hostname(); err == nil {
		resourceAttrs = append(resourceAttrs, semconv.ServiceInstanceID(hostname))
	}

	res, err := resource.New(ctx, resource.WithAttributes(resourceAttrs...))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	registry := promclient.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := &Provider{
		config:   config,
		registry: registry,
		enabled:  true,
		meterProvider: metric.NewMeterProvider(
			metric.WithResource(res),
			metric.WithReader(exporter),
		),
	}
	otel.SetMeterProvider(provider.meterProvider)

	meter := provider.meterProvider.Meter(config.ServiceName)
	provider.metrics, err = NewMetrics(meter)
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, fmt.Errorf("failed to create metrics recorder: %w", err)
	}

	return provider, nil
}

// Metrics returns the metrics recorder. Never nil; no-op when disabled.
func (p *Provider) Metrics() *Metrics {
	return p.metrics
}

// Handler returns the HTTP handler serving the Prometheus exposition of this
// provider's registry, or nil when instrumentation is disabled.
func (p *Provider) Handler() http.Handler {
	if p.registry == nil {
		return nil
	}
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Enabled reports whether metrics collection is active.
func (p *Provider) Enabled() bool {
	return p.enabled
}

// Shutdown flushes and stops the meter provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.enabled || p.meterProvider == nil {
		return nil
	}
	if err := p.meterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown meter provider: %w", err)
	}
	return nil
}
