// Package observability bootstraps OpenTelemetry metrics and traces and
// exposes the counters the authentication path records.
package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/skillsenselab/authservice/internal/logger"
)

// Config configures the OTLP exporters.
type Config struct {
	// Enabled turns metric and trace export on.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Endpoint is the OTLP HTTP endpoint host:port (default: localhost:4318).
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`

	// Insecure allows plain-HTTP export (for development).
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`

	// Interval is the metric export interval (default: 15s).
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// ApplyDefaults sets sensible defaults for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.Interval == 0 {
		c.Interval = 15 * time.Second
	}
}

// Provider holds the initialized telemetry providers for shutdown.
type Provider struct {
	meterProvider *sdkmetric.MeterProvider
	traceProvider *sdktrace.TracerProvider
	log           *logger.Logger
}

// Init sets up the global meter and tracer providers. When the config
// is disabled it returns a Provider whose Shutdown is a no-op and the
// otel globals keep their no-op defaults.
func Init(ctx context.Context, cfg Config, serviceName string, log *logger.Logger) (*Provider, error) {
	log = log.WithComponent("observability")
	if !cfg.Enabled {
		return &Provider{log: log}, nil
	}
	cfg.ApplyDefaults()

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
	))
	if err != nil {
		return nil, fmt.Errorf("observability: resource: %w", err)
	}

	metricOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	traceOpts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		metricOpts = append(metricOpts, otlpmetrichttp.WithInsecure())
		traceOpts = append(traceOpts, otlptracehttp.WithInsecure())
	}

	metricExporter, err := otlpmetrichttp.New(ctx, metricOpts...)
	if err != nil {
		return nil, fmt.Errorf("observability: metric exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter,
			sdkmetric.WithInterval(cfg.Interval))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	traceExporter, err := otlptracehttp.New(ctx, traceOpts...)
	if err != nil {
		return nil, fmt.Errorf("observability: trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	log.Info("telemetry initialized", map[string]interface{}{
		"endpoint": cfg.Endpoint,
		"interval": cfg.Interval.String(),
	})

	return &Provider{meterProvider: mp, traceProvider: tp, log: log}, nil
}

// Shutdown flushes and stops the providers.
func (p *Provider) Shutdown(ctx context.Context) {
	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			p.log.Warn("meter shutdown", map[string]interface{}{"error": err.Error()})
		}
	}
	if p.traceProvider != nil {
		if err := p.traceProvider.Shutdown(ctx); err != nil {
			p.log.Warn("tracer shutdown", map[string]interface{}{"error": err.Error()})
		}
	}
}

// Tracer returns a named tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// AuthMetrics holds the counters recorded on the authentication path.
type AuthMetrics struct {
	loginTotal  metric.Int64Counter
	verifyTotal metric.Int64Counter
}

// NewAuthMetrics creates the instruments on the global meter. The no-op
// global provider makes these free when telemetry is disabled.
func NewAuthMetrics() (*AuthMetrics, error) {
	meter := otel.Meter("authservice")

	loginTotal, err := meter.Int64Counter("auth.login.total",
		metric.WithDescription("Login attempts by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("observability: auth.login.total: %w", err)
	}

	verifyTotal, err := meter.Int64Counter("auth.token.verify.total",
		metric.WithDescription("Token verifications by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("observability: auth.token.verify.total: %w", err)
	}

	return &AuthMetrics{loginTotal: loginTotal, verifyTotal: verifyTotal}, nil
}

// RecordLogin records a login attempt. outcome is "success" or "failure".
func (m *AuthMetrics) RecordLogin(ctx context.Context, outcome string) {
	m.loginTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordVerification records a token verification. outcome is one of
// "success", "expired", "invalid".
func (m *AuthMetrics) RecordVerification(ctx context.Context, outcome string) {
	m.verifyTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
