package cmd

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-memberships/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// setupTracing installs an OTLP/HTTP tracer provider when an endpoint is
// configured. Without one the global no-op provider stays in place.
func setupTracing(ctx context.Context, cfg *config.Config) func(context.Context) {
	if cfg.Tracing.OTLPEndpoint == "" {
		return func(context.Context) {}
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpointURL(cfg.Tracing.OTLPEndpoint)}
	if cfg.Tracing.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		logrus.WithError(err).Warn("Tracing disabled, exporter setup failed")
		return func(context.Context) {}
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", cfg.App.ServiceName))),
	)
	otel.SetTracerProvider(provider)
	logrus.WithField("endpoint", cfg.Tracing.OTLPEndpoint).Info("Tracing enabled")

	return func(ctx context.Context) {
		if err := provider.Shutdown(ctx); err != nil {
			logrus.WithError(err).Warn("Tracer provider shutdown error")
		}
	}
}
