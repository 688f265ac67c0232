package tracer

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"kuliner-chatbot-be/internal/config"
	"kuliner-chatbot-be/internal/pkg/logger"
)

// InitTracer installs an OTLP HTTP tracer provider (Jaeger compatible) and
// returns its shutdown func. When tracing is disabled the global no-op
// provider stays in place, so pipeline spans cost nothing.
func InitTracer(cfg config.TracingConfig, log logger.ILogger) func(context.Context) error {
	noop := func(context.Context) error { return nil }

	if !cfg.Enabled {
		log.Info("Tracer", "OpenTelemetry tracing is disabled (set OTEL_ENABLED=true to enable)", nil)
		return noop
	}

	exporter, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		log.Warn("Tracer", "Failed to create OTLP exporter, tracing disabled", map[string]interface{}{
			"endpoint": cfg.Endpoint,
			"error":    err.Error(),
		})
		return noop
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(cfg.ServiceName),
		)),
	)

	otel.SetTracerProvider(tp)
	log.Info("Tracer", "OpenTelemetry tracer initialized", map[string]interface{}{
		"endpoint": cfg.Endpoint,
		"service":  cfg.ServiceName,
	})

	return tp.Shutdown
}
