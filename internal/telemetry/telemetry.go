// Package telemetry provides OpenTelemetry tracing for robotsim sessions.
package telemetry

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// EnvEndpoint turns tracing on even when the config leaves it off.
const EnvEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"

// Version is reported as service.version. Release builds set it with
// -ldflags "-X github.com/vovakirdan/robotsim/internal/telemetry.Version=v1.2.3".
var Version = "dev"

// ShutdownFunc flushes pending spans.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Enabled reports whether tracing should run: the config switch is on or
// an OTLP endpoint is set in the environment.
func Enabled(configured bool) bool {
	return configured || os.Getenv(EnvEndpoint) != ""
}

// Setup installs a global tracer provider exporting over OTLP HTTP when
// enabled is true. The exporter reads the standard OTEL_* variables.
// When disabled it leaves the global no-op provider in place.
//
// The returned shutdown is never nil; call it on exit.
func Setup(ctx context.Context, enabled bool) (ShutdownFunc, error) {
	if !enabled {
		return noopShutdown, nil
	}

	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return noopShutdown, fmt.Errorf("telemetry: exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(newResource()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// newResource describes this process. It is built with NewSchemaless so it
// never conflicts with the SDK default schema.
func newResource() *resource.Resource {
	return resource.NewSchemaless(
		attribute.String("service.name", "robotsim"),
		attribute.String("service.version", Version),
		attribute.String("host.name", hostname()),
		attribute.String("os.type", runtime.GOOS),
		attribute.String("process.runtime.version", runtime.Version()),
	)
}

// Tracer returns a named tracer for the given component.
// Before Setup (or when tracing is disabled) the global provider is a no-op.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer("robotsim/" + name)
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}
