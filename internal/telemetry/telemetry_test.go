package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracerRecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, span := Tracer("session").Start(context.Background(), "session.test")
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "session.test", ended[0].Name())
	assert.Equal(t, "robotsim/session", ended[0].InstrumentationScope().Name)
}

func TestHostname(t *testing.T) {
	assert.NotEmpty(t, hostname())
}

func TestEnabled(t *testing.T) {
	t.Setenv(EnvEndpoint, "")
	assert.False(t, Enabled(false))
	assert.True(t, Enabled(true))

	t.Setenv(EnvEndpoint, "http://localhost:4318")
	assert.True(t, Enabled(false))
}

func TestSetupDisabledKeepsGlobalProvider(t *testing.T) {
	prev := otel.GetTracerProvider()

	shutdown, err := Setup(context.Background(), false)
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
	assert.Equal(t, prev, otel.GetTracerProvider())
}

func TestResourceCarriesVersion(t *testing.T) {
	res := newResource()

	v, ok := res.Set().Value("service.version")
	require.True(t, ok)
	assert.Equal(t, Version, v.AsString())

	name, ok := res.Set().Value("service.name")
	require.True(t, ok)
	assert.Equal(t, "robotsim", name.AsString())
}
