package telemetry_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/ikon/internal/adapters/telemetry"
	"go.trai.ch/ikon/internal/core/domain"
)

func setupMonitor(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := trace.NewTracerProvider(trace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })
	return sr
}

func TestOTelTracer_SpanAttributes(t *testing.T) {
	sr := setupMonitor(t)
	tracer := telemetry.NewOTelTracer("test")

	_, span := tracer.Start(t.Context(), "ikon.query")
	span.SetAttribute("prefix", "mdi")
	span.SetAttribute("icons", []string{"home", "account"})
	span.SetAttribute("attempts", 2)
	span.SetAttribute("elapsed", 0.75)
	span.SetAttribute("late", true)
	span.SetAttribute("set", domain.SetKey{Provider: "custom", Prefix: "mdi"})
	span.SetAttribute("size", struct{ W int }{W: 24})
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "ikon.query", spans[0].Name())

	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "mdi", attrs["prefix"].AsString())
	assert.Equal(t, []string{"home", "account"}, attrs["icons"].AsStringSlice())
	assert.Equal(t, int64(2), attrs["attempts"].AsInt64())
	assert.InDelta(t, 0.75, attrs["elapsed"].AsFloat64(), 0)
	assert.True(t, attrs["late"].AsBool())
	assert.Equal(t, "custom:mdi", attrs["set"].AsString())
	assert.Equal(t, "{24}", attrs["size"].AsString())
}

func TestOTelTracer_RecordError(t *testing.T) {
	sr := setupMonitor(t)
	tracer := telemetry.NewOTelTracer("test")

	_, span := tracer.Start(t.Context(), "ikon.query")
	span.RecordError(errors.New("all api hosts failed"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "all api hosts failed", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestOTelTracer_NestedSpans(t *testing.T) {
	sr := setupMonitor(t)
	tracer := telemetry.NewOTelTracer("test")

	ctx, parent := tracer.Start(t.Context(), "ikon.render")
	_, child := tracer.Start(ctx, "ikon.query")
	child.End()
	parent.End()

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
}

func TestSetup_EmptyEndpointIsNoop(t *testing.T) {
	shutdown, err := telemetry.Setup(t.Context(), "")
	require.NoError(t, err)
	require.NoError(t, shutdown(t.Context()))
}

func TestSetup_WithEndpoint(t *testing.T) {
	shutdown, err := telemetry.Setup(t.Context(), "http://127.0.0.1:4318")
	require.NoError(t, err)
	t.Cleanup(func() { otel.SetTracerProvider(trace.NewTracerProvider()) })

	// Nothing was recorded, so shutdown does not need to reach the collector.
	require.NoError(t, shutdown(t.Context()))
}
