package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return recorder
}

func TestStartSpan(t *testing.T) {
	t.Run("records name and attributes", func(t *testing.T) {
		recorder := setupRecorder(t)

		ctx, span := StartSpan(context.Background(), "invoice.issue",
			WithAttribute("invoice_number", "FAC-000042"))
		assert.NotNil(t, ctx)
		span.End()

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, "invoice.issue", spans[0].Name())
		assert.Contains(t, spans[0].Attributes(),
			attribute.String("invoice_number", "FAC-000042"))
	})

	t.Run("service span naming", func(t *testing.T) {
		recorder := setupRecorder(t)

		_, span := StartServiceSpan(context.Background(), "receivable", "apply")
		span.End()

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, "receivable.apply", spans[0].Name())
	})

	t.Run("trace and span IDs are exposed", func(t *testing.T) {
		setupRecorder(t)

		ctx, span := StartSpan(context.Background(), "stock.entry")
		defer span.End()

		assert.NotEmpty(t, GetTraceID(ctx))
		assert.NotEmpty(t, GetSpanID(ctx))
		assert.Empty(t, GetTraceID(context.Background()))
	})
}

func TestRecordError(t *testing.T) {
	t.Run("marks span status", func(t *testing.T) {
		recorder := setupRecorder(t)

		_, span := StartSpan(context.Background(), "order.close")
		RecordError(span, errors.New("stock unavailable"))
		span.End()

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status().Code)
		assert.Equal(t, "stock unavailable", spans[0].Status().Description)
	})

	t.Run("nil error is a no-op", func(t *testing.T) {
		recorder := setupRecorder(t)

		_, span := StartSpan(context.Background(), "order.close")
		RecordError(span, nil)
		span.End()

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Unset, spans[0].Status().Code)
	})
}

func TestToAttribute(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name  string
		value interface{}
		want  attribute.KeyValue
	}{
		{"string", "FAC-000001", attribute.String("k", "FAC-000001")},
		{"int", 42, attribute.Int("k", 42)},
		{"int64", int64(42), attribute.Int64("k", 42)},
		{"float64", 3.5, attribute.Float64("k", 3.5)},
		{"bool", true, attribute.Bool("k", true)},
		{"stringer", id, attribute.String("k", id.String())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toAttribute("k", tt.value))
		})
	}
}

func TestSetAttributes(t *testing.T) {
	recorder := setupRecorder(t)

	_, span := StartSpan(context.Background(), "kardex.report")
	SetAttributes(span,
		"warehouse_id", "MAIN",
		"rows", 120,
	)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Attributes(), attribute.String("warehouse_id", "MAIN"))
	assert.Contains(t, spans[0].Attributes(), attribute.Int("rows", 120))
}
