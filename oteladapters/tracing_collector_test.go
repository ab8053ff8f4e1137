package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/library-loan-engine-go/oteladapters"
	"github.com/AntonStoeckl/library-loan-engine-go/shell"
)

func Test_TracingCollector_StartAndFinishSpan(t *testing.T) {
	// arrange
	exporter, collector := givenTracingCollector()

	// act
	ctx, span := collector.StartSpan(context.Background(), shell.SpanNameCommandHandle, map[string]string{
		shell.LogAttrCommandType: "RenewLoan",
	})
	span.AddAttribute(shell.LogAttrLoanID, "loan-1")
	collector.FinishSpan(span, shell.StatusSuccess, map[string]string{shell.LogAttrDurationMS: "1.50"})

	// assert
	assert.True(t, trace.SpanContextFromContext(ctx).IsValid())

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, shell.SpanNameCommandHandle, spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assertSpanAttribute(t, spans[0], shell.LogAttrCommandType, "RenewLoan")
	assertSpanAttribute(t, spans[0], shell.LogAttrLoanID, "loan-1")
	assertSpanAttribute(t, spans[0], shell.LogAttrDurationMS, "1.50")
}

func Test_TracingCollector_StatusMapping(t *testing.T) {
	tests := []struct {
		status string
		code   codes.Code
	}{
		{shell.StatusSuccess, codes.Ok},
		{shell.StatusIdempotent, codes.Ok},
		{shell.StatusError, codes.Error},
		{shell.StatusCanceled, codes.Error},
		{shell.StatusTimeout, codes.Error},
		{shell.StatusConcurrencyConflict, codes.Error},
		{"something_else", codes.Unset},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			exporter, collector := givenTracingCollector()

			_, span := collector.StartSpan(context.Background(), shell.SpanNameQueryHandle, nil)
			collector.FinishSpan(span, tt.status, nil)

			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.code, spans[0].Status.Code)
		})
	}
}

func Test_TracingCollector_NestsSpans(t *testing.T) {
	// arrange
	exporter, collector := givenTracingCollector()

	// act
	ctx, parent := collector.StartSpan(context.Background(), shell.SpanNameCommandHandle, nil)
	_, child := collector.StartSpan(ctx, shell.SpanNameQueryHandle, nil)
	collector.FinishSpan(child, shell.StatusSuccess, nil)
	collector.FinishSpan(parent, shell.StatusSuccess, nil)

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
}

func Test_TracingCollector_IgnoresForeignSpanContext(t *testing.T) {
	// arrange
	exporter, collector := givenTracingCollector()

	// act
	collector.FinishSpan(nil, shell.StatusSuccess, nil)

	// assert
	assert.Empty(t, exporter.GetSpans())
}

func givenTracingCollector() (*tracetest.InMemoryExporter, *oteladapters.TracingCollector) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	return exporter, oteladapters.NewTracingCollector(provider.Tracer("test"))
}

func assertSpanAttribute(t *testing.T, span tracetest.SpanStub, key, expected string) {
	t.Helper()

	for _, attr := range span.Attributes {
		if attr.Key == attribute.Key(key) {
			assert.Equal(t, expected, attr.Value.AsString())
			return
		}
	}

	assert.Failf(t, "attribute not found", "span has no attribute %q", key)
}
