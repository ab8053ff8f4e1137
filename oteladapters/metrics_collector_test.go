package oteladapters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/library-loan-engine-go/oteladapters"
	"github.com/AntonStoeckl/library-loan-engine-go/shell"
)

func Test_MetricsCollector_RecordDuration(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector()
	labels := shell.BuildCommandLabels("CreateLoan", shell.StatusSuccess)

	// act
	collector.RecordDuration(shell.CommandHandlerDurationMetric, 150*time.Millisecond, labels)

	// assert
	m := collectMetric(t, reader, shell.CommandHandlerDurationMetric)
	assert.Equal(t, "s", m.Unit)
	assert.Equal(t, "Duration of loan command handling", m.Description)

	histogram, ok := m.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, histogram.DataPoints, 1)
	assert.Equal(t, uint64(1), histogram.DataPoints[0].Count)
	assert.InDelta(t, 0.15, histogram.DataPoints[0].Sum, 0.001)

	expected := attribute.NewSet(
		attribute.String(shell.LogAttrCommandType, "CreateLoan"),
		attribute.String(shell.LogAttrStatus, shell.StatusSuccess),
	)
	assert.True(t, histogram.DataPoints[0].Attributes.Equals(&expected))
}

func Test_MetricsCollector_IncrementCounter(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector()
	labels := shell.BuildQueryLabels("AllLoans", shell.StatusSuccess)

	// act
	collector.IncrementCounter(shell.QueryHandlerCallsMetric, labels)
	collector.IncrementCounterContext(context.Background(), shell.QueryHandlerCallsMetric, labels)
	collector.IncrementCounter(shell.QueryHandlerCallsMetric, shell.BuildQueryLabels("AllLoans", shell.StatusError))

	// assert
	sum, ok := collectMetric(t, reader, shell.QueryHandlerCallsMetric).Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.True(t, sum.IsMonotonic)
	require.Len(t, sum.DataPoints, 2)

	byStatus := map[string]int64{}
	for _, dp := range sum.DataPoints {
		status, _ := dp.Attributes.Value(attribute.Key(shell.LogAttrStatus))
		byStatus[status.AsString()] = dp.Value
	}

	assert.Equal(t, int64(2), byStatus[shell.StatusSuccess])
	assert.Equal(t, int64(1), byStatus[shell.StatusError])
}

func Test_MetricsCollector_RecordValueKeepsLastValue(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector()
	labels := map[string]string{shell.LogAttrCommandType: "CheckOverdueLoans"}

	// act
	collector.RecordValue(shell.SweepLoansAffectedMetric, 4, labels)
	collector.RecordValueContext(context.Background(), shell.SweepLoansAffectedMetric, 0, labels)

	// assert
	gauge, ok := collectMetric(t, reader, shell.SweepLoansAffectedMetric).Data.(metricdata.Gauge[float64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, 0.0, gauge.DataPoints[0].Value)
}

func Test_MetricsCollector_UnknownMetricGetsGenericDescription(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector()

	// act
	collector.IncrementCounter("custom_total", nil)

	// assert
	assert.Equal(t, "Loan engine metric", collectMetric(t, reader, "custom_total").Description)
}

func Test_MetricsCollector_ThroughShellHelpers(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector()

	// act
	shell.RecordCommandMetrics(context.Background(), collector, "ReturnLoan", shell.StatusIdempotent, time.Millisecond)

	// assert
	collectMetric(t, reader, shell.CommandHandlerDurationMetric)
	collectMetric(t, reader, shell.CommandHandlerCallsMetric)
	collectMetric(t, reader, shell.CommandHandlerIdempotentMetric)
}

func givenMetricsCollector() (*sdkmetric.ManualReader, *oteladapters.MetricsCollector) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return reader, oteladapters.NewMetricsCollector(provider.Meter("test"))
}

func collectMetric(t *testing.T, reader *sdkmetric.ManualReader, name string) metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m
			}
		}
	}

	require.Failf(t, "metric not found", "metric %q was not collected", name)

	return metricdata.Metrics{}
}
