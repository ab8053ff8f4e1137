package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/embedded"

	"github.com/AntonStoeckl/library-loan-engine-go/oteladapters"
	"github.com/AntonStoeckl/library-loan-engine-go/shell"
)

func Test_SlogBridgeLogger_WithHandler(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(
		slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	).With("component", "engine")
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "debug message")
	logger.InfoContext(ctx, shell.LogMsgCommandStarted, shell.LogAttrCommandType, "CreateLoan")
	logger.WarnContext(ctx, "warn message")
	logger.ErrorContext(ctx, "error message")

	// assert
	output := buf.String()
	assert.Contains(t, output, `"level":"DEBUG"`)
	assert.Contains(t, output, `"level":"WARN"`)
	assert.Contains(t, output, `"level":"ERROR"`)
	assert.Contains(t, output, `"command_type":"CreateLoan"`)
	assert.Contains(t, output, `"component":"engine"`)
}

func Test_SlogBridgeLogger_OnGlobalProvider(t *testing.T) {
	logger := oteladapters.NewSlogBridgeLogger("test")

	assert.NotPanics(t, func() {
		logger.InfoContext(context.Background(), "info message", "key", "value")
	})
}

func Test_OTelLogger_EmitsRecords(t *testing.T) {
	// arrange
	recorder := &recordingLogger{}
	logger := oteladapters.NewOTelLogger(recorder)

	// act
	logger.WarnContext(context.Background(), shell.LogMsgCommandFailed,
		shell.LogAttrCommandType, "ReturnLoan",
		shell.LogAttrCount, 3,
		"dangling",
	)

	// assert
	records := recorder.all()
	require.Len(t, records, 1)
	assert.Equal(t, log.SeverityWarn, records[0].Severity())
	assert.Equal(t, "WARN", records[0].SeverityText())
	assert.Equal(t, shell.LogMsgCommandFailed, records[0].Body().AsString())

	attrs := map[string]log.Value{}
	records[0].WalkAttributes(func(kv log.KeyValue) bool {
		attrs[kv.Key] = kv.Value
		return true
	})

	require.Len(t, attrs, 2)
	assert.Equal(t, "ReturnLoan", attrs[shell.LogAttrCommandType].AsString())
	assert.Equal(t, int64(3), attrs[shell.LogAttrCount].AsInt64())
}

func Test_OTelLogger_SkipsDisabledSeverities(t *testing.T) {
	// arrange
	recorder := &recordingLogger{minSeverity: log.SeverityInfo}
	logger := oteladapters.NewOTelLogger(recorder)

	// act
	logger.DebugContext(context.Background(), "debug message")
	logger.ErrorContext(context.Background(), "error message")

	// assert
	records := recorder.all()
	require.Len(t, records, 1)
	assert.Equal(t, log.SeverityError, records[0].Severity())
}

type recordingLogger struct {
	embedded.Logger

	mu          sync.Mutex
	minSeverity log.Severity
	records     []log.Record
}

func (l *recordingLogger) Emit(_ context.Context, record log.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, record)
}

func (l *recordingLogger) Enabled(_ context.Context, param log.EnabledParameters) bool {
	return param.Severity >= l.minSeverity
}

func (l *recordingLogger) all() []log.Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]log.Record(nil), l.records...)
}
