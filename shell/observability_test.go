package shell_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
	"github.com/AntonStoeckl/library-loan-engine-go/loanstore"
	"github.com/AntonStoeckl/library-loan-engine-go/shell"
	"github.com/AntonStoeckl/library-loan-engine-go/testutil/testdoubles"
)

func Test_ClassifyDecision(t *testing.T) {
	assert.Equal(t, shell.StatusIdempotent, shell.ClassifyDecision(core.IdempotentDecision()))
	assert.Equal(t, shell.StatusError, shell.ClassifyDecision(core.ErrorDecision(core.ErrDuplicateLoan)))
	assert.Equal(t, shell.StatusSuccess, shell.ClassifyDecision(core.SuccessDecision(core.Loan{}, core.LoanCreated{})))
}

func Test_ClassifyError(t *testing.T) {
	testCases := []struct {
		err      error
		expected string
	}{
		{err: context.Canceled, expected: shell.StatusCanceled},
		{err: fmt.Errorf("query: %w", context.DeadlineExceeded), expected: shell.StatusTimeout},
		{err: errors.Join(loanstore.ErrConcurrencyConflict, errors.New("v2")), expected: shell.StatusConcurrencyConflict},
		{err: errors.New("disk on fire"), expected: shell.StatusError},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, shell.ClassifyError(tc.err))
		})
	}
}

func Test_RecordCommandMetrics_PrefersContextualCollector(t *testing.T) {
	// arrange
	metrics := testdoubles.NewMetricsCollectorSpy()

	// act
	shell.RecordCommandMetrics(context.Background(), metrics, "ReturnLoan", shell.StatusIdempotent, 5*time.Millisecond)

	// assert
	assert.True(t, metrics.HasDurationRecord(shell.CommandHandlerDurationMetric))
	assert.True(t, metrics.HasCounterRecordWithLabels(shell.CommandHandlerCallsMetric, shell.BuildCommandLabels("ReturnLoan", shell.StatusIdempotent)))
	assert.True(t, metrics.HasCounterRecord(shell.CommandHandlerIdempotentMetric))
	assert.Equal(t, 3, metrics.ContextualCallCount())
}

func Test_RecordCommandMetrics_PlainCollector(t *testing.T) {
	// arrange
	spy := testdoubles.NewMetricsCollectorSpy()
	metrics := testdoubles.NewPlainMetricsCollectorSpy(spy)

	// act
	shell.RecordCommandMetrics(context.Background(), metrics, "CreateLoan", shell.StatusConcurrencyConflict, time.Millisecond)

	// assert
	assert.True(t, spy.HasCounterRecord(shell.CommandHandlerConcurrencyConflictMetric))
	assert.False(t, spy.HasCounterRecord(shell.CommandHandlerIdempotentMetric))
	assert.Equal(t, 0, spy.ContextualCallCount())
}

func Test_RecordCommandMetrics_NilCollector(t *testing.T) {
	assert.NotPanics(t, func() {
		shell.RecordCommandMetrics(context.Background(), nil, "CreateLoan", shell.StatusSuccess, time.Millisecond)
		shell.RecordQueryMetrics(context.Background(), nil, "LoanReport", shell.StatusSuccess, time.Millisecond)
		shell.RecordSweepResult(context.Background(), nil, "MarkLoanOverdue", 3)
	})
}

func Test_RecordSweepResult(t *testing.T) {
	// arrange
	metrics := testdoubles.NewMetricsCollectorSpy()

	// act
	shell.RecordSweepResult(context.Background(), metrics, "MarkLoanOverdue", 4)

	// assert
	records := metrics.GetValueRecords()
	require.Len(t, records, 1)
	assert.Equal(t, shell.SweepLoansAffectedMetric, records[0].Metric)
	assert.InDelta(t, 4.0, records[0].Value, 0.0001)
}

func Test_CommandSpan_StartAndFinish(t *testing.T) {
	// arrange
	tracing := testdoubles.NewTracingCollectorSpy()

	// act
	_, span := shell.StartCommandSpan(context.Background(), tracing, "CreateLoan")
	shell.FinishSpan(tracing, span, shell.StatusError, 1500*time.Microsecond, core.ErrDuplicateLoan)

	// assert
	spans := tracing.Spans()
	require.Len(t, spans, 1)
	assert.Equal(t, shell.SpanNameCommandHandle, spans[0].Name)
	assert.Equal(t, "CreateLoan", spans[0].StartAttrs[shell.LogAttrCommandType])
	assert.True(t, spans[0].Finished)
	assert.Equal(t, shell.StatusError, spans[0].Status)
	assert.Equal(t, "1.50", spans[0].FinishAttrs[shell.LogAttrDurationMS])
	assert.Equal(t, core.ErrDuplicateLoan.Error(), spans[0].FinishAttrs[shell.LogAttrError])
}

func Test_StartQuerySpan_TracingDisabled(t *testing.T) {
	// arrange
	ctx := context.Background()

	// act
	spanCtx, span := shell.StartQuerySpan(ctx, nil, "LoanReport")

	// assert
	assert.Equal(t, ctx, spanCtx)
	assert.Nil(t, span)
	assert.NotPanics(t, func() { shell.FinishSpan(nil, span, shell.StatusSuccess, 0, nil) })
}

func Test_LogCommand_PrefersContextualLogger(t *testing.T) {
	// arrange
	plain := testdoubles.NewLoggerSpy()
	contextual := testdoubles.NewLoggerSpy()
	ctx := context.Background()

	// act
	shell.LogCommandStart(ctx, plain, contextual, "RenewLoan")
	shell.LogCommandSuccess(ctx, plain, contextual, "RenewLoan", shell.StatusSuccess, time.Millisecond)
	shell.LogCommandError(ctx, plain, contextual, "RenewLoan", core.ErrOverdueCannotRenew)

	// assert
	assert.Empty(t, plain.Records())
	records := contextual.Records()
	require.Len(t, records, 3)
	assert.True(t, records[0].Contextual)
	assert.Equal(t, shell.LogMsgCommandStarted, records[0].Message)
	assert.Equal(t, shell.StatusSuccess, records[1].Attr(shell.LogAttrBusinessOutcome))
	assert.Equal(t, "error", records[2].Level)
}

func Test_LogQuery_FallsBackToPlainLogger(t *testing.T) {
	// arrange
	plain := testdoubles.NewLoggerSpy()
	ctx := context.Background()

	// act
	shell.LogQueryStart(ctx, plain, nil, "LoanDetails")
	shell.LogQuerySuccess(ctx, plain, nil, "LoanDetails", time.Millisecond)
	shell.LogQueryError(ctx, plain, nil, "LoanDetails", core.ErrLoanNotFound)

	// assert
	assert.True(t, plain.HasLog("info", shell.LogMsgQueryStarted))
	assert.True(t, plain.HasLog("info", shell.LogMsgQueryCompleted))
	assert.True(t, plain.HasLog("error", shell.LogMsgQueryFailed))
	assert.False(t, plain.Records()[0].Contextual)
}
