package engine

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-loan-engine-go/shell"
)

const (
	logMsgNotificationSkipped  = "no notification for domain event"
	logMsgRollbackFailed       = "rollback after failed availability sync failed"
	logMsgAvailabilitySyncFail = "book availability sync failed"
	logMsgSweepLoanFailed      = "sweep could not process loan"
	logMsgSweepCompleted       = "sweep completed"
	logMsgLookupFailed         = "best-effort lookup failed"
)

type operation struct {
	name  string
	start time.Time
	span  shell.SpanContext
	query bool
}

func (e *Engine) startCommand(ctx context.Context, commandType string) (context.Context, operation) {
	ctx, span := shell.StartCommandSpan(ctx, e.tracingCollector, commandType)
	shell.LogCommandStart(ctx, e.logger, e.contextualLogger, commandType)

	return ctx, operation{name: commandType, start: time.Now(), span: span}
}

func (e *Engine) startQuery(ctx context.Context, queryType string) (context.Context, operation) {
	ctx, span := shell.StartQuerySpan(ctx, e.tracingCollector, queryType)
	shell.LogQueryStart(ctx, e.logger, e.contextualLogger, queryType)

	return ctx, operation{name: queryType, start: time.Now(), span: span, query: true}
}

// completed records an operation that ran to a business outcome, a rejection included.
func (e *Engine) completed(ctx context.Context, op operation, businessOutcome string) {
	duration := time.Since(op.start)

	if op.query {
		shell.RecordQueryMetrics(ctx, e.metricsCollector, op.name, businessOutcome, duration)
		shell.FinishSpan(e.tracingCollector, op.span, businessOutcome, duration, nil)
		shell.LogQuerySuccess(ctx, e.logger, e.contextualLogger, op.name, duration)

		return
	}

	shell.RecordCommandMetrics(ctx, e.metricsCollector, op.name, businessOutcome, duration)
	shell.FinishSpan(e.tracingCollector, op.span, businessOutcome, duration, nil)
	shell.LogCommandSuccess(ctx, e.logger, e.contextualLogger, op.name, businessOutcome, duration)
}

// failed records an operation that could not run to a business outcome.
func (e *Engine) failed(ctx context.Context, op operation, err error) {
	duration := time.Since(op.start)
	status := shell.ClassifyError(err)

	if op.query {
		shell.RecordQueryMetrics(ctx, e.metricsCollector, op.name, status, duration)
		shell.FinishSpan(e.tracingCollector, op.span, status, duration, err)
		shell.LogQueryError(ctx, e.logger, e.contextualLogger, op.name, err)

		return
	}

	shell.RecordCommandMetrics(ctx, e.metricsCollector, op.name, status, duration)
	shell.FinishSpan(e.tracingCollector, op.span, status, duration, err)
	shell.LogCommandError(ctx, e.logger, e.contextualLogger, op.name, err)
}

func (e *Engine) logInfo(ctx context.Context, msg string, args ...any) {
	if e.contextualLogger != nil {
		e.contextualLogger.InfoContext(ctx, msg, args...)
	} else if e.logger != nil {
		e.logger.Info(msg, args...)
	}
}

func (e *Engine) logWarn(ctx context.Context, msg string, args ...any) {
	if e.contextualLogger != nil {
		e.contextualLogger.WarnContext(ctx, msg, args...)
	} else if e.logger != nil {
		e.logger.Warn(msg, args...)
	}
}

func (e *Engine) logError(ctx context.Context, msg string, args ...any) {
	if e.contextualLogger != nil {
		e.contextualLogger.ErrorContext(ctx, msg, args...)
	} else if e.logger != nil {
		e.logger.Error(msg, args...)
	}
}

func (e *Engine) logDebug(ctx context.Context, msg string, args ...any) {
	if e.contextualLogger != nil {
		e.contextualLogger.DebugContext(ctx, msg, args...)
	} else if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}
