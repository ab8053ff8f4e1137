package postgresengine

import (
	"math"
	"time"
)

const (
	metricQueryDuration        = "loanstore_query_duration_seconds"
	metricWriteDuration        = "loanstore_write_duration_seconds"
	metricLoansQueried         = "loanstore_loans_queried_total"
	metricConcurrencyConflicts = "loanstore_concurrency_conflicts_total"
	metricDatabaseErrors       = "loanstore_database_errors_total"
	labelOperation             = "operation"
	labelStatus                = "status"
	labelErrorType             = "error_type"
	statusSuccess              = "success"
	statusError                = "error"
	errorTypeQuery             = "query"
	errorTypeExec              = "exec"
	errorTypeScan              = "scan"
	errorTypeBuild             = "build"
)

// logQueryWithDuration logs SQL statements with execution time at debug level if the logger is configured.
func (ls LoanStore) logQueryWithDuration(sqlQuery string, operation string, duration time.Duration) {
	if ls.logger != nil {
		ls.logger.Debug(logMsgSQLExecuted+operation, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if the logger is configured.
func (ls LoanStore) logOperation(msg string, args ...any) {
	if ls.logger != nil {
		ls.logger.Info(msg, args...)
	}
}

// logError logs error information at error level if the logger is configured.
func (ls LoanStore) logError(msg string, err error, args ...any) {
	if ls.logger != nil {
		allArgs := []any{logAttrError, err.Error()}
		allArgs = append(allArgs, args...)
		ls.logger.Error(msg, allArgs...)
	}
}

func (ls LoanStore) recordDuration(metric string, operation string, status string, duration time.Duration) {
	if ls.metricsCollector != nil {
		ls.metricsCollector.RecordDuration(metric, duration, map[string]string{
			labelOperation: operation,
			labelStatus:    status,
		})
	}
}

func (ls LoanStore) recordLoansQueried(operation string, count int) {
	if ls.metricsCollector != nil {
		ls.metricsCollector.RecordValue(metricLoansQueried, float64(count), map[string]string{
			labelOperation: operation,
		})
	}
}

func (ls LoanStore) recordError(operation string, errorType string) {
	if ls.metricsCollector != nil {
		ls.metricsCollector.IncrementCounter(metricDatabaseErrors, map[string]string{
			labelOperation: operation,
			labelStatus:    statusError,
			labelErrorType: errorType,
		})
	}
}

func (ls LoanStore) recordConcurrencyConflict(operation string) {
	if ls.metricsCollector != nil {
		ls.metricsCollector.IncrementCounter(metricConcurrencyConflicts, map[string]string{
			labelOperation: operation,
		})
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
