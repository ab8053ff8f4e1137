package postgresengine

import (
	"time"

	"github.com/AntonStoeckl/library-loan-engine-go/loanstore"
)

// Logger interface for SQL query logging, operational logging, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsCollector interface for collecting LoanStore performance and operational metrics.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// Option defines a functional option for configuring LoanStore.
type Option func(*LoanStore) error

// WithTableName sets the table name for the LoanStore.
func WithTableName(tableName string) Option {
	return func(ls *LoanStore) error {
		if tableName == "" {
			return loanstore.ErrEmptyTableNameSupplied
		}

		ls.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the LoanStore.
//
// Debug level: SQL statements with execution timing
// Info level: rollbacks and concurrency conflicts
// Error level: failures that make an operation fail
func WithLogger(logger Logger) Option {
	return func(ls *LoanStore) error {
		ls.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the LoanStore.
// It receives statement durations, returned row counts, concurrency conflicts and database errors.
func WithMetrics(collector MetricsCollector) Option {
	return func(ls *LoanStore) error {
		ls.metricsCollector = collector
		return nil
	}
}
