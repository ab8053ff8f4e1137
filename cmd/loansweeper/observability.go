package main

import (
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/library-loan-engine-go/engine"
	"github.com/AntonStoeckl/library-loan-engine-go/oteladapters"
	"github.com/AntonStoeckl/library-loan-engine-go/promadapters"
	"github.com/AntonStoeckl/library-loan-engine-go/shell"
	"github.com/AntonStoeckl/library-loan-engine-go/shell/config"
)

const instrumentationName = "github.com/AntonStoeckl/library-loan-engine-go/cmd/loansweeper"

// observability holds the collectors wired into the engine and the stores.
type observability struct {
	logger           *slog.Logger
	contextualLogger shell.ContextualLogger
	metrics          *promadapters.MetricsCollector
	tracing          shell.TracingCollector
}

func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	options := &slog.HandlerOptions{Level: cfg.LogLevel}

	if cfg.LogFormat == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, options))
	}

	return slog.New(slog.NewTextHandler(w, options))
}

// newObservability always collects Prometheus metrics. With OTEL_ENABLED the engine traces
// on the global TracerProvider and logs through the slog bridge of the global LoggerProvider.
func newObservability(cfg config.Config, logger *slog.Logger) observability {
	obs := observability{
		logger:           logger,
		contextualLogger: logger,
		metrics:          promadapters.NewMetricsCollector(promadapters.WithNamespace("library")),
	}

	if cfg.OTelEnabled {
		obs.contextualLogger = oteladapters.NewSlogBridgeLogger(instrumentationName)
		obs.tracing = oteladapters.NewTracingCollector(otel.Tracer(instrumentationName))
	}

	return obs
}

func (o observability) engineOptions(cfg config.Config) []engine.Option {
	options := []engine.Option{
		engine.WithLogger(o.logger),
		engine.WithContextualLogger(o.contextualLogger),
		engine.WithMetrics(o.metrics),
		engine.WithRetryOptions(
			shell.WithMaxAttempts(cfg.RetryMaxAttempts),
			shell.WithBaseDelay(cfg.RetryBaseDelay),
		),
	}

	if o.tracing != nil {
		options = append(options, engine.WithTracing(o.tracing))
	}

	return options
}

// cronLogger routes the scheduler's own logging to slog. Routine scheduler chatter goes to debug.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, shell.LogAttrError, err.Error())...)
}
