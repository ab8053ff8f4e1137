package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
	"github.com/AntonStoeckl/library-loan-engine-go/shell"
)

var (
	// ErrNilDependency is returned by NewEngine when a required collaborator is nil.
	ErrNilDependency = errors.New("engine dependency must not be nil")

	// ErrNilClock is returned when WithClock is given a nil function.
	ErrNilClock = errors.New("clock must not be nil")

	// ErrGatewayFailed wraps unexpected errors of the book and user gateways.
	ErrGatewayFailed = errors.New("gateway call failed")

	// ErrGeneratingIDFailed is returned when no loan id could be generated.
	ErrGeneratingIDFailed = errors.New("generating id failed")
)

// Engine is the Loan Lifecycle & Availability Coordination Engine.
type Engine struct {
	mu sync.Mutex

	store     LoanStore
	books     BookGateway
	users     UserGateway
	publisher Publisher
	now       func() time.Time

	retryOptions     []shell.RetryOption
	logger           shell.Logger
	contextualLogger shell.ContextualLogger
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
}

// NewEngine creates an Engine over the given store, gateways and publisher.
func NewEngine(
	store LoanStore,
	books BookGateway,
	users UserGateway,
	publisher Publisher,
	options ...Option,
) (*Engine, error) {
	if store == nil || books == nil || users == nil || publisher == nil {
		return nil, ErrNilDependency
	}

	e := &Engine{
		store:     store,
		books:     books,
		users:     users,
		publisher: publisher,
		now:       time.Now,
	}

	for _, option := range options {
		if err := option(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine) error

// WithClock replaces time.Now as the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) error {
		if now == nil {
			return ErrNilClock
		}

		e.now = now

		return nil
	}
}

// WithLogger sets the basic logger for the Engine.
func WithLogger(logger shell.Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Engine. It takes precedence over WithLogger.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(e *Engine) error {
		e.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Engine and its retries.
func WithMetrics(collector shell.MetricsCollector) Option {
	return func(e *Engine) error {
		e.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Engine.
func WithTracing(collector shell.TracingCollector) Option {
	return func(e *Engine) error {
		e.tracingCollector = collector
		return nil
	}
}

// WithRetryOptions configures the optimistic concurrency retry of store writes.
func WithRetryOptions(options ...shell.RetryOption) Option {
	return func(e *Engine) error {
		e.retryOptions = append(e.retryOptions, options...)
		return nil
	}
}

// clock returns the current time normalized like every timestamp the engine stores.
func (e *Engine) clock() time.Time {
	return core.ToOccurredAt(e.now())
}

func (e *Engine) retry(ctx context.Context, commandType string, fn shell.RetryableFunc) error {
	options := e.retryOptions
	if e.metricsCollector != nil {
		options = append(append([]shell.RetryOption(nil), options...), shell.WithRetryMetrics(e.metricsCollector, commandType))
	}

	_, err := shell.RetryWithExponentialBackoff(ctx, fn, options...)

	return err
}

// publish turns the event into a notification and hands it to the publisher.
func (e *Engine) publish(ctx context.Context, event core.DomainEvent) {
	id, idErr := uuid.NewV7()
	if idErr != nil {
		id = uuid.New()
	}

	notification, err := shell.NotificationFromDomainEvent(event, id)
	if err != nil {
		e.logWarn(ctx, logMsgNotificationSkipped, shell.LogAttrEventType, event.IsEventType(), shell.LogAttrError, err.Error())
		return
	}

	e.publisher.Publish(ctx, notification)
	shell.RecordNotificationPublished(ctx, e.metricsCollector, string(notification.Kind))
}
