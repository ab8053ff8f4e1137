package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
)

const (
	logMsgObserverFailed    = "notification observer failed"
	logMsgObserverPanicked  = "notification observer panicked"
	logMsgObserverDuplicate = "observer already subscribed"

	logAttrObserver       = "observer"
	logAttrKind           = "kind"
	logAttrNotificationID = "notification_id"
	logAttrError          = "error"
)

// ErrNilObserver is returned when subscribing a nil observer.
var ErrNilObserver = errors.New("observer must not be nil")

// Observer receives published notifications.
type Observer interface {
	// Name identifies the observer in logs.
	Name() string

	// Notify handles one notification. A returned error is logged by the Notifier.
	Notify(ctx context.Context, notification Notification) error
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc struct {
	name string
	fn   func(ctx context.Context, notification Notification) error
}

// NewObserverFunc wraps fn as a named Observer.
func NewObserverFunc(name string, fn func(ctx context.Context, notification Notification) error) *ObserverFunc {
	return &ObserverFunc{name: name, fn: fn}
}

func (o *ObserverFunc) Name() string { return o.name }

func (o *ObserverFunc) Notify(ctx context.Context, notification Notification) error {
	return o.fn(ctx, notification)
}

// Logger is the contextual logging contract the Notifier uses; *slog.Logger satisfies it.
type Logger interface {
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithLogger sets the logger for observer failures.
func WithLogger(logger Logger) Option {
	return func(n *Notifier) {
		n.logger = logger
	}
}

// Notifier delivers notifications to observers in subscription order.
type Notifier struct {
	mu        sync.RWMutex
	observers []Observer
	logger    Logger
}

// NewNotifier creates a Notifier without observers. Failures are logged with slog.Default() unless
// WithLogger is given.
func NewNotifier(options ...Option) *Notifier {
	n := &Notifier{logger: slog.Default()}

	for _, option := range options {
		option(n)
	}

	return n
}

// Subscribe appends observer to the subscriber list. Subscribing the same observer twice is a no-op.
// Observers of uncomparable types are never treated as duplicates.
func (n *Notifier) Subscribe(observer Observer) error {
	if observer == nil {
		return ErrNilObserver
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	for _, o := range n.observers {
		if sameObserver(o, observer) {
			n.logger.WarnContext(context.Background(), logMsgObserverDuplicate, logAttrObserver, observer.Name())
			return nil
		}
	}

	n.observers = append(n.observers, observer)

	return nil
}

// Unsubscribe removes observer. Unknown observers and observers of uncomparable types are ignored.
func (n *Notifier) Unsubscribe(observer Observer) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, o := range n.observers {
		if sameObserver(o, observer) {
			n.observers = append(n.observers[:i:i], n.observers[i+1:]...)
			return
		}
	}
}

func sameObserver(a, b Observer) bool {
	if a == nil || b == nil {
		return false
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() {
		return false
	}

	return va.Equal(vb)
}

// Subscribers returns the number of subscribed observers.
func (n *Notifier) Subscribers() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return len(n.observers)
}

// Publish delivers notification to every observer subscribed at the time of the call.
// Observers subscribing or unsubscribing during delivery take effect for the next Publish.
func (n *Notifier) Publish(ctx context.Context, notification Notification) {
	n.mu.RLock()
	snapshot := append([]Observer(nil), n.observers...)
	n.mu.RUnlock()

	for _, observer := range snapshot {
		n.deliver(ctx, observer, notification)
	}
}

func (n *Notifier) deliver(ctx context.Context, observer Observer, notification Notification) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.ErrorContext(ctx, logMsgObserverPanicked,
				logAttrObserver, observer.Name(),
				logAttrKind, string(notification.Kind),
				logAttrNotificationID, notification.ID.String(),
				logAttrError, fmt.Sprint(r),
			)
		}
	}()

	if err := observer.Notify(ctx, notification.clone()); err != nil {
		n.logger.ErrorContext(ctx, logMsgObserverFailed,
			logAttrObserver, observer.Name(),
			logAttrKind, string(notification.Kind),
			logAttrNotificationID, notification.ID.String(),
			logAttrError, err.Error(),
		)
	}
}
