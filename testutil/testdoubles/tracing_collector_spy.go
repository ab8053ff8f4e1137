package testdoubles

import (
	"context"
	"maps"
	"sync"

	"github.com/AntonStoeckl/library-loan-engine-go/shell"
)

// TracingCollectorSpy captures started and finished spans for inspection in tests.
type TracingCollectorSpy struct {
	mu    sync.Mutex
	spans []*SpySpan
}

// SpySpan is a span started through a TracingCollectorSpy.
type SpySpan struct {
	mu          sync.Mutex
	Name        string
	StartAttrs  map[string]string
	Attrs       map[string]string
	Status      string
	FinishAttrs map[string]string
	Finished    bool
}

// NewTracingCollectorSpy creates an empty TracingCollectorSpy.
func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{}
}

// StartSpan records a new span and returns it together with the unchanged context.
func (s *TracingCollectorSpy) StartSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, shell.SpanContext) {
	span := &SpySpan{
		Name:       name,
		StartAttrs: maps.Clone(attrs),
		Attrs:      map[string]string{},
	}

	s.mu.Lock()
	s.spans = append(s.spans, span)
	s.mu.Unlock()

	return ctx, span
}

// FinishSpan marks span as finished with status and attrs.
func (s *TracingCollectorSpy) FinishSpan(spanCtx shell.SpanContext, status string, attrs map[string]string) {
	span, ok := spanCtx.(*SpySpan)
	if !ok {
		return
	}

	span.mu.Lock()
	defer span.mu.Unlock()

	span.Status = status
	span.FinishAttrs = maps.Clone(attrs)
	span.Finished = true
}

// Spans returns all spans started so far.
func (s *TracingCollectorSpy) Spans() []*SpySpan {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*SpySpan(nil), s.spans...)
}

// SetStatus implements the span contract.
func (sp *SpySpan) SetStatus(status string) {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	sp.Status = status
}

// AddAttribute implements the span contract.
func (sp *SpySpan) AddAttribute(key, value string) {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	sp.Attrs[key] = value
}
