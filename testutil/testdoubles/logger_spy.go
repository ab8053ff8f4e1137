package testdoubles

import (
	"context"
	"fmt"
	"sync"
)

// LoggerSpy captures log calls for inspection in tests.
// It implements both the plain and the contextual logger contracts.
type LoggerSpy struct {
	mu      sync.Mutex
	records []SpyLogRecord
}

// SpyLogRecord represents a recorded log call.
type SpyLogRecord struct {
	Level      string
	Message    string
	Args       []any
	Contextual bool
}

// Attr returns the value logged for key, or nil if the key was not logged.
func (r SpyLogRecord) Attr(key string) any {
	for i := 0; i+1 < len(r.Args); i += 2 {
		if fmt.Sprint(r.Args[i]) == key {
			return r.Args[i+1]
		}
	}

	return nil
}

// NewLoggerSpy creates an empty LoggerSpy.
func NewLoggerSpy() *LoggerSpy {
	return &LoggerSpy{}
}

func (s *LoggerSpy) Debug(msg string, args ...any) { s.record("debug", msg, false, args) }
func (s *LoggerSpy) Info(msg string, args ...any) { s.record("info", msg, false, args) }
func (s *LoggerSpy) Warn(msg string, args ...any) { s.record("warn", msg, false, args) }
func (s *LoggerSpy) Error(msg string, args ...any) { s.record("error", msg, false, args) }

func (s *LoggerSpy) DebugContext(_ context.Context, msg string, args ...any) {
	s.record("debug", msg, true, args)
}

func (s *LoggerSpy) InfoContext(_ context.Context, msg string, args ...any) {
	s.record("info", msg, true, args)
}

func (s *LoggerSpy) WarnContext(_ context.Context, msg string, args ...any) {
	s.record("warn", msg, true, args)
}

func (s *LoggerSpy) ErrorContext(_ context.Context, msg string, args ...any) {
	s.record("error", msg, true, args)
}

// Records returns a copy of all captured log records.
func (s *LoggerSpy) Records() []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyLogRecord(nil), s.records...)
}

// RecordsWithMessage returns the captured records with the given message.
func (s *LoggerSpy) RecordsWithMessage(msg string) []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found []SpyLogRecord
	for _, record := range s.records {
		if record.Message == msg {
			found = append(found, record)
		}
	}

	return found
}

// HasLog checks if a log with the specified level and message exists.
func (s *LoggerSpy) HasLog(level, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.Level == level && record.Message == msg {
			return true
		}
	}

	return false
}

// Reset clears all recorded log calls.
func (s *LoggerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
}

func (s *LoggerSpy) record(level, msg string, contextual bool, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, SpyLogRecord{
		Level:      level,
		Message:    msg,
		Args:       append([]any(nil), args...),
		Contextual: contextual,
	})
}
