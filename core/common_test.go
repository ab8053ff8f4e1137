package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
)

func Test_DaysOverdue(t *testing.T) {
	dueDate := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		now      time.Time
		expected int
	}{
		{name: "before due date", now: dueDate.Add(-time.Hour), expected: 0},
		{name: "exactly at due date", now: dueDate, expected: 0},
		{name: "one second late", now: dueDate.Add(time.Second), expected: 1},
		{name: "exactly one day late", now: dueDate.Add(24 * time.Hour), expected: 1},
		{name: "one day and one hour late", now: dueDate.Add(25 * time.Hour), expected: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, core.DaysOverdue(dueDate, tc.now))
		})
	}
}

func Test_DaysUntil(t *testing.T) {
	dueDate := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, core.DaysUntil(dueDate, dueDate))
	assert.Equal(t, 1, core.DaysUntil(dueDate, dueDate.Add(-time.Hour)))
	assert.Equal(t, 3, core.DaysUntil(dueDate, dueDate.Add(-60*time.Hour)))
}

func Test_ToOccurredAt_NormalizesToUTCMicroseconds(t *testing.T) {
	location := time.FixedZone("UTC+2", 2*60*60)
	in := time.Date(2025, 3, 1, 14, 0, 0, 123456789, location)

	out := core.ToOccurredAt(in)

	assert.Equal(t, time.UTC, out.Location())
	assert.Equal(t, 123456000, out.Nanosecond())
	assert.True(t, out.Equal(in.Truncate(time.Microsecond)))
}
