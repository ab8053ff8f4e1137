package core

import (
	"math"
	"time"
)

// Instead of implementing full value objects, I'm using some alias types and helper methods here ...

// LoanIDString represents a loan identifier
type LoanIDString = string

// BookIDString represents a book identifier
type BookIDString = string

// UserIDString represents a user identifier
type UserIDString = string

// OccurredAtTS represents when an event occurred
type OccurredAtTS = time.Time

const (
	// LoanDurationDays is the default loan period, also used to compute the new due date on renewal.
	LoanDurationDays = 14

	// MaxRenewals is the renewal limit of the standard loan category.
	MaxRenewals = 2

	// MaxActiveLoans is the outstanding loan limit of a reader.
	MaxActiveLoans = 3

	// DueSoonWindowDays is how many days before the due date a reminder is sent.
	DueSoonWindowDays = 3

	day = 24 * time.Hour
)

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}

// Days converts a number of days into a time.Duration.
func Days(n int) time.Duration {
	return time.Duration(n) * day
}

// DaysOverdue returns ceil((now - dueDate) / 1 day), or 0 if the due date has not passed.
func DaysOverdue(dueDate time.Time, now time.Time) int {
	if !now.After(dueDate) {
		return 0
	}

	return int(math.Ceil(float64(now.Sub(dueDate)) / float64(day)))
}

// DaysUntil returns ceil((dueDate - now) / 1 day), or 0 if the due date has passed.
func DaysUntil(dueDate time.Time, now time.Time) int {
	if !dueDate.After(now) {
		return 0
	}

	return int(math.Ceil(float64(dueDate.Sub(now)) / float64(day)))
}
