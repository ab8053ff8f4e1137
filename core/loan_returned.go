package core

import (
	"time"
)

// LoanReturnedEventType is the event type identifier.
const LoanReturnedEventType = "LoanReturned"

// LoanReturned represents when a borrowed book is returned.
type LoanReturned struct {
	EventType  string
	LoanID     LoanIDString
	UserID     UserIDString
	BookID     BookIDString
	DueDate    time.Time
	WasOverdue bool
	OccurredAt OccurredAtTS
}

// BuildLoanReturned creates a new LoanReturned event.
func BuildLoanReturned(loan Loan, wasOverdue bool, occurredAt time.Time) LoanReturned {
	return LoanReturned{
		EventType:  LoanReturnedEventType,
		LoanID:     loan.ID.String(),
		UserID:     loan.UserID.String(),
		BookID:     loan.BookID.String(),
		DueDate:    loan.DueDate,
		WasOverdue: wasOverdue,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e LoanReturned) IsEventType() string {
	return LoanReturnedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LoanReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// HasRecipient returns the borrower.
func (e LoanReturned) HasRecipient() UserIDString {
	return e.UserID
}
