package core

import (
	"time"
)

// LoanCreatedEventType is the event type identifier.
const LoanCreatedEventType = "LoanCreated"

// LoanCreated represents when a book is lent to a user.
type LoanCreated struct {
	EventType  string
	LoanID     LoanIDString
	UserID     UserIDString
	BookID     BookIDString
	Category   string
	DueDate    time.Time
	OccurredAt OccurredAtTS
}

// BuildLoanCreated creates a new LoanCreated event.
func BuildLoanCreated(loan Loan, occurredAt time.Time) LoanCreated {
	return LoanCreated{
		EventType:  LoanCreatedEventType,
		LoanID:     loan.ID.String(),
		UserID:     loan.UserID.String(),
		BookID:     loan.BookID.String(),
		Category:   string(loan.Category),
		DueDate:    loan.DueDate,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e LoanCreated) IsEventType() string {
	return LoanCreatedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LoanCreated) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// HasRecipient returns the borrower.
func (e LoanCreated) HasRecipient() UserIDString {
	return e.UserID
}
