package core

import (
	"time"
)

// LoanDueSoonEventType is the event type identifier.
const LoanDueSoonEventType = "LoanDueSoon"

// LoanDueSoon represents a reminder that an active loan reaches its due date within a few days.
type LoanDueSoon struct {
	EventType    string
	LoanID       LoanIDString
	UserID       UserIDString
	BookID       BookIDString
	DueDate      time.Time
	DaysUntilDue int
	OccurredAt   OccurredAtTS
}

// BuildLoanDueSoon creates a new LoanDueSoon event.
func BuildLoanDueSoon(loan Loan, occurredAt time.Time) LoanDueSoon {
	return LoanDueSoon{
		EventType:    LoanDueSoonEventType,
		LoanID:       loan.ID.String(),
		UserID:       loan.UserID.String(),
		BookID:       loan.BookID.String(),
		DueDate:      loan.DueDate,
		DaysUntilDue: DaysUntil(loan.DueDate, occurredAt),
		OccurredAt:   ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e LoanDueSoon) IsEventType() string {
	return LoanDueSoonEventType
}

// HasOccurredAt returns when this event occurred.
func (e LoanDueSoon) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// HasRecipient returns the borrower.
func (e LoanDueSoon) HasRecipient() UserIDString {
	return e.UserID
}
