package core

import (
	"time"
)

// LoanOverdueEventType is the event type identifier.
const LoanOverdueEventType = "LoanOverdue"

// LoanOverdue represents when the overdue sweep flags an active loan as overdue.
type LoanOverdue struct {
	EventType   string
	LoanID      LoanIDString
	UserID      UserIDString
	BookID      BookIDString
	DueDate     time.Time
	DaysOverdue int
	OccurredAt  OccurredAtTS
}

// BuildLoanOverdue creates a new LoanOverdue event.
func BuildLoanOverdue(loan Loan, occurredAt time.Time) LoanOverdue {
	return LoanOverdue{
		EventType:   LoanOverdueEventType,
		LoanID:      loan.ID.String(),
		UserID:      loan.UserID.String(),
		BookID:      loan.BookID.String(),
		DueDate:     loan.DueDate,
		DaysOverdue: DaysOverdue(loan.DueDate, occurredAt),
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e LoanOverdue) IsEventType() string {
	return LoanOverdueEventType
}

// HasOccurredAt returns when this event occurred.
func (e LoanOverdue) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// HasRecipient returns the borrower.
func (e LoanOverdue) HasRecipient() UserIDString {
	return e.UserID
}
