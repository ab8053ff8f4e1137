package core

import (
	"time"
)

// LoanRenewedEventType is the event type identifier.
const LoanRenewedEventType = "LoanRenewed"

// LoanRenewed represents when the due date of an active loan is reset.
type LoanRenewed struct {
	EventType    string
	LoanID       LoanIDString
	UserID       UserIDString
	BookID       BookIDString
	DueDate      time.Time
	RenewalCount int
	OccurredAt   OccurredAtTS
}

// BuildLoanRenewed creates a new LoanRenewed event from the already renewed loan.
func BuildLoanRenewed(loan Loan, occurredAt time.Time) LoanRenewed {
	return LoanRenewed{
		EventType:    LoanRenewedEventType,
		LoanID:       loan.ID.String(),
		UserID:       loan.UserID.String(),
		BookID:       loan.BookID.String(),
		DueDate:      loan.DueDate,
		RenewalCount: loan.RenewalCount,
		OccurredAt:   ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e LoanRenewed) IsEventType() string {
	return LoanRenewedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LoanRenewed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// HasRecipient returns the borrower.
func (e LoanRenewed) HasRecipient() UserIDString {
	return e.UserID
}
