package core

import (
	"time"

	"github.com/google/uuid"
)

// LoanStatus is the state of a Loan in its lifecycle.
//
//	Active  --return-->  Returned
//	Active  --sweep--->  Overdue  --return-->  Returned
//	Active  --renew--->  Active
type LoanStatus string

const (
	// LoanStatusActive is the initial state of every loan.
	LoanStatusActive LoanStatus = "ACTIVE"

	// LoanStatusOverdue is set by the overdue sweep once the effective due date has passed.
	LoanStatusOverdue LoanStatus = "OVERDUE"

	// LoanStatusReturned is terminal.
	LoanStatusReturned LoanStatus = "RETURNED"
)

// IsOutstanding reports whether a loan in this status still holds the book.
func (s LoanStatus) IsOutstanding() bool {
	return s == LoanStatusActive || s == LoanStatusOverdue
}

// IsValid reports whether s is one of the known statuses.
func (s LoanStatus) IsValid() bool {
	switch s {
	case LoanStatusActive, LoanStatusOverdue, LoanStatusReturned:
		return true
	default:
		return false
	}
}

// Loans is a slice of Loan instances.
type Loans = []Loan

// Loan is a time-bounded borrowing relationship between a user and a book.
//
// ID, UserID, BookID, Category and LoanDate never change after creation.
// DueDate and RenewalCount only change through renewal and are frozen once the loan is returned.
type Loan struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	BookID             uuid.UUID
	Category           LoanCategory
	LoanDate           time.Time
	DueDate            time.Time
	ReturnDate         *time.Time
	Status             LoanStatus
	RenewalCount       int
	DueReminderSentFor *time.Time
	Version            uint
}

// BuildLoan creates a new Loan in the Active state.
func BuildLoan(
	id uuid.UUID,
	userID uuid.UUID,
	bookID uuid.UUID,
	category LoanCategory,
	loanDate time.Time,
	dueDate time.Time,
) Loan {

	return Loan{
		ID:           id,
		UserID:       userID,
		BookID:       bookID,
		Category:     category,
		LoanDate:     ToOccurredAt(loanDate),
		DueDate:      ToOccurredAt(dueDate),
		Status:       LoanStatusActive,
		RenewalCount: 0,
	}
}

// Policy returns the policy of the loan's category.
func (l Loan) Policy() LoanPolicy {
	return PolicyFor(l.Category)
}

// EffectiveDueDate is the due date shifted by the category's grace days.
func (l Loan) EffectiveDueDate() time.Time {
	return l.DueDate.Add(Days(l.Policy().ExtraGraceDays))
}

// IsPastDueAt reports whether now is after the effective due date, regardless of the stored status.
func (l Loan) IsPastDueAt(now time.Time) bool {
	return now.After(l.EffectiveDueDate())
}

// IsReturned reports whether the loan reached its terminal state.
func (l Loan) IsReturned() bool {
	return l.Status == LoanStatusReturned
}

// WasRemindedFor reports whether a due-soon reminder was already sent for the current due date.
func (l Loan) WasRemindedFor(dueDate time.Time) bool {
	return l.DueReminderSentFor != nil && l.DueReminderSentFor.Equal(dueDate)
}

// Clone returns a copy of the loan that shares no pointers with l.
func (l Loan) Clone() Loan {
	clone := l

	if l.ReturnDate != nil {
		returnDate := *l.ReturnDate
		clone.ReturnDate = &returnDate
	}

	if l.DueReminderSentFor != nil {
		remindedFor := *l.DueReminderSentFor
		clone.DueReminderSentFor = &remindedFor
	}

	return clone
}
