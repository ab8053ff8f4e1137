package loanstore

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
)

/***** Filter *****/

// Filter selects loans. All set criteria must match; an empty Filter matches every loan.
type Filter struct {
	userID    uuid.UUID
	bookID    uuid.UUID
	statuses  []core.LoanStatus
	dueBefore time.Time
}

// UserID returns the borrower criterion or uuid.Nil.
func (f Filter) UserID() uuid.UUID {
	return f.userID
}

// BookID returns the book criterion or uuid.Nil.
func (f Filter) BookID() uuid.UUID {
	return f.bookID
}

// Statuses returns the accepted statuses, sorted and without duplicates.
func (f Filter) Statuses() []core.LoanStatus {
	return f.statuses
}

// DueBefore returns the exclusive upper bound of the due date or the zero time.
func (f Filter) DueBefore() time.Time {
	return f.dueBefore
}

// IsEmpty reports whether the filter has no criteria at all.
func (f Filter) IsEmpty() bool {
	return f.userID == uuid.Nil && f.bookID == uuid.Nil && len(f.statuses) == 0 && f.dueBefore.IsZero()
}

// Matches evaluates the filter against a loan in memory.
func (f Filter) Matches(loan core.Loan) bool {
	if f.userID != uuid.Nil && loan.UserID != f.userID {
		return false
	}

	if f.bookID != uuid.Nil && loan.BookID != f.bookID {
		return false
	}

	if len(f.statuses) > 0 && !slices.Contains(f.statuses, loan.Status) {
		return false
	}

	if !f.dueBefore.IsZero() && !loan.DueDate.Before(f.dueBefore) {
		return false
	}

	return true
}

/***** FilterBuilder *****/

// FilterBuilder builds a Filter that all engines understand.
// Engines evaluate it in memory with Filter.Matches or translate it into a WHERE clause.
type FilterBuilder interface {
	// ForUser restricts the result to loans of one borrower.
	ForUser(userID uuid.UUID) FilterBuilder

	// ForBook restricts the result to loans of one book.
	ForBook(bookID uuid.UUID) FilterBuilder

	// WithStatusIn restricts the result to loans in any of the given statuses.
	//
	// It sanitizes the input:
	//   - removing invalid statuses
	//   - sorting the statuses
	//   - removing duplicate statuses
	WithStatusIn(status core.LoanStatus, statuses ...core.LoanStatus) FilterBuilder

	// DueBefore restricts the result to loans whose due date is strictly before t.
	DueBefore(t time.Time) FilterBuilder

	// Finalize returns the Filter.
	Finalize() Filter
}

type filterBuilder struct {
	filter Filter
}

// BuildFilter creates a FilterBuilder which must eventually be finalized with Finalize().
func BuildFilter() FilterBuilder {
	return filterBuilder{}
}

// MatchingAnyLoan directly creates an empty Filter.
func MatchingAnyLoan() Filter {
	return Filter{}
}

func (fb filterBuilder) ForUser(userID uuid.UUID) FilterBuilder {
	fb.filter.userID = userID

	return fb
}

func (fb filterBuilder) ForBook(bookID uuid.UUID) FilterBuilder {
	fb.filter.bookID = bookID

	return fb
}

func (fb filterBuilder) WithStatusIn(status core.LoanStatus, statuses ...core.LoanStatus) FilterBuilder {
	all := append([]core.LoanStatus{status}, statuses...)
	all = append(all, fb.filter.statuses...)
	all = slices.DeleteFunc(all, func(s core.LoanStatus) bool { return !s.IsValid() })
	slices.Sort(all)
	all = slices.Compact(all)
	fb.filter.statuses = slices.Clip(all)

	return fb
}

func (fb filterBuilder) DueBefore(t time.Time) FilterBuilder {
	fb.filter.dueBefore = t.UTC()

	return fb
}

func (fb filterBuilder) Finalize() Filter {
	return fb.filter
}

/***** Common filters *****/

// OutstandingLoansOf selects the Active and Overdue loans of a borrower.
func OutstandingLoansOf(userID uuid.UUID) Filter {
	return BuildFilter().
		ForUser(userID).
		WithStatusIn(core.LoanStatusActive, core.LoanStatusOverdue).
		Finalize()
}

// ActiveLoansOf selects the Active loans of a borrower.
func ActiveLoansOf(userID uuid.UUID) Filter {
	return BuildFilter().
		ForUser(userID).
		WithStatusIn(core.LoanStatusActive).
		Finalize()
}

// ActiveLoans selects every Active loan.
func ActiveLoans() Filter {
	return BuildFilter().
		WithStatusIn(core.LoanStatusActive).
		Finalize()
}
