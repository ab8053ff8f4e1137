package loanreport

import (
	"time"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
)

// OutstandingLoan is a line of the report for a loan that still holds its book.
type OutstandingLoan struct {
	LoanID    core.LoanIDString
	BookID    core.BookIDString
	UserID    core.UserIDString
	DueDate   time.Time
	IsOverdue bool
}

// BookCount is how often a book was lent, returned loans included.
type BookCount struct {
	BookID      core.BookIDString
	TimesLoaned int
}

// Report represents the query result.
type Report struct {
	GeneratedAt               time.Time
	TotalLoans                int
	ByStatus                  map[core.LoanStatus]int
	Outstanding               []OutstandingLoan
	OverdueCount              int
	BorrowersWithLoans        int
	BorrowersWithOverdueLoans int
	MostBorrowedBooks         []BookCount
}
