package loanreport

import (
	"cmp"
	"slices"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
)

// Project builds the loan report from all stored loans.
// This is a pure function with no side effects.
//
// Query Logic:
//
//	GIVEN: All stored loans
//	WHEN: LoanReport query is executed
//	THEN: Report is returned
//	INCLUDES: Active and Overdue loans as outstanding lines, sorted by due date
//	DETAILS: MostBorrowedBooks counts every loan, sorted by count then book id
func Project(loans core.Loans, query Query) Report {
	report := Report{
		GeneratedAt: query.At,
		TotalLoans:  len(loans),
		ByStatus: map[core.LoanStatus]int{
			core.LoanStatusActive:   0,
			core.LoanStatusOverdue:  0,
			core.LoanStatusReturned: 0,
		},
		Outstanding: make([]OutstandingLoan, 0),
	}

	borrowers := make(map[string]struct{})
	overdueBorrowers := make(map[string]struct{})
	timesLoaned := make(map[string]int)

	for _, loan := range loans {
		report.ByStatus[loan.Status]++
		timesLoaned[loan.BookID.String()]++

		if !loan.Status.IsOutstanding() {
			continue
		}

		isOverdue := loan.Status == core.LoanStatusOverdue || loan.IsPastDueAt(query.At)

		report.Outstanding = append(report.Outstanding, OutstandingLoan{
			LoanID:    loan.ID.String(),
			BookID:    loan.BookID.String(),
			UserID:    loan.UserID.String(),
			DueDate:   loan.DueDate,
			IsOverdue: isOverdue,
		})

		borrowers[loan.UserID.String()] = struct{}{}

		if isOverdue {
			report.OverdueCount++
			overdueBorrowers[loan.UserID.String()] = struct{}{}
		}
	}

	slices.SortFunc(report.Outstanding, func(a, b OutstandingLoan) int {
		if c := a.DueDate.Compare(b.DueDate); c != 0 {
			return c
		}

		return cmp.Compare(a.LoanID, b.LoanID)
	})

	report.BorrowersWithLoans = len(borrowers)
	report.BorrowersWithOverdueLoans = len(overdueBorrowers)
	report.MostBorrowedBooks = topBooks(timesLoaned, query.TopBooks)

	return report
}

func topBooks(timesLoaned map[string]int, limit int) []BookCount {
	counts := make([]BookCount, 0, len(timesLoaned))
	for bookID, n := range timesLoaned {
		counts = append(counts, BookCount{BookID: bookID, TimesLoaned: n})
	}

	slices.SortFunc(counts, func(a, b BookCount) int {
		if c := cmp.Compare(b.TimesLoaned, a.TimesLoaned); c != 0 {
			return c
		}

		return cmp.Compare(a.BookID, b.BookID)
	})

	if len(counts) > limit {
		counts = counts[:limit]
	}

	return counts
}
