package loanreport_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
	"github.com/AntonStoeckl/library-loan-engine-go/features/query/loanreport"
)

func Test_Project_CountsAndOutstandingLines(t *testing.T) {
	// arrange
	loanDate := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	now := loanDate.Add(20 * 24 * time.Hour)
	alice, bob := uuid.New(), uuid.New()
	popularBook := uuid.New()

	returned := givenLoan(alice, popularBook, loanDate)
	returnDate := loanDate.Add(24 * time.Hour)
	returned.Status = core.LoanStatusReturned
	returned.ReturnDate = &returnDate

	pastDueNotSwept := givenLoan(alice, popularBook, loanDate.Add(2*24*time.Hour))
	flaggedOverdue := givenLoan(bob, uuid.New(), loanDate)
	flaggedOverdue.Status = core.LoanStatusOverdue
	notDue := givenLoan(bob, uuid.New(), now.Add(-24*time.Hour))

	loans := core.Loans{returned, pastDueNotSwept, flaggedOverdue, notDue}

	// act
	report := loanreport.Project(loans, loanreport.BuildQuery(now, 0))

	// assert
	assert.Equal(t, 4, report.TotalLoans)
	assert.Equal(t, 2, report.ByStatus[core.LoanStatusActive])
	assert.Equal(t, 1, report.ByStatus[core.LoanStatusOverdue])
	assert.Equal(t, 1, report.ByStatus[core.LoanStatusReturned])
	assert.Equal(t, 2, report.OverdueCount)
	assert.Equal(t, 2, report.BorrowersWithLoans)
	assert.Equal(t, 2, report.BorrowersWithOverdueLoans)

	require.Len(t, report.Outstanding, 3)
	assert.Equal(t, flaggedOverdue.ID.String(), report.Outstanding[0].LoanID, "sorted by due date")
	assert.True(t, report.Outstanding[0].IsOverdue)
	assert.False(t, report.Outstanding[2].IsOverdue)

	require.NotEmpty(t, report.MostBorrowedBooks)
	assert.Equal(t, popularBook.String(), report.MostBorrowedBooks[0].BookID)
	assert.Equal(t, 2, report.MostBorrowedBooks[0].TimesLoaned)
}

func Test_Project_LimitsMostBorrowedBooks(t *testing.T) {
	// arrange
	loanDate := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	loans := make(core.Loans, 0, 8)
	for range 8 {
		loans = append(loans, givenLoan(uuid.New(), uuid.New(), loanDate))
	}

	// act
	report := loanreport.Project(loans, loanreport.BuildQuery(loanDate, 3))

	// assert
	assert.Len(t, report.MostBorrowedBooks, 3)
}

func Test_Project_EmptyLoans(t *testing.T) {
	report := loanreport.Project(nil, loanreport.BuildQuery(time.Now(), 5))

	assert.Equal(t, 0, report.TotalLoans)
	assert.Empty(t, report.Outstanding)
	assert.Empty(t, report.MostBorrowedBooks)
}

func givenLoan(userID uuid.UUID, bookID uuid.UUID, loanDate time.Time) core.Loan {
	return core.BuildLoan(uuid.New(), userID, bookID, core.LoanCategoryStandard, loanDate, loanDate.Add(14*24*time.Hour))
}
