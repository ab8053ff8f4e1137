package loanstore_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
	"github.com/AntonStoeckl/library-loan-engine-go/loanstore"
)

func Test_FilterBuilder_SanitizesStatuses(t *testing.T) {
	// act
	filter := loanstore.BuildFilter().
		WithStatusIn(core.LoanStatusOverdue, core.LoanStatusActive, "", core.LoanStatusOverdue, "LOST").
		Finalize()

	// assert
	assert.Equal(t, []core.LoanStatus{core.LoanStatusActive, core.LoanStatusOverdue}, filter.Statuses())
	assert.False(t, filter.IsEmpty())
}

func Test_MatchingAnyLoan_IsEmptyAndMatchesEverything(t *testing.T) {
	filter := loanstore.MatchingAnyLoan()

	assert.True(t, filter.IsEmpty())
	assert.True(t, filter.Matches(givenLoan(uuid.New(), uuid.New())))
}

func Test_Filter_Matches(t *testing.T) {
	userID := uuid.New()
	bookID := uuid.New()
	loan := givenLoan(userID, bookID)

	tests := []struct {
		name     string
		filter   loanstore.Filter
		expected bool
	}{
		{
			name:     "same user",
			filter:   loanstore.BuildFilter().ForUser(userID).Finalize(),
			expected: true,
		},
		{
			name:     "other user",
			filter:   loanstore.BuildFilter().ForUser(uuid.New()).Finalize(),
			expected: false,
		},
		{
			name:     "other book",
			filter:   loanstore.BuildFilter().ForUser(userID).ForBook(uuid.New()).Finalize(),
			expected: false,
		},
		{
			name:     "outstanding loans of the user",
			filter:   loanstore.OutstandingLoansOf(userID),
			expected: true,
		},
		{
			name:     "status not accepted",
			filter:   loanstore.BuildFilter().WithStatusIn(core.LoanStatusReturned).Finalize(),
			expected: false,
		},
		{
			name:     "due before a later time",
			filter:   loanstore.BuildFilter().DueBefore(loan.DueDate.Add(time.Second)).Finalize(),
			expected: true,
		},
		{
			name:     "due before is exclusive",
			filter:   loanstore.BuildFilter().DueBefore(loan.DueDate).Finalize(),
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.filter.Matches(loan))
		})
	}
}

func givenLoan(userID uuid.UUID, bookID uuid.UUID) core.Loan {
	loanDate := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return core.BuildLoan(uuid.New(), userID, bookID, core.LoanCategoryStandard, loanDate, loanDate.Add(core.Days(14)))
}
