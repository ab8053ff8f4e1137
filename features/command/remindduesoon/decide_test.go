package remindduesoon_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
	"github.com/AntonStoeckl/library-loan-engine-go/features/command/remindduesoon"
)

func Test_Decide_Success_LoanDueWithinWindow(t *testing.T) {
	// arrange
	loanDate := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	loan := givenActiveLoan(loanDate)
	now := loan.DueDate.Add(-50 * time.Hour)

	// act
	result := remindduesoon.Decide(remindduesoon.State{LoanExists: true, Loan: loan}, remindduesoon.BuildCommand(loan.ID, now))

	// assert
	require.True(t, result.HasStateChange())
	require.NotNil(t, result.Loan.DueReminderSentFor)
	assert.True(t, loan.DueDate.Equal(*result.Loan.DueReminderSentFor))
	assert.Equal(t, core.LoanStatusActive, result.Loan.Status)

	event, ok := result.Event.(core.LoanDueSoon)
	assert.True(t, ok, "event should be LoanDueSoon")
	assert.Equal(t, 3, event.DaysUntilDue, "50 hours rounds up to 3 days")
}

func Test_Decide_Idempotent_WhenAlreadyRemindedForThisDueDate(t *testing.T) {
	// arrange
	loanDate := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	loan := givenActiveLoan(loanDate)
	now := loan.DueDate.Add(-24 * time.Hour)
	first := remindduesoon.Decide(remindduesoon.State{LoanExists: true, Loan: loan}, remindduesoon.BuildCommand(loan.ID, now))
	require.True(t, first.HasStateChange())

	// act
	second := remindduesoon.Decide(
		remindduesoon.State{LoanExists: true, Loan: first.Loan},
		remindduesoon.BuildCommand(loan.ID, now.Add(time.Hour)),
	)

	// assert
	assert.True(t, second.IsIdempotent())
}

func Test_Decide_Success_AfterRenewalMovedTheDueDate(t *testing.T) {
	// arrange
	loanDate := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	loan := givenActiveLoan(loanDate)
	oldDueDate := loan.DueDate
	loan.DueReminderSentFor = &oldDueDate
	loan.DueDate = oldDueDate.Add(10 * 24 * time.Hour)
	loan.RenewalCount = 1

	// act
	result := remindduesoon.Decide(
		remindduesoon.State{LoanExists: true, Loan: loan},
		remindduesoon.BuildCommand(loan.ID, loan.DueDate.Add(-24*time.Hour)),
	)

	// assert
	assert.True(t, result.HasStateChange())
}

func Test_Decide_Idempotent_OutsideWindowOrNotActive(t *testing.T) {
	loanDate := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name   string
		status core.LoanStatus
		offset time.Duration
	}{
		{name: "due in more than three days", status: core.LoanStatusActive, offset: -4 * 24 * time.Hour},
		{name: "already due", status: core.LoanStatusActive, offset: time.Hour},
		{name: "overdue loan", status: core.LoanStatusOverdue, offset: -24 * time.Hour},
		{name: "returned loan", status: core.LoanStatusReturned, offset: -24 * time.Hour},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			loan := givenActiveLoan(loanDate)
			loan.Status = tc.status

			// act
			result := remindduesoon.Decide(
				remindduesoon.State{LoanExists: true, Loan: loan},
				remindduesoon.BuildCommand(loan.ID, loan.DueDate.Add(tc.offset)),
			)

			// assert
			assert.True(t, result.IsIdempotent())
		})
	}
}

func Test_Decide_Error_WhenLoanDoesNotExist(t *testing.T) {
	result := remindduesoon.Decide(remindduesoon.State{}, remindduesoon.BuildCommand(uuid.New(), time.Now()))

	assert.ErrorIs(t, result.HasError(), core.ErrLoanNotFound)
}

func givenActiveLoan(loanDate time.Time) core.Loan {
	return core.BuildLoan(uuid.New(), uuid.New(), uuid.New(), core.LoanCategoryStandard, loanDate, loanDate.Add(14*24*time.Hour))
}
