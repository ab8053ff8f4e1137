package renewloan_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
	"github.com/AntonStoeckl/library-loan-engine-go/features/command/renewloan"
)

func Test_Decide_Success_ResetsDueDateFromNow(t *testing.T) {
	// arrange
	loanDate := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	loan := givenActiveLoan(loanDate, core.LoanCategoryStandard)
	now := loanDate.Add(5 * 24 * time.Hour)

	// act
	result := renewloan.Decide(renewloan.State{LoanExists: true, Loan: loan}, renewloan.BuildCommand(loan.ID, now))

	// assert
	assert.NoError(t, result.HasError())
	assert.True(t, loanDate.Add(19*24*time.Hour).Equal(result.Loan.DueDate), "T+5 renewal yields T+19")
	assert.Equal(t, 1, result.Loan.RenewalCount)
	assert.Equal(t, core.LoanStatusActive, result.Loan.Status)

	event, ok := result.Event.(core.LoanRenewed)
	assert.True(t, ok, "event should be LoanRenewed")
	assert.Equal(t, 1, event.RenewalCount)
}

func Test_Decide_Success_AtExactlyTheDueDate(t *testing.T) {
	// arrange
	loanDate := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	loan := givenActiveLoan(loanDate, core.LoanCategoryStandard)

	// act
	result := renewloan.Decide(renewloan.State{LoanExists: true, Loan: loan}, renewloan.BuildCommand(loan.ID, loan.DueDate))

	// assert
	assert.NoError(t, result.HasError())
}

func Test_Decide_Success_PriorityLoanWithinGraceDays(t *testing.T) {
	// arrange
	loanDate := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	loan := givenActiveLoan(loanDate, core.LoanCategoryPriority)

	// act
	result := renewloan.Decide(
		renewloan.State{LoanExists: true, Loan: loan},
		renewloan.BuildCommand(loan.ID, loan.DueDate.Add(2*24*time.Hour)),
	)

	// assert
	assert.NoError(t, result.HasError())
}

func Test_Decide_RenewalLimit_ThirdRenewalFails(t *testing.T) {
	// arrange
	loanDate := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	state := renewloan.State{LoanExists: true, Loan: givenActiveLoan(loanDate, core.LoanCategoryStandard)}
	now := loanDate

	// act + assert
	for i := 1; i <= core.MaxRenewals; i++ {
		now = now.Add(24 * time.Hour)
		result := renewloan.Decide(state, renewloan.BuildCommand(state.Loan.ID, now))
		assert.NoError(t, result.HasError())
		assert.Equal(t, i, result.Loan.RenewalCount)
		state.Loan = result.Loan
	}

	result := renewloan.Decide(state, renewloan.BuildCommand(state.Loan.ID, now.Add(time.Hour)))
	assert.ErrorIs(t, result.HasError(), core.ErrRenewalLimitExceeded)
	assert.Nil(t, result.Event)
}

func Test_Decide_BusinessErrors(t *testing.T) {
	loanDate := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name          string
		loan          func() core.Loan
		now           time.Time
		expectedError error
	}{
		{
			name: "loan already returned",
			loan: func() core.Loan {
				l := givenActiveLoan(loanDate, core.LoanCategoryStandard)
				l.Status = core.LoanStatusReturned
				return l
			},
			now:           loanDate.Add(24 * time.Hour),
			expectedError: core.ErrAlreadyReturned,
		},
		{
			name: "loan flagged overdue by the sweep",
			loan: func() core.Loan {
				l := givenActiveLoan(loanDate, core.LoanCategoryStandard)
				l.Status = core.LoanStatusOverdue
				return l
			},
			now:           loanDate.Add(24 * time.Hour),
			expectedError: core.ErrOverdueCannotRenew,
		},
		{
			name: "due date passed but sweep has not run yet",
			loan: func() core.Loan {
				return givenActiveLoan(loanDate, core.LoanCategoryStandard)
			},
			now:           loanDate.Add(15 * 24 * time.Hour),
			expectedError: core.ErrOverdueCannotRenew,
		},
		{
			name: "restricted loans cannot be renewed",
			loan: func() core.Loan {
				return givenActiveLoan(loanDate, core.LoanCategoryRestricted)
			},
			now:           loanDate.Add(24 * time.Hour),
			expectedError: core.ErrRenewalsNotAllowed,
		},
		{
			name: "renewal count at limit",
			loan: func() core.Loan {
				l := givenActiveLoan(loanDate, core.LoanCategoryStandard)
				l.RenewalCount = core.MaxRenewals
				return l
			},
			now:           loanDate.Add(24 * time.Hour),
			expectedError: core.ErrRenewalLimitExceeded,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			loan := tc.loan()

			// act
			result := renewloan.Decide(renewloan.State{LoanExists: true, Loan: loan}, renewloan.BuildCommand(loan.ID, tc.now))

			// assert
			assert.ErrorIs(t, result.HasError(), tc.expectedError)
			assert.False(t, result.HasStateChange())
		})
	}
}

func Test_Decide_Error_WhenLoanDoesNotExist(t *testing.T) {
	result := renewloan.Decide(renewloan.State{}, renewloan.BuildCommand(uuid.New(), time.Now()))

	assert.ErrorIs(t, result.HasError(), core.ErrLoanNotFound)
}

func Test_Decide_AcademicLoanAllowsFiveRenewals(t *testing.T) {
	// arrange
	loanDate := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	loan := givenActiveLoan(loanDate, core.LoanCategoryAcademic)
	loan.RenewalCount = 4

	// act
	result := renewloan.Decide(renewloan.State{LoanExists: true, Loan: loan}, renewloan.BuildCommand(loan.ID, loanDate.Add(time.Hour)))

	// assert
	assert.NoError(t, result.HasError())
	assert.Equal(t, 5, result.Loan.RenewalCount)
}

func givenActiveLoan(loanDate time.Time, category core.LoanCategory) core.Loan {
	return core.BuildLoan(uuid.New(), uuid.New(), uuid.New(), category, loanDate, loanDate.Add(14*24*time.Hour))
}
