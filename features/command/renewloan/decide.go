package renewloan

import (
	"github.com/AntonStoeckl/library-loan-engine-go/core"
)

// State holds the loan as currently stored.
type State struct {
	LoanExists bool
	Loan       core.Loan
}

// Decide implements the business logic to determine whether a loan can be renewed.
//
// Business Rules:
//
//	GIVEN: An Active loan with LoanID
//	WHEN: RenewLoan command is received
//	THEN: DueDate = now + 14 days, RenewalCount + 1, a LoanRenewed event is produced
//	ERROR: ErrLoanNotFound if the loan does not exist
//	ERROR: ErrAlreadyReturned if the loan is Returned
//	ERROR: ErrOverdueCannotRenew if the loan is Overdue or now is past the effective due date
//
// The effective due date includes the category's grace days, so a priority loan can still be renewed
// up to 7 days after its stored DueDate.
//	ERROR: ErrRenewalsNotAllowed if the loan category forbids renewals
//	ERROR: ErrRenewalLimitExceeded if the category's renewal limit is reached
func Decide(s State, command Command) core.DecisionResult {
	if !s.LoanExists {
		return core.ErrorDecision(core.ErrLoanNotFound)
	}

	switch s.Loan.Status {
	case core.LoanStatusReturned:
		return core.ErrorDecision(core.ErrAlreadyReturned)
	case core.LoanStatusOverdue:
		return core.ErrorDecision(core.ErrOverdueCannotRenew)
	}

	policy := s.Loan.Policy()

	if !policy.RenewalsAllowed {
		return core.ErrorDecision(core.ErrRenewalsNotAllowed)
	}

	if s.Loan.RenewalCount >= policy.MaxRenewals {
		return core.ErrorDecision(core.ErrRenewalLimitExceeded)
	}

	if s.Loan.IsPastDueAt(command.OccurredAt) {
		return core.ErrorDecision(core.ErrOverdueCannotRenew)
	}

	renewed := s.Loan
	renewed.DueDate = command.OccurredAt.Add(core.Days(core.LoanDurationDays))
	renewed.RenewalCount++

	return core.SuccessDecision(renewed, core.BuildLoanRenewed(renewed, command.OccurredAt))
}
