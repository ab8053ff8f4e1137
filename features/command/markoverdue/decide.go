package markoverdue

import (
	"github.com/AntonStoeckl/library-loan-engine-go/core"
)

// State holds the loan as currently stored.
type State struct {
	LoanExists bool
	Loan       core.Loan
}

// Decide implements the business logic to determine whether a loan became overdue.
//
// Business Rules:
//
//	GIVEN: An Active loan whose effective due date is before the sweep time
//	WHEN: MarkLoanOverdue command is received
//	THEN: the loan becomes Overdue, a LoanOverdue event is produced
//	IDEMPOTENCY: Overdue, Returned and not yet due loans are left unchanged
//	ERROR: ErrLoanNotFound if the loan does not exist
func Decide(s State, command Command) core.DecisionResult {
	if !s.LoanExists {
		return core.ErrorDecision(core.ErrLoanNotFound)
	}

	if s.Loan.Status != core.LoanStatusActive {
		return core.IdempotentDecision()
	}

	if !s.Loan.IsPastDueAt(command.OccurredAt) {
		return core.IdempotentDecision()
	}

	overdue := s.Loan
	overdue.Status = core.LoanStatusOverdue

	return core.SuccessDecision(overdue, core.BuildLoanOverdue(overdue, command.OccurredAt))
}
