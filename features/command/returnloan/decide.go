package returnloan

import (
	"github.com/AntonStoeckl/library-loan-engine-go/core"
)

// State holds the loan as currently stored.
type State struct {
	LoanExists bool
	Loan       core.Loan
}

// Decide implements the business logic to determine whether a loan can be returned.
//
// Business Rules:
//
//	GIVEN: An outstanding loan with LoanID
//	WHEN: ReturnLoan command is received
//	THEN: the loan becomes Returned with ReturnDate set, a LoanReturned event is produced
//	ERROR: ErrLoanNotFound if the loan does not exist
//	ERROR: ErrAlreadyReturned if the loan is already Returned
func Decide(s State, command Command) core.DecisionResult {
	if !s.LoanExists {
		return core.ErrorDecision(core.ErrLoanNotFound)
	}

	if s.Loan.IsReturned() {
		return core.ErrorDecision(core.ErrAlreadyReturned)
	}

	wasOverdue := s.Loan.Status == core.LoanStatusOverdue || s.Loan.IsPastDueAt(command.OccurredAt)

	returned := s.Loan
	returnDate := command.OccurredAt
	returned.ReturnDate = &returnDate
	returned.Status = core.LoanStatusReturned

	return core.SuccessDecision(returned, core.BuildLoanReturned(returned, wasOverdue, command.OccurredAt))
}
