package createloan

import (
	"errors"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
)

// State holds the facts the engine gathered from the gateways and the loan store.
type State struct {
	BookExists    bool
	BookAvailable bool
	UserExists    bool
	UserIsActive  bool
	UserRole      core.Role

	// OutstandingLoans are the user's Active and Overdue loans.
	OutstandingLoans core.Loans
}

// Decide implements the business logic to determine whether a book should be lent to a user.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A book with BookID and a user with UserID
//	WHEN: CreateLoan command is received
//	THEN: a new Active loan and a LoanCreated event are produced
//	ERROR: ErrBookUnavailable (and ErrBookNotFound) if the book does not exist
//	ERROR: ErrBookUnavailable if the book is not available
//	ERROR: ErrDuplicateLoan (and ErrBookUnavailable) if the user already holds this book
//	ERROR: ErrUserNotFound / ErrUserNotActive if the user cannot borrow
//	ERROR: ErrLoanLimitExceeded if the user's outstanding loans reached the role limit
//	ERROR: ErrUnknownLoanCategory if the category has no policy
//	ERROR: ErrInvalidDueDate if the explicit due date is not after the loan date
func Decide(s State, command Command) core.DecisionResult {
	holdsThisBook := holdsBook(s.OutstandingLoans, command)

	if !s.BookExists {
		return core.ErrorDecision(errors.Join(core.ErrBookUnavailable, core.ErrBookNotFound))
	}

	if !s.BookAvailable {
		if holdsThisBook {
			return core.ErrorDecision(errors.Join(core.ErrDuplicateLoan, core.ErrBookUnavailable))
		}

		return core.ErrorDecision(core.ErrBookUnavailable)
	}

	if !s.UserExists {
		return core.ErrorDecision(core.ErrUserNotFound)
	}

	if !s.UserIsActive {
		return core.ErrorDecision(core.ErrUserNotActive)
	}

	if len(s.OutstandingLoans) >= core.RolePolicyFor(s.UserRole).MaxActiveLoans {
		return core.ErrorDecision(core.ErrLoanLimitExceeded)
	}

	// The gateway says available but the store disagrees, never lend twice.
	if holdsThisBook {
		return core.ErrorDecision(core.ErrDuplicateLoan)
	}

	if !command.Category.IsValid() {
		return core.ErrorDecision(core.ErrUnknownLoanCategory)
	}

	dueDate := command.OccurredAt.Add(core.Days(core.LoanDurationDays))
	if command.DueDate != nil {
		if !command.DueDate.After(command.OccurredAt) {
			return core.ErrorDecision(core.ErrInvalidDueDate)
		}

		dueDate = *command.DueDate
	}

	loan := core.BuildLoan(
		command.LoanID,
		command.UserID,
		command.BookID,
		command.Category,
		command.OccurredAt,
		dueDate,
	)

	return core.SuccessDecision(loan, core.BuildLoanCreated(loan, command.OccurredAt))
}

func holdsBook(outstanding core.Loans, command Command) bool {
	for _, loan := range outstanding {
		if loan.BookID == command.BookID && loan.UserID == command.UserID && loan.Status.IsOutstanding() {
			return true
		}
	}

	return false
}
