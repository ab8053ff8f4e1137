package remindduesoon

import (
	"github.com/AntonStoeckl/library-loan-engine-go/core"
)

// State holds the loan as currently stored.
type State struct {
	LoanExists bool
	Loan       core.Loan
}

// Decide implements the business logic to determine whether a due-soon reminder is sent.
//
// Business Rules:
//
//	GIVEN: An Active loan due within the reminder window
//	WHEN: RemindLoanDueSoon command is received
//	THEN: DueReminderSentFor is set to the current due date, a LoanDueSoon event is produced
//	IDEMPOTENCY: already reminded for this due date, not Active, already due, or due later
//	ERROR: ErrLoanNotFound if the loan does not exist
func Decide(s State, command Command) core.DecisionResult {
	if !s.LoanExists {
		return core.ErrorDecision(core.ErrLoanNotFound)
	}

	if s.Loan.Status != core.LoanStatusActive {
		return core.IdempotentDecision()
	}

	if s.Loan.WasRemindedFor(s.Loan.DueDate) {
		return core.IdempotentDecision()
	}

	if !s.Loan.DueDate.After(command.OccurredAt) {
		return core.IdempotentDecision()
	}

	windowEnd := command.OccurredAt.Add(core.Days(core.DueSoonWindowDays))
	if s.Loan.DueDate.After(windowEnd) {
		return core.IdempotentDecision()
	}

	reminded := s.Loan
	remindedFor := s.Loan.DueDate
	reminded.DueReminderSentFor = &remindedFor

	return core.SuccessDecision(reminded, core.BuildLoanDueSoon(reminded, command.OccurredAt))
}
