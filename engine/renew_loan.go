package engine

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
	"github.com/AntonStoeckl/library-loan-engine-go/features/command/renewloan"
	"github.com/AntonStoeckl/library-loan-engine-go/shell"
)

// RenewLoan moves the due date of an active loan to now + core.LoanDurationDays.
func (e *Engine) RenewLoan(ctx context.Context, loanID uuid.UUID) (core.Loan, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	command := renewloan.BuildCommand(loanID, e.clock())
	ctx, op := e.startCommand(ctx, command.CommandType())

	var result core.DecisionResult
	var stored core.Loan

	err := e.retry(ctx, command.CommandType(), func(ctx context.Context) error {
		state, stateErr := e.loanState(ctx, loanID)
		if stateErr != nil {
			return stateErr
		}

		result = renewloan.Decide(renewloan.State(state), command)
		if !result.HasStateChange() {
			return nil
		}

		var updateErr error
		stored, updateErr = e.store.Update(ctx, result.Loan)

		return updateErr
	})
	if err != nil {
		e.failed(ctx, op, err)
		return core.Loan{}, err
	}

	if businessErr := result.HasError(); businessErr != nil {
		e.completed(ctx, op, shell.StatusError)
		return core.Loan{}, businessErr
	}

	e.publish(ctx, result.Event)
	e.completed(ctx, op, shell.StatusSuccess)

	return stored, nil
}
