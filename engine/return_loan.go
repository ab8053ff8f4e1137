package engine

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
	"github.com/AntonStoeckl/library-loan-engine-go/features/command/returnloan"
	"github.com/AntonStoeckl/library-loan-engine-go/loanstore"
	"github.com/AntonStoeckl/library-loan-engine-go/shell"
)

// ReturnLoan completes the loan and makes the book available again.
//
// Returning an already returned loan yields the unchanged loan together with core.ErrAlreadyReturned,
// without touching the book or publishing anything. If the book cannot be marked available,
// the loan is restored to its previous state and core.ErrAvailabilitySyncFailed is returned.
func (e *Engine) ReturnLoan(ctx context.Context, loanID uuid.UUID) (core.Loan, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	command := returnloan.BuildCommand(loanID, e.clock())
	ctx, op := e.startCommand(ctx, command.CommandType())

	var result core.DecisionResult
	var previous, stored core.Loan

	err := e.retry(ctx, command.CommandType(), func(ctx context.Context) error {
		state, stateErr := e.loanState(ctx, loanID)
		if stateErr != nil {
			return stateErr
		}

		previous = state.Loan
		result = returnloan.Decide(returnloan.State(state), command)
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

		if errors.Is(businessErr, core.ErrAlreadyReturned) {
			return previous, businessErr
		}

		return core.Loan{}, businessErr
	}

	if syncErr := e.books.SetAvailability(ctx, stored.BookID, true); syncErr != nil {
		err = errors.Join(core.ErrAvailabilitySyncFailed, syncErr)
		e.logError(ctx, logMsgAvailabilitySyncFail, shell.LogAttrBookID, stored.BookID.String(), shell.LogAttrError, syncErr.Error())

		restore := previous.Clone()
		restore.Version = stored.Version
		if _, restoreErr := e.store.Update(ctx, restore); restoreErr != nil {
			e.logError(ctx, logMsgRollbackFailed, shell.LogAttrLoanID, loanID.String(), shell.LogAttrError, restoreErr.Error())
			err = errors.Join(err, restoreErr)
		}

		e.failed(ctx, op, err)

		return core.Loan{}, err
	}

	e.publish(ctx, result.Event)
	e.completed(ctx, op, shell.StatusSuccess)

	return stored, nil
}

// loanStateFacts is the shared shape of the State of the single-loan commands.
type loanStateFacts struct {
	LoanExists bool
	Loan       core.Loan
}

func (e *Engine) loanState(ctx context.Context, loanID uuid.UUID) (loanStateFacts, error) {
	loan, err := e.store.Get(ctx, loanID)
	switch {
	case err == nil:
		return loanStateFacts{LoanExists: true, Loan: loan}, nil
	case errors.Is(err, loanstore.ErrNotFound):
		return loanStateFacts{}, nil
	default:
		return loanStateFacts{}, err
	}
}
