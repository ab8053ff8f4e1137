package engine

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
	"github.com/AntonStoeckl/library-loan-engine-go/features/command/createloan"
	"github.com/AntonStoeckl/library-loan-engine-go/loanstore"
	"github.com/AntonStoeckl/library-loan-engine-go/shell"
)

// CreateLoan lends the book to the user.
//
// Business rejections are returned as the errors of core, e.g. core.ErrBookUnavailable or
// core.ErrLoanLimitExceeded. If the book cannot be marked unavailable, the stored loan is
// discarded again and core.ErrAvailabilitySyncFailed is returned.
func (e *Engine) CreateLoan(
	ctx context.Context,
	userID uuid.UUID,
	bookID uuid.UUID,
	options ...createloan.Option,
) (core.Loan, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	loanID, idErr := uuid.NewV7()
	if idErr != nil {
		return core.Loan{}, errors.Join(ErrGeneratingIDFailed, idErr)
	}

	command := createloan.BuildCommand(loanID, userID, bookID, e.clock(), options...)
	ctx, op := e.startCommand(ctx, command.CommandType())

	var result core.DecisionResult
	var stored core.Loan

	err := e.retry(ctx, command.CommandType(), func(ctx context.Context) error {
		state, stateErr := e.createLoanState(ctx, userID, bookID)
		if stateErr != nil {
			return stateErr
		}

		result = createloan.Decide(state, command)
		if !result.HasStateChange() {
			return nil
		}

		var insertErr error
		stored, insertErr = e.store.Insert(ctx, result.Loan)

		return insertErr
	})
	if err != nil {
		e.failed(ctx, op, err)
		return core.Loan{}, err
	}

	if businessErr := result.HasError(); businessErr != nil {
		e.completed(ctx, op, shell.StatusError)
		return core.Loan{}, businessErr
	}

	if syncErr := e.books.SetAvailability(ctx, bookID, false); syncErr != nil {
		err = errors.Join(core.ErrAvailabilitySyncFailed, syncErr)
		e.logError(ctx, logMsgAvailabilitySyncFail, shell.LogAttrBookID, bookID.String(), shell.LogAttrError, syncErr.Error())

		if discardErr := e.store.Discard(ctx, stored.ID); discardErr != nil {
			e.logError(ctx, logMsgRollbackFailed, shell.LogAttrLoanID, stored.ID.String(), shell.LogAttrError, discardErr.Error())
			err = errors.Join(err, discardErr)
		}

		e.failed(ctx, op, err)

		return core.Loan{}, err
	}

	e.publish(ctx, result.Event)
	e.completed(ctx, op, shell.StatusSuccess)

	return stored, nil
}

func (e *Engine) createLoanState(ctx context.Context, userID, bookID uuid.UUID) (createloan.State, error) {
	var state createloan.State

	book, bookErr := e.books.GetBook(ctx, bookID)
	switch {
	case bookErr == nil:
		state.BookExists = true
		state.BookAvailable = book.Available
	case !errors.Is(bookErr, core.ErrBookNotFound):
		return createloan.State{}, errors.Join(ErrGatewayFailed, bookErr)
	}

	user, userErr := e.users.GetUser(ctx, userID)
	switch {
	case userErr == nil:
		state.UserExists = true
		state.UserIsActive = user.Active
		state.UserRole = user.Role
	case !errors.Is(userErr, core.ErrUserNotFound):
		return createloan.State{}, errors.Join(ErrGatewayFailed, userErr)
	}

	outstanding, findErr := e.store.Find(ctx, loanstore.OutstandingLoansOf(userID))
	if findErr != nil {
		return createloan.State{}, findErr
	}

	state.OutstandingLoans = outstanding

	return state, nil
}
