package engine

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
	"github.com/AntonStoeckl/library-loan-engine-go/features/command/markoverdue"
	"github.com/AntonStoeckl/library-loan-engine-go/features/command/remindduesoon"
	"github.com/AntonStoeckl/library-loan-engine-go/loanstore"
	"github.com/AntonStoeckl/library-loan-engine-go/shell"
)

const (
	sweepOverdueType  = "CheckOverdueLoans"
	sweepDueDatesType = "CheckDueDates"
)

// sweepStep decides the change of one loan.
type sweepStep func(state loanStateFacts) core.DecisionResult

// CheckOverdueLoans flags every Active loan past its effective due date as Overdue and
// notifies the borrower. It returns the number of loans flagged; running it again right
// away flags nothing.
func (e *Engine) CheckOverdueLoans(ctx context.Context) (int, error) {
	now := e.clock()

	return e.sweep(ctx, sweepOverdueType, func(state loanStateFacts) core.DecisionResult {
		return markoverdue.Decide(markoverdue.State(state), markoverdue.BuildCommand(state.Loan.ID, now))
	})
}

// CheckDueDates reminds the borrowers of Active loans due within core.DueSoonWindowDays.
// Each due date is reminded once; a renewal moves the due date and allows a new reminder.
// It returns the number of reminders sent.
func (e *Engine) CheckDueDates(ctx context.Context) (int, error) {
	now := e.clock()

	return e.sweep(ctx, sweepDueDatesType, func(state loanStateFacts) core.DecisionResult {
		return remindduesoon.Decide(remindduesoon.State(state), remindduesoon.BuildCommand(state.Loan.ID, now))
	})
}

// sweep runs step over every Active loan. A loan that fails is logged and skipped;
// the failures are returned joined together with the number of changed loans.
func (e *Engine) sweep(ctx context.Context, sweepType string, step sweepStep) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, op := e.startCommand(ctx, sweepType)

	candidates, err := e.store.Find(ctx, loanstore.ActiveLoans())
	if err != nil {
		e.failed(ctx, op, err)
		return 0, err
	}

	changed := 0
	var loanErrs []error

	for _, candidate := range candidates {
		if ctxErr := ctx.Err(); ctxErr != nil {
			loanErrs = append(loanErrs, ctxErr)
			break
		}

		event, stepErr := e.sweepLoan(ctx, sweepType, candidate.ID, step)
		if stepErr != nil {
			e.logWarn(ctx, logMsgSweepLoanFailed,
				shell.LogAttrCommandType, sweepType,
				shell.LogAttrLoanID, candidate.ID.String(),
				shell.LogAttrError, stepErr.Error(),
			)
			loanErrs = append(loanErrs, stepErr)

			continue
		}

		if event != nil {
			e.publish(ctx, event)
			changed++
		}
	}

	shell.RecordSweepResult(ctx, e.metricsCollector, sweepType, changed)
	e.logInfo(ctx, logMsgSweepCompleted, shell.LogAttrCommandType, sweepType, shell.LogAttrCount, changed)

	if len(loanErrs) > 0 {
		err = errors.Join(loanErrs...)
		e.failed(ctx, op, err)

		return changed, err
	}

	if changed == 0 {
		e.completed(ctx, op, shell.StatusIdempotent)
	} else {
		e.completed(ctx, op, shell.StatusSuccess)
	}

	return changed, nil
}

// sweepLoan re-reads the loan on every attempt, so a concurrent change is decided again.
func (e *Engine) sweepLoan(
	ctx context.Context,
	sweepType string,
	loanID uuid.UUID,
	step sweepStep,
) (core.DomainEvent, error) {
	var event core.DomainEvent

	err := e.retry(ctx, sweepType, func(ctx context.Context) error {
		event = nil

		state, stateErr := e.loanState(ctx, loanID)
		if stateErr != nil {
			return stateErr
		}

		if !state.LoanExists {
			return nil
		}

		result := step(state)
		if businessErr := result.HasError(); businessErr != nil {
			return businessErr
		}

		if !result.HasStateChange() {
			return nil
		}

		if _, updateErr := e.store.Update(ctx, result.Loan); updateErr != nil {
			return updateErr
		}

		event = result.Event

		return nil
	})

	return event, err
}
