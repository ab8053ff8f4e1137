package engine

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
	"github.com/AntonStoeckl/library-loan-engine-go/features/query/loandetails"
	"github.com/AntonStoeckl/library-loan-engine-go/features/query/loanreport"
	"github.com/AntonStoeckl/library-loan-engine-go/loanstore"
	"github.com/AntonStoeckl/library-loan-engine-go/shell"
)

const (
	queryTypeAllLoans                = "AllLoans"
	queryTypeActiveLoansForUser      = "ActiveLoansForUser"
	queryTypeOutstandingLoansForUser = "OutstandingLoansForUser"
)

// GetLoanByID returns the loan enriched with the book's and the borrower's details.
// The enrichment is best-effort: gateway failures leave the details empty.
func (e *Engine) GetLoanByID(ctx context.Context, loanID uuid.UUID) (loandetails.LoanWithDetails, error) {
	query := loandetails.BuildQuery(loanID)
	ctx, op := e.startQuery(ctx, query.QueryType())

	loan, err := e.store.Get(ctx, query.LoanID)
	if err != nil {
		if errors.Is(err, loanstore.ErrNotFound) {
			e.completed(ctx, op, shell.StatusError)
			return loandetails.LoanWithDetails{}, core.ErrLoanNotFound
		}

		e.failed(ctx, op, err)

		return loandetails.LoanWithDetails{}, err
	}

	var lookups loandetails.Lookups

	book, bookErr := e.books.GetBook(ctx, loan.BookID)
	if bookErr == nil {
		lookups.Book, lookups.BookFound = book, true
	} else {
		e.logDebug(ctx, logMsgLookupFailed, shell.LogAttrBookID, loan.BookID.String(), shell.LogAttrError, bookErr.Error())
	}

	user, userErr := e.users.GetUser(ctx, loan.UserID)
	if userErr == nil {
		lookups.User, lookups.UserFound = user, true
	} else {
		e.logDebug(ctx, logMsgLookupFailed, shell.LogAttrUserID, loan.UserID.String(), shell.LogAttrError, userErr.Error())
	}

	e.completed(ctx, op, shell.StatusSuccess)

	return loandetails.Project(loan, lookups), nil
}

// GetAllLoans returns every loan in creation order.
func (e *Engine) GetAllLoans(ctx context.Context) (core.Loans, error) {
	return e.findLoans(ctx, queryTypeAllLoans, loanstore.MatchingAnyLoan())
}

// GetActiveLoansForUser returns the user's loans in status Active. Overdue loans are not included.
func (e *Engine) GetActiveLoansForUser(ctx context.Context, userID uuid.UUID) (core.Loans, error) {
	return e.findLoans(ctx, queryTypeActiveLoansForUser, loanstore.ActiveLoansOf(userID))
}

// GetOutstandingLoansForUser returns the user's Active and Overdue loans, the ones counted
// against the borrowing limit.
func (e *Engine) GetOutstandingLoansForUser(ctx context.Context, userID uuid.UUID) (core.Loans, error) {
	return e.findLoans(ctx, queryTypeOutstandingLoansForUser, loanstore.OutstandingLoansOf(userID))
}

// GetLoanReport summarizes all loans as of now, listing up to topBooks most borrowed books.
func (e *Engine) GetLoanReport(ctx context.Context, topBooks int) (loanreport.Report, error) {
	query := loanreport.BuildQuery(e.clock(), topBooks)
	ctx, op := e.startQuery(ctx, query.QueryType())

	loans, err := e.store.All(ctx)
	if err != nil {
		e.failed(ctx, op, err)
		return loanreport.Report{}, err
	}

	e.completed(ctx, op, shell.StatusSuccess)

	return loanreport.Project(loans, query), nil
}

func (e *Engine) findLoans(ctx context.Context, queryType string, filter loanstore.Filter) (core.Loans, error) {
	ctx, op := e.startQuery(ctx, queryType)

	loans, err := e.store.Find(ctx, filter)
	if err != nil {
		e.failed(ctx, op, err)
		return nil, err
	}

	e.completed(ctx, op, shell.StatusSuccess)

	return loans, nil
}
