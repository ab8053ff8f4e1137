// Package returnloan implements the Return Loan use case.
//
// Any outstanding loan (Active or Overdue) can be returned. Returning a loan that was
// already returned is rejected with core.ErrAlreadyReturned and produces no event, so the
// engine neither toggles book availability nor notifies the borrower a second time.
package returnloan
