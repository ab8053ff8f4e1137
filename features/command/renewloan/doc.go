// Package renewloan implements the Renew Loan use case.
//
// Renewal resets the due date to now plus the loan duration; renewals do not stack.
// Only Active loans whose effective due date has not passed can be renewed, and only as often
// as the loan category's policy allows. The wall-clock check runs even when the overdue sweep
// has not flipped the stored status yet.
package renewloan
