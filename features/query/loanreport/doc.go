// Package loanreport implements the Loan Report query use case.
//
// The report is projected from the full list of stored loans: totals per status, the outstanding loans
// with their overdue flag, borrower counts and the most borrowed books. A loan counts as overdue once it
// is stored as Overdue or its effective due date lies before the report time, so the report is accurate
// even when the overdue sweep has not run yet.
package loanreport
