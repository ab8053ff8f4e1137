// Package markoverdue implements the per-loan decision of the overdue sweep.
//
// The sweep calls Decide once for every Active loan. A loan whose effective due date lies before the
// sweep time is flagged Overdue and a LoanOverdue event is produced. Loans that are already Overdue or
// Returned, or not yet due, lead to an idempotent decision, so repeated sweeps never emit twice.
package markoverdue
