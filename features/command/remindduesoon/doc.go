// Package remindduesoon implements the per-loan decision of the due date check.
//
// An Active loan whose due date falls within core.DueSoonWindowDays of the check time gets exactly one
// LoanDueSoon reminder per due date. Renewal moves the due date, which makes the loan eligible again.
package remindduesoon
