// Package loandetails implements the Loan Details query use case.
//
// The result is the stored loan enriched with denormalized book and borrower data. Enrichment is
// best-effort: a book or user the gateways do not know leaves the matching fields empty.
package loandetails
