package loandetails

import (
	"github.com/AntonStoeckl/library-loan-engine-go/core"
)

// Lookups holds whatever the gateways returned for the loan's book and borrower.
type Lookups struct {
	Book      core.Book
	BookFound bool
	User      core.User
	UserFound bool
}

// Project combines a loan with the gateway lookups.
// This is a pure function with no side effects.
//
// Query Logic:
//
//	GIVEN: A stored loan
//	WHEN: LoanDetails query is executed
//	THEN: LoanWithDetails is returned
//	INCLUDES: book title/author and user name/email when the gateways know them
func Project(loan core.Loan, lookups Lookups) LoanWithDetails {
	details := LoanWithDetails{Loan: loan}

	if lookups.BookFound {
		details.Book = &BookInfo{
			Title:  lookups.Book.Title,
			Author: lookups.Book.Author,
		}
	}

	if lookups.UserFound {
		details.User = &UserInfo{
			Name:  lookups.User.Name,
			Email: lookups.User.Email,
		}
	}

	return details
}
