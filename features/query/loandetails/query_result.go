package loandetails

import (
	"github.com/AntonStoeckl/library-loan-engine-go/core"
)

// BookInfo is the denormalized part of the book.
type BookInfo struct {
	Title  string
	Author string
}

// UserInfo is the denormalized part of the borrower.
type UserInfo struct {
	Name  string
	Email string
}

// LoanWithDetails represents the query result.
// Book and User are nil when the gateway did not know the record.
type LoanWithDetails struct {
	core.Loan
	Book *BookInfo
	User *UserInfo
}

// HasBookDetails reports whether the book could be enriched.
func (d LoanWithDetails) HasBookDetails() bool {
	return d.Book != nil
}

// HasUserDetails reports whether the borrower could be enriched.
func (d LoanWithDetails) HasUserDetails() bool {
	return d.User != nil
}
