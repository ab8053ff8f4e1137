package loandetails

import (
	"github.com/google/uuid"
)

const (
	queryType = "LoanDetails"
)

// Query represents the intent to look up a single loan.
type Query struct {
	LoanID uuid.UUID
}

// BuildQuery creates a new Query with the provided loan ID.
func BuildQuery(loanID uuid.UUID) Query {
	return Query{
		LoanID: loanID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
