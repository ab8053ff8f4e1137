package loanreport

import (
	"time"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
)

const (
	queryType = "LoanReport"

	defaultTopBooks = 5
)

// Query represents the intent to build a loan report at a point in time.
type Query struct {
	At       time.Time
	TopBooks int
}

// BuildQuery creates a new Query. A non-positive topBooks falls back to 5.
func BuildQuery(at time.Time, topBooks int) Query {
	if topBooks <= 0 {
		topBooks = defaultTopBooks
	}

	return Query{
		At:       core.ToOccurredAt(at),
		TopBooks: topBooks,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
