// Package createloan implements the Create Loan use case.
//
// A loan is created when the book exists and is available, the user exists and is active,
// the user holds fewer outstanding loans than the role allows, the user does not already
// hold an outstanding loan on the same book, and an explicit due date (if any) lies after
// the loan date.
//
// The business logic is a pure Decide function over the facts gathered by the engine.
package createloan
