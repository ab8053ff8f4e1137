package postgresengine

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
	"github.com/AntonStoeckl/library-loan-engine-go/loanstore/postgresengine/internal/adapters"
)

var errInvalidLoanStatus = errors.New("invalid loan status in row")

type loanRow struct {
	id                 string
	userID             string
	bookID             string
	category           string
	loanDate           time.Time
	dueDate            time.Time
	returnDate         sql.NullTime
	status             string
	renewalCount       int
	dueReminderSentFor sql.NullTime
	version            int64
}

func scanLoan(rows adapters.DBRows) (core.Loan, error) {
	var row loanRow

	scanErr := rows.Scan(
		&row.id,
		&row.userID,
		&row.bookID,
		&row.category,
		&row.loanDate,
		&row.dueDate,
		&row.returnDate,
		&row.status,
		&row.renewalCount,
		&row.dueReminderSentFor,
		&row.version,
	)
	if scanErr != nil {
		return core.Loan{}, scanErr
	}

	return row.toLoan()
}

func (r loanRow) toLoan() (core.Loan, error) {
	id, idErr := uuid.Parse(r.id)
	if idErr != nil {
		return core.Loan{}, idErr
	}

	userID, userIDErr := uuid.Parse(r.userID)
	if userIDErr != nil {
		return core.Loan{}, userIDErr
	}

	bookID, bookIDErr := uuid.Parse(r.bookID)
	if bookIDErr != nil {
		return core.Loan{}, bookIDErr
	}

	status := core.LoanStatus(r.status)
	if !status.IsValid() {
		return core.Loan{}, errInvalidLoanStatus
	}

	return core.Loan{
		ID:                 id,
		UserID:             userID,
		BookID:             bookID,
		Category:           core.LoanCategory(r.category),
		LoanDate:           r.loanDate.UTC(),
		DueDate:            r.dueDate.UTC(),
		ReturnDate:         timeOrNil(r.returnDate),
		Status:             status,
		RenewalCount:       r.renewalCount,
		DueReminderSentFor: timeOrNil(r.dueReminderSentFor),
		Version:            uint(r.version), //nolint:gosec
	}, nil
}

func timeOrNil(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}

	utc := t.Time.UTC()

	return &utc
}
