package jsonfileengine

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
)

const fileFormatVersion = 1

type fileDocument struct {
	FormatVersion int          `json:"formatVersion"`
	Loans         []loanRecord `json:"loans"`
}

type loanRecord struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"userId"`
	BookID             string     `json:"bookId"`
	Category           string     `json:"category"`
	LoanDate           time.Time  `json:"loanDate"`
	DueDate            time.Time  `json:"dueDate"`
	ReturnDate         *time.Time `json:"returnDate,omitempty"`
	Status             string     `json:"status"`
	RenewalCount       int        `json:"renewalCount"`
	DueReminderSentFor *time.Time `json:"dueReminderSentFor,omitempty"`
	Version            uint       `json:"version"`
}

var errInvalidLoanStatus = errors.New("invalid loan status")

func recordFromLoan(loan core.Loan) loanRecord {
	clone := loan.Clone()

	return loanRecord{
		ID:                 clone.ID.String(),
		UserID:             clone.UserID.String(),
		BookID:             clone.BookID.String(),
		Category:           string(clone.Category),
		LoanDate:           clone.LoanDate,
		DueDate:            clone.DueDate,
		ReturnDate:         clone.ReturnDate,
		Status:             string(clone.Status),
		RenewalCount:       clone.RenewalCount,
		DueReminderSentFor: clone.DueReminderSentFor,
		Version:            clone.Version,
	}
}

func (r loanRecord) toLoan() (core.Loan, error) {
	id, idErr := uuid.Parse(r.ID)
	if idErr != nil {
		return core.Loan{}, idErr
	}

	userID, userIDErr := uuid.Parse(r.UserID)
	if userIDErr != nil {
		return core.Loan{}, userIDErr
	}

	bookID, bookIDErr := uuid.Parse(r.BookID)
	if bookIDErr != nil {
		return core.Loan{}, bookIDErr
	}

	status := core.LoanStatus(r.Status)
	if !status.IsValid() {
		return core.Loan{}, errInvalidLoanStatus
	}

	loan := core.Loan{
		ID:                 id,
		UserID:             userID,
		BookID:             bookID,
		Category:           core.LoanCategory(r.Category),
		LoanDate:           r.LoanDate.UTC(),
		DueDate:            r.DueDate.UTC(),
		ReturnDate:         r.ReturnDate,
		Status:             status,
		RenewalCount:       r.RenewalCount,
		DueReminderSentFor: r.DueReminderSentFor,
		Version:            r.Version,
	}

	return loan.Clone(), nil
}
