package core

import (
	"errors"
	"fmt"
)

var (
	// ErrLoanNotFound is returned when no loan exists for the given id.
	ErrLoanNotFound = errors.New("loan not found")

	// ErrBookUnavailable is returned when the book cannot be lent, including when it does not exist.
	ErrBookUnavailable = errors.New("book is not available for loan")

	// ErrBookNotFound is returned when the book gateway does not know the book.
	ErrBookNotFound = errors.New("book not found")

	// ErrUserNotFound is returned when the user gateway does not know the user.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserNotActive is returned when an inactive user tries to borrow.
	ErrUserNotActive = errors.New("user is not active")

	// ErrLoanLimitExceeded is returned when the user already holds the maximum number of outstanding loans.
	ErrLoanLimitExceeded = errors.New("user has reached maximum number of active loans")

	// ErrDuplicateLoan is returned when the user already holds an outstanding loan on the same book.
	ErrDuplicateLoan = errors.New("user already has an outstanding loan for this book")

	// ErrUnknownLoanCategory is returned when a loan is requested with a category that has no policy.
	ErrUnknownLoanCategory = errors.New("unknown loan category")

	// ErrInvalidDueDate is returned when an explicit due date is not after the loan date.
	ErrInvalidDueDate = errors.New("due date must be after the loan date")

	// ErrInvalidState is the parent of all errors caused by an operation on a loan in the wrong state.
	ErrInvalidState = errors.New("invalid loan state")

	// ErrAlreadyReturned is returned when returning or renewing a loan that was already returned.
	ErrAlreadyReturned = fmt.Errorf("%w: loan was already returned", ErrInvalidState)

	// ErrOverdueCannotRenew is returned when renewing an overdue loan.
	ErrOverdueCannotRenew = fmt.Errorf("%w: overdue loans cannot be renewed", ErrInvalidState)

	// ErrRenewalLimitExceeded is returned when the loan reached its maximum number of renewals.
	ErrRenewalLimitExceeded = errors.New("maximum number of renewals reached")

	// ErrRenewalsNotAllowed is returned when the loan category does not allow renewals at all.
	ErrRenewalsNotAllowed = fmt.Errorf("%w: loan category does not allow renewals", ErrRenewalLimitExceeded)

	// ErrAvailabilitySyncFailed is returned when the book gateway rejected an availability toggle.
	ErrAvailabilitySyncFailed = errors.New("book availability could not be synchronized")
)
