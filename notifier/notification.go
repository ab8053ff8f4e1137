package notifier

import (
	"time"

	"github.com/google/uuid"
)

// Kind is the type of a notification.
type Kind string

const (
	KindLoanCreated  Kind = "LOAN_CREATED"
	KindLoanReturned Kind = "LOAN_RETURNED"
	KindLoanRenewed  Kind = "LOAN_RENEWED"
	KindLoanOverdue  Kind = "LOAN_OVERDUE"
	KindLoanDue      Kind = "LOAN_DUE"
)

// Priority is the urgency of a notification.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Metadata keys used by the loan engine.
const (
	MetaLoanID       = "loanId"
	MetaBookID       = "bookId"
	MetaDueDate      = "dueDate"
	MetaReturnDate   = "returnDate"
	MetaRenewalCount = "renewalCount"
	MetaDaysOverdue  = "daysOverdue"
	MetaDaysUntilDue = "daysUntilDue"
	MetaTimestamp    = "timestamp"
)

// Notification is a message about a loan addressed to one user.
type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Kind      Kind
	Message   string
	Priority  Priority
	CreatedAt time.Time
	Read      bool
	Metadata  map[string]string
}

func (n Notification) clone() Notification {
	c := n
	if n.Metadata != nil {
		c.Metadata = make(map[string]string, len(n.Metadata))
		for k, v := range n.Metadata {
			c.Metadata[k] = v
		}
	}

	return c
}
