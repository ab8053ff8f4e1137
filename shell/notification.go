package shell

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
	"github.com/AntonStoeckl/library-loan-engine-go/notifier"
)

var (
	// ErrUnknownDomainEvent is returned when an event has no notification mapping.
	ErrUnknownDomainEvent = errors.New("domain event has no notification mapping")

	// ErrInvalidRecipient is returned when the recipient of an event is not a valid uuid.
	ErrInvalidRecipient = errors.New("domain event recipient is not a valid user id")
)

// NotificationFromDomainEvent builds the user notification for a loan lifecycle event.
//
// Priorities: LoanOverdue is HIGH, LoanDueSoon is MEDIUM, everything else LOW.
func NotificationFromDomainEvent(event core.DomainEvent, id uuid.UUID) (notifier.Notification, error) {
	userID, err := uuid.Parse(event.HasRecipient())
	if err != nil {
		return notifier.Notification{}, errors.Join(ErrInvalidRecipient, err)
	}

	n := notifier.Notification{
		ID:        id,
		UserID:    userID,
		CreatedAt: event.HasOccurredAt(),
		Priority:  notifier.PriorityLow,
	}

	switch e := event.(type) {
	case core.LoanCreated:
		n.Kind = notifier.KindLoanCreated
		n.Message = fmt.Sprintf("You borrowed book ID %s, it is due on %s", e.BookID, formatDate(e.DueDate))
		n.Metadata = loanMetadata(e.LoanID, e.BookID, e.DueDate, e.OccurredAt)

	case core.LoanReturned:
		n.Kind = notifier.KindLoanReturned
		n.Message = fmt.Sprintf("You returned book ID %s", e.BookID)
		n.Metadata = loanMetadata(e.LoanID, e.BookID, e.DueDate, e.OccurredAt)
		n.Metadata[notifier.MetaReturnDate] = e.OccurredAt.Format(time.RFC3339)

	case core.LoanRenewed:
		n.Kind = notifier.KindLoanRenewed
		n.Message = fmt.Sprintf("Your loan for book ID %s was renewed until %s", e.BookID, formatDate(e.DueDate))
		n.Metadata = loanMetadata(e.LoanID, e.BookID, e.DueDate, e.OccurredAt)
		n.Metadata[notifier.MetaRenewalCount] = strconv.Itoa(e.RenewalCount)

	case core.LoanOverdue:
		n.Kind = notifier.KindLoanOverdue
		n.Priority = notifier.PriorityHigh
		n.Message = fmt.Sprintf("Your loan for book ID %s is overdue by %d %s", e.BookID, e.DaysOverdue, dayWord(e.DaysOverdue))
		n.Metadata = loanMetadata(e.LoanID, e.BookID, e.DueDate, e.OccurredAt)
		n.Metadata[notifier.MetaDaysOverdue] = strconv.Itoa(e.DaysOverdue)

	case core.LoanDueSoon:
		n.Kind = notifier.KindLoanDue
		n.Priority = notifier.PriorityMedium
		n.Message = fmt.Sprintf("Your loan for book ID %s is due in %d %s", e.BookID, e.DaysUntilDue, dayWord(e.DaysUntilDue))
		n.Metadata = loanMetadata(e.LoanID, e.BookID, e.DueDate, e.OccurredAt)
		n.Metadata[notifier.MetaDaysUntilDue] = strconv.Itoa(e.DaysUntilDue)

	default:
		return notifier.Notification{}, fmt.Errorf("%w: %s", ErrUnknownDomainEvent, event.IsEventType())
	}

	return n, nil
}

func loanMetadata(loanID, bookID string, dueDate, occurredAt time.Time) map[string]string {
	return map[string]string{
		notifier.MetaLoanID:    loanID,
		notifier.MetaBookID:    bookID,
		notifier.MetaDueDate:   dueDate.Format(time.RFC3339),
		notifier.MetaTimestamp: occurredAt.Format(time.RFC3339),
	}
}

func formatDate(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

func dayWord(n int) string {
	if n == 1 {
		return "day"
	}

	return "days"
}
