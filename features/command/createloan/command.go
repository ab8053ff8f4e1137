package createloan

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
)

const (
	commandType = "CreateLoan"
)

// Command represents the intent to lend a book to a user.
type Command struct {
	LoanID     uuid.UUID
	UserID     uuid.UUID
	BookID     uuid.UUID
	Category   core.LoanCategory
	DueDate    *time.Time
	OccurredAt core.OccurredAtTS
}

// Option configures optional parts of a Command.
type Option func(*Command)

// WithDueDate sets an explicit due date instead of the default loan duration.
func WithDueDate(dueDate time.Time) Option {
	return func(c *Command) {
		normalized := core.ToOccurredAt(dueDate)
		c.DueDate = &normalized
	}
}

// WithCategory sets the loan category. The default is core.LoanCategoryStandard.
func WithCategory(category core.LoanCategory) Option {
	return func(c *Command) {
		c.Category = category
	}
}

// CommandType returns the type identifier for this command, used for observability.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	loanID uuid.UUID,
	userID uuid.UUID,
	bookID uuid.UUID,
	occurredAt time.Time,
	options ...Option,
) Command {

	command := Command{
		LoanID:     loanID,
		UserID:     userID,
		BookID:     bookID,
		Category:   core.LoanCategoryStandard,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}

	for _, option := range options {
		option(&command)
	}

	return command
}
