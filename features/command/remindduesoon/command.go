package remindduesoon

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
)

const (
	commandType = "RemindLoanDueSoon"
)

// Command represents the intent to remind a borrower of an upcoming due date.
type Command struct {
	LoanID     uuid.UUID
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		LoanID:     loanID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
