package postgresengine

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// CreateSchema creates the loans table and its indexes if they do not exist yet.
func (ls LoanStore) CreateSchema(ctx context.Context) error {
	table := pgx.Identifier{ls.tableName}.Sanitize()

	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	%s BIGSERIAL NOT NULL,
	%s TEXT PRIMARY KEY,
	%s TEXT NOT NULL,
	%s TEXT NOT NULL,
	%s TEXT NOT NULL,
	%s TIMESTAMPTZ NOT NULL,
	%s TIMESTAMPTZ NOT NULL,
	%s TIMESTAMPTZ NULL,
	%s TEXT NOT NULL,
	%s INTEGER NOT NULL DEFAULT 0,
	%s TIMESTAMPTZ NULL,
	%s BIGINT NOT NULL DEFAULT 1
)`,
			table,
			colSequenceNumber,
			colID,
			colUserID,
			colBookID,
			colCategory,
			colLoanDate,
			colDueDate,
			colReturnDate,
			colStatus,
			colRenewalCount,
			colDueReminderSentFor,
			colVersion,
		),
		fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS %s ON %s (%s, %s)",
			pgx.Identifier{ls.tableName + "_user_status_idx"}.Sanitize(), table, colUserID, colStatus,
		),
		fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS %s ON %s (%s, %s)",
			pgx.Identifier{ls.tableName + "_status_due_idx"}.Sanitize(), table, colStatus, colDueDate,
		),
		fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
			pgx.Identifier{ls.tableName + "_sequence_idx"}.Sanitize(), table, colSequenceNumber,
		),
	}

	for _, statement := range statements {
		if _, err := ls.exec(ctx, operationCreateSchema, statement); err != nil {
			return err
		}
	}

	return nil
}
