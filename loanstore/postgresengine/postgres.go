package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
	"github.com/AntonStoeckl/library-loan-engine-go/loanstore"
	"github.com/AntonStoeckl/library-loan-engine-go/loanstore/postgresengine/internal/adapters"
)

const (
	defaultTableName          = "loans"
	dialectPostgres           = "postgres"
	colSequenceNumber         = "sequence_number"
	colID                     = "id"
	colUserID                 = "user_id"
	colBookID                 = "book_id"
	colCategory               = "category"
	colLoanDate               = "loan_date"
	colDueDate                = "due_date"
	colReturnDate             = "return_date"
	colStatus                 = "status"
	colRenewalCount           = "renewal_count"
	colDueReminderSentFor     = "due_reminder_sent_for"
	colVersion                = "version"
	operationInsert           = "insert"
	operationUpdate           = "update"
	operationGet              = "get"
	operationFind             = "find"
	operationDiscard          = "discard"
	operationCreateSchema     = "create_schema"
	logMsgBuildQueryFailed    = "failed to build sql statement"
	logMsgDBQueryFailed       = "database query execution failed"
	logMsgDBExecFailed        = "database statement execution failed"
	logMsgRowsAffectedFailed  = "failed to get rows affected count"
	logMsgScanRowFailed       = "failed to scan database row"
	logMsgCloseRowsFailed     = "failed to close database rows"
	logMsgConcurrencyConflict = "concurrency conflict detected"
	logMsgLoanDiscarded       = "loan discarded"
	logMsgSQLExecuted         = "executed sql for: "
	logAttrError              = "error"
	logAttrQuery              = "query"
	logAttrDurationMS         = "duration_ms"
	logAttrLoanID             = "loan_id"
	logAttrExpectedVersion    = "expected_version"
)

var selectColumns = []any{
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
}

// LoanStore is a Loan Store backed by a PostgreSQL table.
type LoanStore struct {
	db               adapters.DBAdapter
	tableName        string
	logger           Logger
	metricsCollector MetricsCollector
}

// NewLoanStoreFromPGXPool creates a new LoanStore using a pgx Pool with optional configuration.
func NewLoanStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (LoanStore, error) {
	if db == nil {
		return LoanStore{}, loanstore.ErrNilDatabaseConnection
	}

	return newLoanStore(adapters.NewPGXAdapter(db), options...)
}

// NewLoanStoreFromSQLDB creates a new LoanStore using a sql.DB with optional configuration.
func NewLoanStoreFromSQLDB(db *sql.DB, options ...Option) (LoanStore, error) {
	if db == nil {
		return LoanStore{}, loanstore.ErrNilDatabaseConnection
	}

	return newLoanStore(adapters.NewSQLAdapter(db), options...)
}

// NewLoanStoreFromSQLX creates a new LoanStore using a sqlx.DB with optional configuration.
func NewLoanStoreFromSQLX(db *sqlx.DB, options ...Option) (LoanStore, error) {
	if db == nil {
		return LoanStore{}, loanstore.ErrNilDatabaseConnection
	}

	return newLoanStore(adapters.NewSQLXAdapter(db), options...)
}

func newLoanStore(db adapters.DBAdapter, options ...Option) (LoanStore, error) {
	ls := LoanStore{
		db:        db,
		tableName: defaultTableName,
	}

	for _, option := range options {
		if err := option(&ls); err != nil {
			return LoanStore{}, err
		}
	}

	return ls, nil
}

// Insert stores a new loan with Version 1 and returns the stored copy.
// A loan with the same id already in the table yields loanstore.ErrDuplicateID.
func (ls LoanStore) Insert(ctx context.Context, loan core.Loan) (core.Loan, error) {
	stored := loan.Clone()
	stored.Version = 1

	record := ls.recordFromLoan(stored)
	record[colID] = stored.ID.String()
	record[colUserID] = stored.UserID.String()
	record[colBookID] = stored.BookID.String()
	record[colCategory] = string(stored.Category)
	record[colLoanDate] = stored.LoanDate

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(ls.tableName).
		Rows(record).
		OnConflict(goqu.DoNothing())

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return core.Loan{}, ls.buildFailed(operationInsert, toSQLErr)
	}

	rowsAffected, execErr := ls.exec(ctx, operationInsert, sqlQuery)
	if execErr != nil {
		return core.Loan{}, execErr
	}

	if rowsAffected == 0 {
		return core.Loan{}, loanstore.ErrDuplicateID
	}

	return stored, nil
}

// Update replaces the mutable columns of a stored loan if its version still equals loan.Version
// and returns the stored copy with the incremented Version.
func (ls LoanStore) Update(ctx context.Context, loan core.Loan) (core.Loan, error) {
	stored := loan.Clone()
	stored.Version = loan.Version + 1

	updateStmt := goqu.Dialect(dialectPostgres).
		Update(ls.tableName).
		Set(ls.recordFromLoan(stored)).
		Where(
			goqu.C(colID).Eq(loan.ID.String()),
			goqu.C(colVersion).Eq(loan.Version),
		)

	sqlQuery, _, toSQLErr := updateStmt.ToSQL()
	if toSQLErr != nil {
		return core.Loan{}, ls.buildFailed(operationUpdate, toSQLErr)
	}

	rowsAffected, execErr := ls.exec(ctx, operationUpdate, sqlQuery)
	if execErr != nil {
		return core.Loan{}, execErr
	}

	if rowsAffected > 0 {
		return stored, nil
	}

	if _, getErr := ls.Get(ctx, loan.ID); getErr != nil {
		return core.Loan{}, getErr
	}

	ls.logOperation(logMsgConcurrencyConflict, logAttrLoanID, loan.ID.String(), logAttrExpectedVersion, loan.Version)
	ls.recordConcurrencyConflict(operationUpdate)

	return core.Loan{}, loanstore.ErrConcurrencyConflict
}

// Get returns the loan with the given id.
func (ls LoanStore) Get(ctx context.Context, id uuid.UUID) (core.Loan, error) {
	loans, err := ls.query(ctx, operationGet, goqu.C(colID).Eq(id.String()))
	if err != nil {
		return core.Loan{}, err
	}

	if len(loans) == 0 {
		return core.Loan{}, loanstore.ErrNotFound
	}

	return loans[0], nil
}

// All returns every stored loan in insertion order.
func (ls LoanStore) All(ctx context.Context) (core.Loans, error) {
	return ls.Find(ctx, loanstore.MatchingAnyLoan())
}

// Find returns the loans matching the filter in insertion order.
func (ls LoanStore) Find(ctx context.Context, filter loanstore.Filter) (core.Loans, error) {
	return ls.query(ctx, operationFind, whereClause(filter)...)
}

// Discard deletes a loan row. Only rollbacks of a failed creation use it.
func (ls LoanStore) Discard(ctx context.Context, id uuid.UUID) error {
	deleteStmt := goqu.Dialect(dialectPostgres).
		Delete(ls.tableName).
		Where(goqu.C(colID).Eq(id.String()))

	sqlQuery, _, toSQLErr := deleteStmt.ToSQL()
	if toSQLErr != nil {
		return ls.buildFailed(operationDiscard, toSQLErr)
	}

	rowsAffected, execErr := ls.exec(ctx, operationDiscard, sqlQuery)
	if execErr != nil {
		return execErr
	}

	if rowsAffected == 0 {
		return loanstore.ErrNotFound
	}

	ls.logOperation(logMsgLoanDiscarded, logAttrLoanID, id.String())

	return nil
}

func whereClause(filter loanstore.Filter) []exp.Expression {
	conditions := make([]exp.Expression, 0, 4)

	if filter.UserID() != uuid.Nil {
		conditions = append(conditions, goqu.C(colUserID).Eq(filter.UserID().String()))
	}

	if filter.BookID() != uuid.Nil {
		conditions = append(conditions, goqu.C(colBookID).Eq(filter.BookID().String()))
	}

	if len(filter.Statuses()) > 0 {
		statuses := make([]string, 0, len(filter.Statuses()))
		for _, status := range filter.Statuses() {
			statuses = append(statuses, string(status))
		}

		conditions = append(conditions, goqu.C(colStatus).In(statuses))
	}

	if !filter.DueBefore().IsZero() {
		conditions = append(conditions, goqu.C(colDueDate).Lt(filter.DueBefore()))
	}

	return conditions
}

// recordFromLoan returns the mutable columns of a loan.
func (ls LoanStore) recordFromLoan(loan core.Loan) goqu.Record {
	return goqu.Record{
		colDueDate:            loan.DueDate,
		colReturnDate:         nullableTime(loan.ReturnDate),
		colStatus:             string(loan.Status),
		colRenewalCount:       loan.RenewalCount,
		colDueReminderSentFor: nullableTime(loan.DueReminderSentFor),
		colVersion:            loan.Version,
	}
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}

	return t.UTC()
}

func (ls LoanStore) query(ctx context.Context, operation string, conditions ...exp.Expression) (core.Loans, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(ls.tableName).
		Select(selectColumns...).
		Order(goqu.I(colSequenceNumber).Asc())

	if len(conditions) > 0 {
		selectStmt = selectStmt.Where(conditions...)
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return nil, ls.buildFailed(operation, toSQLErr)
	}

	start := time.Now()
	rows, queryErr := ls.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	ls.logQueryWithDuration(sqlQuery, operation, duration)

	if queryErr != nil {
		ls.logError(logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		ls.recordError(operation, errorTypeQuery)
		ls.recordDuration(metricQueryDuration, operation, statusError, duration)

		return nil, errors.Join(loanstore.ErrQueryingLoansFailed, queryErr)
	}
	defer ls.closeRows(rows)

	loans := make(core.Loans, 0)
	for rows.Next() {
		loan, scanErr := scanLoan(rows)
		if scanErr != nil {
			ls.logError(logMsgScanRowFailed, scanErr)
			ls.recordError(operation, errorTypeScan)

			return nil, errors.Join(loanstore.ErrScanningDBRowFailed, scanErr)
		}

		loans = append(loans, loan)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		ls.logError(logMsgDBQueryFailed, rowsErr, logAttrQuery, sqlQuery)
		ls.recordError(operation, errorTypeQuery)

		return nil, errors.Join(loanstore.ErrQueryingLoansFailed, rowsErr)
	}

	ls.recordDuration(metricQueryDuration, operation, statusSuccess, duration)
	ls.recordLoansQueried(operation, len(loans))

	return loans, nil
}

func (ls LoanStore) exec(ctx context.Context, operation string, sqlQuery string) (int64, error) {
	start := time.Now()
	result, execErr := ls.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	ls.logQueryWithDuration(sqlQuery, operation, duration)

	if execErr != nil {
		ls.logError(logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		ls.recordError(operation, errorTypeExec)
		ls.recordDuration(metricWriteDuration, operation, statusError, duration)

		return 0, errors.Join(loanstore.ErrWritingLoanFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		ls.logError(logMsgRowsAffectedFailed, rowsAffectedErr)
		ls.recordError(operation, errorTypeExec)

		return 0, errors.Join(loanstore.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	ls.recordDuration(metricWriteDuration, operation, statusSuccess, duration)

	return rowsAffected, nil
}

func (ls LoanStore) buildFailed(operation string, err error) error {
	ls.logError(logMsgBuildQueryFailed, err)
	ls.recordError(operation, errorTypeBuild)

	return errors.Join(loanstore.ErrBuildingQueryFailed, err)
}

// closeRows closes database rows and logs any errors.
func (ls LoanStore) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if ls.logger != nil {
			ls.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}
