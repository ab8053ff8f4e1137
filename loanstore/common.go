package loanstore

import (
	"errors"
)

var (
	// ErrConcurrencyConflict is returned by Update when the stored version differs from the expected one.
	ErrConcurrencyConflict = errors.New("concurrency error, loan was modified concurrently")

	// ErrNotFound is returned when no loan exists for the given id.
	ErrNotFound = errors.New("loan not found in store")

	// ErrDuplicateID is returned by Insert when a loan with the same id already exists.
	ErrDuplicateID = errors.New("loan with this id already exists")

	// ErrEmptyTableNameSupplied is returned when an engine is configured with an empty table name.
	ErrEmptyTableNameSupplied = errors.New("empty table name supplied")

	// ErrNilDatabaseConnection is returned when an engine is constructed without a connection.
	ErrNilDatabaseConnection = errors.New("database connection is nil")

	// ErrEmptyFilePathSupplied is returned when the file engine is configured without a path.
	ErrEmptyFilePathSupplied = errors.New("empty file path supplied")

	ErrBuildingQueryFailed       = errors.New("building query failed")
	ErrQueryingLoansFailed       = errors.New("querying loans failed")
	ErrScanningDBRowFailed       = errors.New("scanning db row failed")
	ErrWritingLoanFailed         = errors.New("writing loan failed")
	ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")
	ErrReadingFileFailed         = errors.New("reading loan file failed")
	ErrWritingFileFailed         = errors.New("writing loan file failed")
	ErrDecodingLoanFailed        = errors.New("decoding loan failed")
)

// VersionUint is the optimistic concurrency token of a stored loan.
type VersionUint = uint
