// Package loanstore defines the shared vocabulary of all Loan Store engines.
//
// A Loan Store keeps every loan ever created, keyed by its id. Loans are inserted once and mutated
// afterward, never deleted; the only exception is Discard, which rolls back an insert whose follow-up
// availability toggle failed before anything was published.
//
// Updates are optimistic: the caller passes the loan with the Version it read, and the store rejects
// the write with ErrConcurrencyConflict if the stored Version moved on in the meantime.
//
// Engines:
//   - memoryengine: map-backed, for tests and single-process deployments
//   - jsonfileengine: memoryengine persisted to a JSON file after every mutation
//   - postgresengine: a loans table accessed through pgx, database/sql or sqlx
package loanstore
