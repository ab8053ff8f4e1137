// Package adapters provides database adapter implementations for the PostgreSQL loan store.
//
// Three PostgreSQL libraries are supported: pgx.Pool, sql.DB and sqlx.DB. All of them are
// presented to the store through the common DBAdapter interface.
package adapters
