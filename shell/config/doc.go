// Package config loads the runtime configuration of the loan engine from the environment
// and builds the PostgreSQL connections for the three supported drivers (pgx.Pool, sql.DB, sqlx.DB).
//
// Values come from the process environment. Optional .env files are read first and never
// override variables that are already set.
package config
