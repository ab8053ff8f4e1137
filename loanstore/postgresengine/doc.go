// Package postgresengine provides a PostgreSQL implementation of the Loan Store.
//
// Loans live in one table (default "loans") with one row per loan. Statements are built with goqu
// and executed through one of three adapters (pgx, sql.DB, sqlx). Updates carry the expected version
// in their WHERE clause; zero affected rows on an existing loan are reported as
// loanstore.ErrConcurrencyConflict.
//
// Usage examples:
//
//	db, _ := pgxpool.New(context.Background(), dsn)
//	store, _ := postgresengine.NewLoanStoreFromPGXPool(db, postgresengine.WithTableName("library_loans"))
//	_ = store.CreateSchema(ctx)
//
//	loan, _ = store.Insert(ctx, loan)
//	loan.RenewalCount++
//	loan, err = store.Update(ctx, loan) // loanstore.ErrConcurrencyConflict if someone else was faster
package postgresengine
