// Package shell contains the infrastructure shared by the loan engine: the dependency-free observability
// contracts, helpers to record metrics, spans and logs for commands and queries, the optimistic
// concurrency retry, and the translation of domain events into user notifications.
//
// The observability interfaces are satisfied by *slog.Logger, by the oteladapters package and by
// the promadapters package.
package shell
