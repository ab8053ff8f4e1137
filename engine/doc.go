// Package engine coordinates the loan lifecycle: it creates, returns and renews loans,
// runs the overdue and due-date sweeps, and keeps the book catalog's availability in step
// with the loans it stores.
//
// Every mutating operation follows the same workflow: gather the facts from the gateways and
// the loan store, let the pure Decide function of the matching feature package decide, persist
// the new loan state, toggle the book's availability, and publish the notification.
// Store writes that lose an optimistic concurrency race are retried with exponential backoff,
// re-reading the facts on each attempt.
//
// Mutating operations are serialized by the Engine. Notifications are published while that
// serialization is held, so observers must not call mutating Engine operations synchronously.
package engine
