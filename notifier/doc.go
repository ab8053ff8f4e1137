// Package notifier fans out loan notifications to subscribed observers.
//
// Publishing is synchronous and never fails: observers are called in subscription order
// on a snapshot of the subscriber list, and a failing or panicking observer is logged and skipped.
// Inbox is the bundled observer that keeps a per-user notification history.
package notifier
