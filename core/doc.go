// Package core contains the domain model of the loan lifecycle:
// book loans in a public library.
//
// It holds the Loan entity with its status state machine, the policy tables that
// drive borrowing limits and renewal rules, the lifecycle events published by the
// engine, and the DecisionResult returned by the pure Decide functions of the
// feature packages.
//
// Nothing in this package performs I/O. In Domain-Driven Design or Hexagonal
// Architecture terminology, this would be called the 'domain' layer.
package core
