// Package memoryengine provides a map-backed Loan Store.
//
// Loans are kept in insertion order, which is also the order All and Find return them in.
// The engine is safe for concurrent use. Stored loans are cloned on the way in and out, so callers
// never share pointer fields with the store.
package memoryengine
