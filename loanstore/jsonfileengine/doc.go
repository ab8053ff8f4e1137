// Package jsonfileengine provides a Loan Store that persists all loans to a single JSON file.
//
// The engine keeps the loans in a memoryengine and rewrites the whole file after every mutation.
// Writes go to a temporary file in the same directory which is then renamed over the target,
// so a crash never leaves a half-written file behind. If writing fails, the in-memory state is
// reloaded from the last good file and the error is returned.
//
// It is meant for single-process deployments with a modest number of loans.
package jsonfileengine
