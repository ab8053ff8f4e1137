// Package testdoubles provides spies for the observability contracts of the shell package.
package testdoubles
