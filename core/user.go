package core

import (
	"github.com/google/uuid"
)

// User is the directory's view of a borrower, owned by the user gateway.
type User struct {
	ID     uuid.UUID
	Name   string
	Email  string
	Role   Role
	Active bool
}
