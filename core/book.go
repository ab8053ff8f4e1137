package core

import (
	"github.com/google/uuid"
)

// Book is the catalog's view of a book, owned by the book gateway.
type Book struct {
	ID        uuid.UUID
	Title     string
	Author    string
	ISBN      string
	Available bool
}
