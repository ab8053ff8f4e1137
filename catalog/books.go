package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
)

// Books is an in-memory book catalog.
type Books struct {
	mu    sync.RWMutex
	books map[uuid.UUID]core.Book
}

// NewBooks creates a catalog containing books.
func NewBooks(books ...core.Book) *Books {
	b := &Books{books: make(map[uuid.UUID]core.Book, len(books))}
	for _, book := range books {
		b.books[book.ID] = book
	}

	return b
}

// GetBook returns the book with id or core.ErrBookNotFound.
func (b *Books) GetBook(ctx context.Context, id uuid.UUID) (core.Book, error) {
	if err := ctx.Err(); err != nil {
		return core.Book{}, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	book, ok := b.books[id]
	if !ok {
		return core.Book{}, core.ErrBookNotFound
	}

	return book, nil
}

// SetAvailability sets the availability flag of the book with id.
func (b *Books) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	book, ok := b.books[id]
	if !ok {
		return core.ErrBookNotFound
	}

	book.Available = available
	b.books[id] = book

	return nil
}

// Put adds or replaces a book.
func (b *Books) Put(book core.Book) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.books[book.ID] = book
}

// Len returns the number of books in the catalog.
func (b *Books) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.books)
}
