package engine

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
	"github.com/AntonStoeckl/library-loan-engine-go/loanstore"
	"github.com/AntonStoeckl/library-loan-engine-go/notifier"
)

// BookGateway is the engine's view of the book catalog.
// GetBook returns core.ErrBookNotFound for unknown books.
type BookGateway interface {
	GetBook(ctx context.Context, id uuid.UUID) (core.Book, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
}

// UserGateway is the engine's view of the user directory.
// GetUser returns core.ErrUserNotFound for unknown users.
type UserGateway interface {
	GetUser(ctx context.Context, id uuid.UUID) (core.User, error)
}

// LoanStore defines the loan persistence needed by the Engine.
// It is implemented by the memoryengine, jsonfileengine and postgresengine packages.
type LoanStore interface {
	Insert(ctx context.Context, loan core.Loan) (core.Loan, error)
	Update(ctx context.Context, loan core.Loan) (core.Loan, error)
	Get(ctx context.Context, id uuid.UUID) (core.Loan, error)
	All(ctx context.Context) (core.Loans, error)
	Find(ctx context.Context, filter loanstore.Filter) (core.Loans, error)
	Discard(ctx context.Context, id uuid.UUID) error
}

// Publisher delivers notifications to observers. *notifier.Notifier implements it.
type Publisher interface {
	Publish(ctx context.Context, notification notifier.Notification)
}
