package memoryengine

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
	"github.com/AntonStoeckl/library-loan-engine-go/loanstore"
)

// Logger interface for operational logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

const (
	logMsgLoanInserted        = "loan inserted"
	logMsgLoanUpdated         = "loan updated"
	logMsgLoanDiscarded       = "loan discarded"
	logMsgConcurrencyConflict = "concurrency conflict detected"
	logAttrLoanID             = "loan_id"
	logAttrVersion            = "version"
	logAttrExpectedVersion    = "expected_version"
)

// MemoryEngine is an in-memory Loan Store.
type MemoryEngine struct {
	mu     sync.RWMutex
	loans  map[uuid.UUID]core.Loan
	order  []uuid.UUID
	logger Logger
}

// Option defines a functional option for configuring MemoryEngine.
type Option func(*MemoryEngine) error

// WithLogger sets the logger for the MemoryEngine.
func WithLogger(logger Logger) Option {
	return func(me *MemoryEngine) error {
		me.logger = logger
		return nil
	}
}

// WithLoans seeds the engine with already stored loans, e.g. loaded from a file.
// Loans without a Version get Version 1.
func WithLoans(loans ...core.Loan) Option {
	return func(me *MemoryEngine) error {
		for _, loan := range loans {
			if _, exists := me.loans[loan.ID]; exists {
				return loanstore.ErrDuplicateID
			}

			if loan.Version == 0 {
				loan.Version = 1
			}

			me.loans[loan.ID] = loan.Clone()
			me.order = append(me.order, loan.ID)
		}

		return nil
	}
}

// NewMemoryEngine creates an empty MemoryEngine with optional configuration.
func NewMemoryEngine(options ...Option) (*MemoryEngine, error) {
	me := &MemoryEngine{
		loans: make(map[uuid.UUID]core.Loan),
	}

	for _, option := range options {
		if err := option(me); err != nil {
			return nil, err
		}
	}

	return me, nil
}

// Insert stores a new loan with Version 1 and returns the stored copy.
func (me *MemoryEngine) Insert(_ context.Context, loan core.Loan) (core.Loan, error) {
	me.mu.Lock()
	defer me.mu.Unlock()

	if _, exists := me.loans[loan.ID]; exists {
		return core.Loan{}, loanstore.ErrDuplicateID
	}

	stored := loan.Clone()
	stored.Version = 1
	me.loans[stored.ID] = stored
	me.order = append(me.order, stored.ID)

	me.logDebug(logMsgLoanInserted, logAttrLoanID, stored.ID.String())

	return stored.Clone(), nil
}

// Update replaces a stored loan if its Version still equals loan.Version and returns the stored copy
// with the incremented Version.
func (me *MemoryEngine) Update(_ context.Context, loan core.Loan) (core.Loan, error) {
	me.mu.Lock()
	defer me.mu.Unlock()

	current, exists := me.loans[loan.ID]
	if !exists {
		return core.Loan{}, loanstore.ErrNotFound
	}

	if current.Version != loan.Version {
		me.logDebug(
			logMsgConcurrencyConflict,
			logAttrLoanID, loan.ID.String(),
			logAttrVersion, current.Version,
			logAttrExpectedVersion, loan.Version,
		)

		return core.Loan{}, loanstore.ErrConcurrencyConflict
	}

	stored := loan.Clone()
	stored.Version = current.Version + 1
	me.loans[stored.ID] = stored

	me.logDebug(logMsgLoanUpdated, logAttrLoanID, stored.ID.String(), logAttrVersion, stored.Version)

	return stored.Clone(), nil
}

// Get returns the loan with the given id.
func (me *MemoryEngine) Get(_ context.Context, id uuid.UUID) (core.Loan, error) {
	me.mu.RLock()
	defer me.mu.RUnlock()

	loan, exists := me.loans[id]
	if !exists {
		return core.Loan{}, loanstore.ErrNotFound
	}

	return loan.Clone(), nil
}

// All returns every stored loan in insertion order.
func (me *MemoryEngine) All(ctx context.Context) (core.Loans, error) {
	return me.Find(ctx, loanstore.MatchingAnyLoan())
}

// Find returns the loans matching the filter in insertion order.
func (me *MemoryEngine) Find(_ context.Context, filter loanstore.Filter) (core.Loans, error) {
	me.mu.RLock()
	defer me.mu.RUnlock()

	result := make(core.Loans, 0)
	for _, id := range me.order {
		loan := me.loans[id]
		if filter.Matches(loan) {
			result = append(result, loan.Clone())
		}
	}

	return result, nil
}

// Discard removes a loan. Only rollbacks of a failed creation use it.
func (me *MemoryEngine) Discard(_ context.Context, id uuid.UUID) error {
	me.mu.Lock()
	defer me.mu.Unlock()

	if _, exists := me.loans[id]; !exists {
		return loanstore.ErrNotFound
	}

	delete(me.loans, id)
	for i, storedID := range me.order {
		if storedID == id {
			me.order = append(me.order[:i], me.order[i+1:]...)
			break
		}
	}

	me.logInfo(logMsgLoanDiscarded, logAttrLoanID, id.String())

	return nil
}

func (me *MemoryEngine) logDebug(msg string, args ...any) {
	if me.logger != nil {
		me.logger.Debug(msg, args...)
	}
}

func (me *MemoryEngine) logInfo(msg string, args ...any) {
	if me.logger != nil {
		me.logger.Info(msg, args...)
	}
}
