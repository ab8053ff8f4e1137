package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-loan-engine-go/catalog"
	"github.com/AntonStoeckl/library-loan-engine-go/core"
	"github.com/AntonStoeckl/library-loan-engine-go/loanstore"
	"github.com/AntonStoeckl/library-loan-engine-go/loanstore/memoryengine"
	"github.com/AntonStoeckl/library-loan-engine-go/notifier"
	"github.com/AntonStoeckl/library-loan-engine-go/shell"
)

var (
	baseTime = time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)

	errCatalogOffline = errors.New("catalog offline")
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = t
}

type publisherSpy struct {
	mu            sync.Mutex
	notifications []notifier.Notification
}

func (p *publisherSpy) Publish(_ context.Context, notification notifier.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.notifications = append(p.notifications, notification)
}

func (p *publisherSpy) ofKind(kind notifier.Kind) []notifier.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()

	var found []notifier.Notification
	for _, n := range p.notifications {
		if n.Kind == kind {
			found = append(found, n)
		}
	}

	return found
}

func (p *publisherSpy) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.notifications)
}

// bookGatewaySpy counts availability toggles and can be told to fail them.
type bookGatewaySpy struct {
	*catalog.Books

	mu              sync.Mutex
	toggles         int
	failToggles     bool
	failLookups     bool
	lastToggleValue bool
}

func (b *bookGatewaySpy) GetBook(ctx context.Context, id uuid.UUID) (core.Book, error) {
	b.mu.Lock()
	fail := b.failLookups
	b.mu.Unlock()

	if fail {
		return core.Book{}, errCatalogOffline
	}

	return b.Books.GetBook(ctx, id)
}

func (b *bookGatewaySpy) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	b.mu.Lock()
	b.toggles++
	b.lastToggleValue = available
	fail := b.failToggles
	b.mu.Unlock()

	if fail {
		return errCatalogOffline
	}

	return b.Books.SetAvailability(ctx, id, available)
}

func (b *bookGatewaySpy) toggleCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.toggles
}

func (b *bookGatewaySpy) setFailToggles(fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failToggles = fail
}

func (b *bookGatewaySpy) setFailLookups(fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failLookups = fail
}

// conflictingStore loses the optimistic concurrency race for the first n updates.
type conflictingStore struct {
	LoanStore

	mu        sync.Mutex
	conflicts int
	updates   int
}

func (s *conflictingStore) Update(ctx context.Context, loan core.Loan) (core.Loan, error) {
	s.mu.Lock()
	s.updates++
	conflict := s.conflicts > 0
	if conflict {
		s.conflicts--
	}
	s.mu.Unlock()

	if conflict {
		return core.Loan{}, loanstore.ErrConcurrencyConflict
	}

	return s.LoanStore.Update(ctx, loan)
}

type fixture struct {
	engine    *Engine
	store     *memoryengine.MemoryEngine
	books     *bookGatewaySpy
	users     *catalog.Users
	publisher *publisherSpy
	clock     *testClock
}

func givenFixture(t *testing.T, options ...Option) fixture {
	t.Helper()

	store, err := memoryengine.NewMemoryEngine()
	require.NoError(t, err)

	return givenFixtureWithStore(t, store, store, options...)
}

func givenFixtureWithStore(
	t *testing.T,
	memory *memoryengine.MemoryEngine,
	store LoanStore,
	options ...Option,
) fixture {
	t.Helper()

	f := fixture{
		store:     memory,
		books:     &bookGatewaySpy{Books: catalog.NewBooks()},
		users:     catalog.NewUsers(),
		publisher: &publisherSpy{},
		clock:     &testClock{now: baseTime},
	}

	options = append([]Option{
		WithClock(f.clock.Now),
		WithRetryOptions(shell.WithBaseDelay(0)),
	}, options...)

	e, err := NewEngine(store, f.books, f.users, f.publisher, options...)
	require.NoError(t, err)
	f.engine = e

	return f
}

func (f fixture) givenBook(available bool) core.Book {
	book := core.Book{ID: uuid.New(), Title: "Solaris", Author: "Stanisław Lem", Available: available}
	f.books.Put(book)

	return book
}

func (f fixture) givenUser(role core.Role, active bool) core.User {
	user := core.User{ID: uuid.New(), Name: "Grace", Email: "grace@example.com", Role: role, Active: active}
	f.users.Put(user)

	return user
}

func (f fixture) givenReader() core.User {
	return f.givenUser(core.RoleReader, true)
}

func (f fixture) givenLoan(t *testing.T, user core.User) core.Loan {
	t.Helper()

	loan, err := f.engine.CreateLoan(context.Background(), user.ID, f.givenBook(true).ID)
	require.NoError(t, err)

	return loan
}

func (f fixture) bookAvailable(t *testing.T, bookID uuid.UUID) bool {
	t.Helper()

	book, err := f.books.Books.GetBook(context.Background(), bookID)
	require.NoError(t, err)

	return book.Available
}

func days(n int) time.Duration {
	return core.Days(n)
}
