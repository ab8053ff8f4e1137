package memoryengine_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
	"github.com/AntonStoeckl/library-loan-engine-go/loanstore"
	"github.com/AntonStoeckl/library-loan-engine-go/loanstore/memoryengine"
)

func Test_MemoryEngine_InsertAndGet(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := givenEmptyStore(t)
	loan := givenLoan(uuid.New())

	// act
	inserted, err := store.Insert(ctx, loan)
	require.NoError(t, err)
	found, getErr := store.Get(ctx, loan.ID)

	// assert
	require.NoError(t, getErr)
	assert.Equal(t, uint(1), inserted.Version)
	assert.Equal(t, inserted, found)
}

func Test_MemoryEngine_Insert_RejectsDuplicateID(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := givenEmptyStore(t)
	loan := givenLoan(uuid.New())
	_, err := store.Insert(ctx, loan)
	require.NoError(t, err)

	// act
	_, err = store.Insert(ctx, loan)

	// assert
	assert.ErrorIs(t, err, loanstore.ErrDuplicateID)
}

func Test_MemoryEngine_Get_NotFound(t *testing.T) {
	_, err := givenEmptyStore(t).Get(context.Background(), uuid.New())

	assert.ErrorIs(t, err, loanstore.ErrNotFound)
}

func Test_MemoryEngine_Update_BumpsVersion(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := givenEmptyStore(t)
	inserted, err := store.Insert(ctx, givenLoan(uuid.New()))
	require.NoError(t, err)
	inserted.RenewalCount = 1

	// act
	updated, updateErr := store.Update(ctx, inserted)

	// assert
	require.NoError(t, updateErr)
	assert.Equal(t, uint(2), updated.Version)
	assert.Equal(t, 1, updated.RenewalCount)
}

func Test_MemoryEngine_Update_StaleVersionIsAConcurrencyConflict(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := givenEmptyStore(t)
	inserted, err := store.Insert(ctx, givenLoan(uuid.New()))
	require.NoError(t, err)
	_, err = store.Update(ctx, inserted)
	require.NoError(t, err)

	// act
	_, err = store.Update(ctx, inserted)

	// assert
	assert.ErrorIs(t, err, loanstore.ErrConcurrencyConflict)
}

func Test_MemoryEngine_Update_NotFound(t *testing.T) {
	_, err := givenEmptyStore(t).Update(context.Background(), givenLoan(uuid.New()))

	assert.ErrorIs(t, err, loanstore.ErrNotFound)
}

func Test_MemoryEngine_StoredLoansShareNoPointersWithCallers(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := givenEmptyStore(t)
	loan := givenLoan(uuid.New())
	returnDate := loan.LoanDate.Add(time.Hour)
	loan.ReturnDate = &returnDate
	want := *loan.ReturnDate
	_, err := store.Insert(ctx, loan)
	require.NoError(t, err)

	// act
	*loan.ReturnDate = loan.LoanDate
	found, getErr := store.Get(ctx, loan.ID)

	// assert
	require.NoError(t, getErr)
	require.NotNil(t, found.ReturnDate)
	assert.True(t, found.ReturnDate.Equal(want))
	assert.False(t, found.ReturnDate.Equal(loan.LoanDate))
}

func Test_MemoryEngine_Find_KeepsInsertionOrder(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := givenEmptyStore(t)
	userID := uuid.New()
	first := givenLoan(userID)
	other := givenLoan(uuid.New())
	second := givenLoan(userID)
	second.Status = core.LoanStatusOverdue
	returned := givenLoan(userID)
	returned.Status = core.LoanStatusReturned

	for _, loan := range []core.Loan{first, other, second, returned} {
		_, err := store.Insert(ctx, loan)
		require.NoError(t, err)
	}

	// act
	outstanding, err := store.Find(ctx, loanstore.OutstandingLoansOf(userID))
	require.NoError(t, err)
	all, allErr := store.All(ctx)
	require.NoError(t, allErr)

	// assert
	require.Len(t, outstanding, 2)
	assert.Equal(t, first.ID, outstanding[0].ID)
	assert.Equal(t, second.ID, outstanding[1].ID)
	assert.Len(t, all, 4)
}

func Test_MemoryEngine_Discard(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := givenEmptyStore(t)
	loan := givenLoan(uuid.New())
	_, err := store.Insert(ctx, loan)
	require.NoError(t, err)

	// act
	discardErr := store.Discard(ctx, loan.ID)

	// assert
	require.NoError(t, discardErr)
	_, getErr := store.Get(ctx, loan.ID)
	assert.ErrorIs(t, getErr, loanstore.ErrNotFound)
	all, _ := store.All(ctx)
	assert.Empty(t, all)
	assert.ErrorIs(t, store.Discard(ctx, loan.ID), loanstore.ErrNotFound)
}

func Test_MemoryEngine_WithLoans_SeedsTheStore(t *testing.T) {
	// arrange
	seeded := givenLoan(uuid.New())
	seeded.Version = 7

	// act
	store, err := memoryengine.NewMemoryEngine(memoryengine.WithLoans(seeded, givenLoan(uuid.New())))

	// assert
	require.NoError(t, err)
	found, getErr := store.Get(context.Background(), seeded.ID)
	require.NoError(t, getErr)
	assert.Equal(t, uint(7), found.Version)
	all, _ := store.All(context.Background())
	assert.Len(t, all, 2)
	assert.Equal(t, uint(1), all[1].Version)
}

func Test_MemoryEngine_WithLoans_RejectsDuplicates(t *testing.T) {
	loan := givenLoan(uuid.New())

	_, err := memoryengine.NewMemoryEngine(memoryengine.WithLoans(loan, loan))

	assert.ErrorIs(t, err, loanstore.ErrDuplicateID)
}

func Test_MemoryEngine_ConcurrentUpdatesOnlyOneWins(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := givenEmptyStore(t)
	inserted, err := store.Insert(ctx, givenLoan(uuid.New()))
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	// act
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, updateErr := store.Update(ctx, inserted); updateErr == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// assert
	assert.Equal(t, 1, succeeded)
}

func givenEmptyStore(t *testing.T) *memoryengine.MemoryEngine {
	store, err := memoryengine.NewMemoryEngine()
	require.NoError(t, err)

	return store
}

func givenLoan(userID uuid.UUID) core.Loan {
	loanDate := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return core.BuildLoan(uuid.New(), userID, uuid.New(), core.LoanCategoryStandard, loanDate, loanDate.Add(core.Days(14)))
}
