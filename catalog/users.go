package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
)

// Users is an in-memory user directory.
type Users struct {
	mu    sync.RWMutex
	users map[uuid.UUID]core.User
}

// NewUsers creates a directory containing users.
func NewUsers(users ...core.User) *Users {
	u := &Users{users: make(map[uuid.UUID]core.User, len(users))}
	for _, user := range users {
		u.users[user.ID] = user
	}

	return u
}

// GetUser returns the user with id or core.ErrUserNotFound.
func (u *Users) GetUser(ctx context.Context, id uuid.UUID) (core.User, error) {
	if err := ctx.Err(); err != nil {
		return core.User{}, err
	}

	u.mu.RLock()
	defer u.mu.RUnlock()

	user, ok := u.users[id]
	if !ok {
		return core.User{}, core.ErrUserNotFound
	}

	return user, nil
}

// Put adds or replaces a user.
func (u *Users) Put(user core.User) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.users[user.ID] = user
}

// Len returns the number of users in the directory.
func (u *Users) Len() int {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return len(u.users)
}
