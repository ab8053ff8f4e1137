package notifier

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// ErrNotificationNotFound is returned when marking an unknown notification as read.
var ErrNotificationNotFound = errors.New("notification not found")

const inboxObserverName = "inbox"

// Query selects notifications from an Inbox. The zero value selects all notifications.
type Query struct {
	OnlyUnread bool
	Kinds      []Kind
	Limit      int // 0 means unlimited
}

// Inbox is an Observer that keeps the notifications of each user, newest first.
type Inbox struct {
	mu     sync.RWMutex
	byUser map[uuid.UUID][]Notification
}

// NewInbox creates an empty Inbox.
func NewInbox() *Inbox {
	return &Inbox{byUser: make(map[uuid.UUID][]Notification)}
}

func (i *Inbox) Name() string {
	return inboxObserverName
}

// Notify stores the notification at the head of the recipient's list.
func (i *Inbox) Notify(_ context.Context, notification Notification) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	list := i.byUser[notification.UserID]
	i.byUser[notification.UserID] = append([]Notification{notification.clone()}, list...)

	return nil
}

// Notifications returns the notifications of userID matching query, newest first.
func (i *Inbox) Notifications(userID uuid.UUID, query Query) []Notification {
	i.mu.RLock()
	defer i.mu.RUnlock()

	result := make([]Notification, 0)
	for _, n := range i.byUser[userID] {
		if query.OnlyUnread && n.Read {
			continue
		}

		if len(query.Kinds) > 0 && !slices.Contains(query.Kinds, n.Kind) {
			continue
		}

		result = append(result, n.clone())

		if query.Limit > 0 && len(result) == query.Limit {
			break
		}
	}

	return result
}

// UnreadCount returns the number of unread notifications of userID.
func (i *Inbox) UnreadCount(userID uuid.UUID) int {
	i.mu.RLock()
	defer i.mu.RUnlock()

	count := 0
	for _, n := range i.byUser[userID] {
		if !n.Read {
			count++
		}
	}

	return count
}

// MarkAsRead marks one notification of userID as read.
func (i *Inbox) MarkAsRead(userID uuid.UUID, notificationID uuid.UUID) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	list := i.byUser[userID]
	for idx := range list {
		if list[idx].ID == notificationID {
			list[idx].Read = true
			return nil
		}
	}

	return ErrNotificationNotFound
}

// MarkAllAsRead marks every notification of userID as read and returns how many changed.
func (i *Inbox) MarkAllAsRead(userID uuid.UUID) int {
	i.mu.Lock()
	defer i.mu.Unlock()

	changed := 0
	list := i.byUser[userID]
	for idx := range list {
		if !list[idx].Read {
			list[idx].Read = true
			changed++
		}
	}

	return changed
}
