package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/trustabee/honey-marketplace/internal/notification/domain"
)

// Inbox keeps at most capacity notifications per user in process memory.
type Inbox struct {
	mu       sync.RWMutex
	capacity int
	byUser   map[string][]domain.Notification
}

func NewInbox(capacity int) *Inbox {
	return &Inbox{capacity: capacity, byUser: make(map[string][]domain.Notification)}
}

func (i *Inbox) Push(_ context.Context, n domain.Notification) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	list := slices.Insert(i.byUser[n.UserID], 0, n)
	if i.capacity > 0 && len(list) > i.capacity {
		list = list[:i.capacity]
	}
	i.byUser[n.UserID] = list
	return nil
}

func (i *Inbox) List(_ context.Context, userID string, limit int) ([]domain.Notification, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	list := i.byUser[userID]
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return append(make([]domain.Notification, 0, len(list)), list...), nil
}
