// Package memory keeps identity state in process. It backs the service when
// no MongoDB or Redis is configured.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/trustabee/honey-marketplace/internal/identity/application"
	"github.com/trustabee/honey-marketplace/internal/identity/domain"
)

type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (s *UserStore) Create(_ context.Context, u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byEmail[u.Email]; taken {
		return application.ErrEmailTaken
	}
	s.byID[u.ID] = u
	s.byEmail[u.Email] = u.ID
	return nil
}

func (s *UserStore) ByEmail(_ context.Context, email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return domain.User{}, application.ErrUserNotFound
	}
	return s.byID[id], nil
}

func (s *UserStore) ByID(_ context.Context, id string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return domain.User{}, application.ErrUserNotFound
	}
	return u, nil
}

// Revocations remembers revoked token ids until they would have expired.
type Revocations struct {
	mu    sync.Mutex
	until map[string]time.Time
	now   func() time.Time
}

func NewRevocations() *Revocations {
	return &Revocations{until: make(map[string]time.Time), now: time.Now}
}

func (r *Revocations) Revoke(_ context.Context, tokenID string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.until[tokenID] = until
	return nil
}

func (r *Revocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	until, ok := r.until[tokenID]
	if !ok {
		return false, nil
	}
	if r.now().After(until) {
		delete(r.until, tokenID)
		return false, nil
	}
	return true, nil
}
