package application

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type session struct {
	container *Container
	lastSeen  time.Time
}

// Sessions owns the live containers. A container is created when its session
// opens and dropped on Close or after ttl without use.
type Sessions struct {
	log      *slog.Logger
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	create   func(Owner) *Container
	now      func() time.Time
	onChange func(active int)
}

func NewSessions(log *slog.Logger, ttl time.Duration, create func(Owner) *Container) *Sessions {
	return &Sessions{
		log:      log,
		sessions: make(map[string]*session),
		ttl:      ttl,
		create:   create,
		now:      time.Now,
		onChange: func(int) {},
	}
}

func (s *Sessions) Open(owner Owner) (string, *Container) {
	id := uuid.NewString()
	return id, s.Acquire(id, owner)
}

// Acquire returns the container of session id, creating an empty one if the
// session is unknown (never opened here, expired, or lost on restart).
func (s *Sessions) Acquire(id string, owner Owner) *Container {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.lastSeen = s.now()
		return sess.container
	}
	sess := &session{container: s.create(owner), lastSeen: s.now()}
	s.sessions[id] = sess
	s.onChange(len(s.sessions))
	return sess.container
}

func (s *Sessions) Close(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; ok {
		delete(s.sessions, id)
		s.onChange(len(s.sessions))
	}
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Range calls fn for every live container. fn must not call back into s.
func (s *Sessions) Range(fn func(*Container)) {
	s.mu.Lock()
	containers := make([]*Container, 0, len(s.sessions))
	for _, sess := range s.sessions {
		containers = append(containers, sess.container)
	}
	s.mu.Unlock()

	for _, c := range containers {
		fn(c)
	}
}

// Evict drops sessions idle for longer than the ttl and returns how many.
func (s *Sessions) Evict() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	n := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	if n > 0 {
		s.onChange(len(s.sessions))
	}
	return n
}

// Run evicts idle sessions every interval until ctx is done.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("session janitor stopping")
			return nil
		case <-t.C:
			if n := s.Evict(); n > 0 {
				s.log.Info("sessions evicted", "count", n, "active", s.Len())
			}
		}
	}
}
