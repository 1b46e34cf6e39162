// Package credentials exposes the stored Rovas API key pair to the rest of
// the system, with change notifications for the surrounding UI. The pipeline
// itself never caches credentials: it asks for the current pair immediately
// before each run.
package credentials

import (
	"context"
	"sync"

	"github.com/alexanderramin/chronomap/internal/domain"
	"github.com/alexanderramin/chronomap/internal/repository"
)

// Store wraps a CredentialRepo with change subscription.
type Store struct {
	repo repository.CredentialRepo

	mu   sync.Mutex
	subs map[int]chan domain.Credentials
	next int
}

// NewStore creates a Store over the given repository.
func NewStore(repo repository.CredentialRepo) *Store {
	return &Store{repo: repo, subs: make(map[int]chan domain.Credentials)}
}

// Current reads the pair from the underlying repository. Always a fresh
// read; a credential change mid-session is picked up by the next pipeline
// run.
func (s *Store) Current(ctx context.Context) (domain.Credentials, error) {
	return s.repo.Get(ctx)
}

// Save persists the pair and notifies subscribers.
func (s *Store) Save(ctx context.Context, creds domain.Credentials) error {
	if err := s.repo.Set(ctx, creds); err != nil {
		return err
	}
	s.notify(creds)
	return nil
}

// Clear removes the stored pair and notifies subscribers.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return err
	}
	s.notify(domain.Credentials{})
	return nil
}

// Subscribe returns a channel receiving each credential change and a
// cancel function. Slow subscribers drop notifications rather than block
// a save.
func (s *Store) Subscribe() (<-chan domain.Credentials, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	ch := make(chan domain.Credentials, 1)
	s.subs[id] = ch
	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (s *Store) notify(creds domain.Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- creds:
		default:
		}
	}
}
