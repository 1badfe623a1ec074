package fakesessionstore

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-talent-client/sessions"
	"github.com/jrsteele09/go-talent-client/token"
)

var _ sessions.Store = (*FakeSessionStore)(nil)

// FakeSessionStore is an in-memory store. It also records how often it was
// written and cleared so tests can assert on side effects.
type FakeSessionStore struct {
	pair   *token.Pair
	sets   int
	clears int
	lock   sync.RWMutex
}

func NewFakeSessionStore() *FakeSessionStore {
	return &FakeSessionStore{}
}

// NewFakeSessionStoreWith returns a store already holding pair
func NewFakeSessionStoreWith(pair token.Pair) *FakeSessionStore {
	return &FakeSessionStore{pair: &pair}
}

func (s *FakeSessionStore) Get(_ context.Context) (*token.Pair, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if s.pair == nil {
		return nil, nil
	}
	p := *s.pair
	return &p, nil
}

func (s *FakeSessionStore) Set(_ context.Context, pair token.Pair) error {
	if err := pair.Validate(); err != nil {
		return err
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.pair = &pair
	s.sets++
	return nil
}

func (s *FakeSessionStore) Clear(_ context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.pair = nil
	s.clears++
	return nil
}

func (s *FakeSessionStore) Sets() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.sets
}

func (s *FakeSessionStore) Clears() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.clears
}
