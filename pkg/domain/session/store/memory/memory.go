package memory

import (
	"context"
	"sync"
	"time"

	"github.com/uw-gac/phenotag/pkg/domain/session"
	"github.com/uw-gac/phenotag/pkg/domain/session/store"
)

type entry struct {
	session  session.Session
	deadline time.Time
}

// in-process session store
type memoryStore struct { // implements store.Store
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry

	// injectable for tests
	now func() time.Time
}

type Option func(*memoryStore) *memoryStore

// WithClock replaces the time source, to test expiry without sleeping.
func WithClock(now func() time.Time) Option {
	return func(m *memoryStore) *memoryStore {
		m.now = now
		return m
	}
}

func New(ttl time.Duration, options ...Option) *memoryStore {
	m := &memoryStore{
		ttl:     ttl,
		entries: map[string]entry{},
		now:     time.Now,
	}
	for _, o := range options {
		m = o(m)
	}
	return m
}

var _ store.Store = &memoryStore{}

func key(actor string, ns session.Namespace) string {
	return actor + "/" + string(ns)
}

func (m *memoryStore) Put(ctx context.Context, s session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// expired snapshots are only dangling memory; sweep them while we
	// hold the lock anyway
	now := m.now()
	for k, e := range m.entries {
		if e.deadline.Before(now) {
			delete(m.entries, k)
		}
	}

	m.entries[key(s.Actor, s.Namespace)] = entry{
		session: s, deadline: now.Add(m.ttl),
	}
	return nil
}

func (m *memoryStore) Get(
	ctx context.Context, actor string, ns session.Namespace,
) (session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key(actor, ns)
	e, ok := m.entries[k]
	if !ok {
		return session.Session{}, session.ErrNoSession
	}

	now := m.now()
	if e.deadline.Before(now) {
		delete(m.entries, k)
		return session.Session{}, session.ErrNoSession
	}

	e.deadline = now.Add(m.ttl)
	m.entries[k] = e
	return e.session, nil
}

func (m *memoryStore) Delete(
	ctx context.Context, actor string, ns session.Namespace,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key(actor, ns))
	return nil
}
