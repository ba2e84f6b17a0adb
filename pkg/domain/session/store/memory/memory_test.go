package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/uw-gac/phenotag/pkg/domain/session"
	"github.com/uw-gac/phenotag/pkg/domain/session/store/memory"
	"github.com/uw-gac/phenotag/pkg/utils/try"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	newSession := func(actor string, ns session.Namespace) session.Session {
		return session.Session{
			Id: "test-session", Actor: actor, Namespace: ns,
			TagId: 42, StudyId: 7, Items: []int64{3, 5, 8},
		}
	}

	t.Run("Get should return what Put stored", func(t *testing.T) {
		store := memory.New(30 * time.Minute)
		stored := newSession("alice", session.ReviewLoop)
		if err := store.Put(ctx, stored); err != nil {
			t.Fatal(err)
		}

		got := try.To(store.Get(ctx, "alice", session.ReviewLoop)).OrFatal(t)
		if got.Id != stored.Id {
			t.Errorf("got session %s, want %s", got.Id, stored.Id)
		}
	})

	t.Run("Get without Put should return ErrNoSession", func(t *testing.T) {
		store := memory.New(30 * time.Minute)

		_, err := store.Get(ctx, "alice", session.ReviewLoop)
		if !errors.Is(err, session.ErrNoSession) {
			t.Errorf("got %v, want ErrNoSession", err)
		}
	})

	t.Run("sessions are keyed by actor and namespace", func(t *testing.T) {
		store := memory.New(30 * time.Minute)
		if err := store.Put(ctx, newSession("alice", session.ReviewLoop)); err != nil {
			t.Fatal(err)
		}

		if _, err := store.Get(ctx, "bob", session.ReviewLoop); !errors.Is(err, session.ErrNoSession) {
			t.Errorf("other actor: got %v, want ErrNoSession", err)
		}
		if _, err := store.Get(ctx, "alice", session.DecisionLoop); !errors.Is(err, session.ErrNoSession) {
			t.Errorf("other namespace: got %v, want ErrNoSession", err)
		}
	})

	t.Run("Delete should discard the session", func(t *testing.T) {
		store := memory.New(30 * time.Minute)
		if err := store.Put(ctx, newSession("alice", session.ReviewLoop)); err != nil {
			t.Fatal(err)
		}
		if err := store.Delete(ctx, "alice", session.ReviewLoop); err != nil {
			t.Fatal(err)
		}

		if _, err := store.Get(ctx, "alice", session.ReviewLoop); !errors.Is(err, session.ErrNoSession) {
			t.Errorf("got %v, want ErrNoSession", err)
		}

		// deleting again is fine
		if err := store.Delete(ctx, "alice", session.ReviewLoop); err != nil {
			t.Errorf("second delete: %v", err)
		}
	})

	t.Run("sessions idle longer than the TTL expire", func(t *testing.T) {
		now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
		clock := func() time.Time { return now }
		store := memory.New(30*time.Minute, memory.WithClock(clock))

		if err := store.Put(ctx, newSession("alice", session.ReviewLoop)); err != nil {
			t.Fatal(err)
		}

		now = now.Add(31 * time.Minute)
		if _, err := store.Get(ctx, "alice", session.ReviewLoop); !errors.Is(err, session.ErrNoSession) {
			t.Errorf("got %v, want ErrNoSession", err)
		}
	})

	t.Run("Get refreshes the TTL", func(t *testing.T) {
		now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
		clock := func() time.Time { return now }
		store := memory.New(30*time.Minute, memory.WithClock(clock))

		if err := store.Put(ctx, newSession("alice", session.ReviewLoop)); err != nil {
			t.Fatal(err)
		}

		// touch the session every 20 minutes for over an hour
		for i := 0; i < 4; i++ {
			now = now.Add(20 * time.Minute)
			try.To(store.Get(ctx, "alice", session.ReviewLoop)).OrFatal(t)
		}
	})
}
