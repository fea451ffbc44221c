package conversation_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/outfitly/outfitly/internal/conversation"
)

func newTestSessions(ttl time.Duration) *conversation.Sessions {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return conversation.NewSessions(ttl, time.Minute, logger)
}

func TestAcquire(t *testing.T) {
	sessions := newTestSessions(30 * time.Minute)

	first := sessions.Acquire(7)
	if first.Owner != 7 {
		t.Errorf("Owner = %d, want 7", first.Owner)
	}
	if first.State != conversation.Idle {
		t.Errorf("State = %v, want Idle", first.State)
	}

	second := sessions.Acquire(7)
	if first != second {
		t.Error("Acquire must return the same session for the same owner")
	}

	other := sessions.Acquire(8)
	if other == first {
		t.Error("different owners must get different sessions")
	}
	if sessions.Len() != 2 {
		t.Errorf("Len = %d, want 2", sessions.Len())
	}
}

func TestEvict(t *testing.T) {
	t.Run("expired sessions dropped", func(t *testing.T) {
		sessions := newTestSessions(30 * time.Minute)
		stale := sessions.Acquire(7)
		fresh := sessions.Acquire(8)

		now := time.Now()
		stale.Touch(now.Add(-time.Hour))
		fresh.Touch(now.Add(-time.Minute))

		sessions.Evict(now)

		if sessions.Len() != 1 {
			t.Fatalf("Len = %d, want 1", sessions.Len())
		}
		if sessions.Acquire(8) != fresh {
			t.Error("fresh session must survive eviction")
		}
		if sessions.Acquire(7) == stale {
			t.Error("stale session must be replaced after eviction")
		}
	})

	t.Run("locked session skipped", func(t *testing.T) {
		sessions := newTestSessions(30 * time.Minute)
		busy := sessions.Acquire(7)
		busy.Touch(time.Now().Add(-time.Hour))

		busy.Mu.Lock()
		sessions.Evict(time.Now())
		busy.Mu.Unlock()

		if sessions.Len() != 1 {
			t.Error("a mid-event session must not be evicted")
		}

		sessions.Evict(time.Now())
		if sessions.Len() != 0 {
			t.Error("the session must be evicted once its lock is free")
		}
	})

	t.Run("touch keeps session alive", func(t *testing.T) {
		sessions := newTestSessions(30 * time.Minute)
		s := sessions.Acquire(7)
		s.Touch(time.Now())

		sessions.Evict(time.Now())

		if sessions.Len() != 1 {
			t.Error("recently touched session must survive")
		}
	})
}

func TestSessionReset(t *testing.T) {
	s := &conversation.Session{
		Owner:        7,
		State:        conversation.ConfirmingDraft,
		Origin:       conversation.OriginPhoto,
		Draft:        &conversation.Draft{},
		Bulk:         []conversation.BulkEntry{{Text: "pending"}},
		EditingField: "name",
		EditingItem:  3,
	}

	s.Reset()

	if s.State != conversation.Idle {
		t.Errorf("State = %v, want Idle", s.State)
	}
	if s.Draft != nil || s.Bulk != nil || s.EditingField != "" || s.EditingItem != 0 {
		t.Errorf("scratch not cleared: %+v", s)
	}
	if s.Origin != conversation.OriginNone {
		t.Errorf("Origin = %v, want OriginNone", s.Origin)
	}
}
