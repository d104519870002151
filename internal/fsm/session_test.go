package fsm

import (
	"sync"
	"testing"
)

func TestStoreStartOverwrites(t *testing.T) {
	store := NewStore()

	store.Start(1, Session{Mode: ModeCollectingNames, Remaining: 3, Total: 3})
	store.Start(1, Session{Mode: ModeRenaming, SkillID: 7})

	session, ok := store.Get(1)
	if !ok {
		t.Fatal("session should exist")
	}
	if session.Mode != ModeRenaming || session.SkillID != 7 {
		t.Errorf("expected renaming session for skill 7, got %+v", session)
	}
	if session.Remaining != 0 || session.Total != 0 {
		t.Errorf("payload of the overwritten session leaked: %+v", session)
	}
}

func TestStoreClear(t *testing.T) {
	store := NewStore()

	store.Start(1, Session{Mode: ModeAddingSkill})
	store.Clear(1)

	if _, ok := store.Get(1); ok {
		t.Fatal("cleared session should be gone")
	}

	// Clearing an absent session is a no-op.
	store.Clear(2)
}

func TestStoreUserIsolation(t *testing.T) {
	store := NewStore()

	store.Start(1, Session{Mode: ModeCollectingNames, Remaining: 5, Total: 5})
	store.Start(2, Session{Mode: ModeCollectingNames, Remaining: 2, Total: 2})

	first, _ := store.Get(1)
	first.Remaining--
	store.Start(1, first)

	second, _ := store.Get(2)
	if second.Remaining != 2 || second.Total != 2 {
		t.Errorf("user 2 counters changed by user 1's progress: %+v", second)
	}
}

func TestStoreConcurrentUsers(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for userID := int64(1); userID <= 10; userID++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			store.Start(id, Session{Mode: ModeCollectingNames, Remaining: int(id), Total: int(id)})
			for i := 0; i < 100; i++ {
				session, ok := store.Get(id)
				if !ok || session.Total != int(id) {
					t.Errorf("user %d saw foreign session %+v", id, session)
					return
				}
			}
		}(userID)
	}
	wg.Wait()
}
