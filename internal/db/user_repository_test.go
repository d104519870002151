package db

import (
	"testing"

	"github.com/ad/go-telegram-skills/internal/models"
)

func TestUpsertPreservesSavedXP(t *testing.T) {
	queue, cleanup := setupTestDB(t)
	defer cleanup()

	users := NewUserRepository(queue)
	mustCreateUser(t, users, 1, "one")

	if err := users.IncrementSavedXP(1, 25); err != nil {
		t.Fatal(err)
	}

	// The same user comes back with a new handle.
	if err := users.CreateOrUpdate(&models.User{ID: 1, FirstName: "Test", Username: "renamed"}); err != nil {
		t.Fatal(err)
	}

	user, err := users.GetByID(1)
	if err != nil {
		t.Fatal(err)
	}
	if user.Username != "renamed" {
		t.Errorf("username = %q, want %q", user.Username, "renamed")
	}
	if user.SavedXP != 25 {
		t.Errorf("upsert reset saved_xp: %d", user.SavedXP)
	}
}

func TestTopByTotalXP(t *testing.T) {
	queue, cleanup := setupTestDB(t)
	defer cleanup()

	users := NewUserRepository(queue)
	skills := NewSkillRepository(queue)

	// U1: saved 5 + skills 3 and 2 = 10. U2: one skill worth 20.
	mustCreateUser(t, users, 1, "first")
	mustCreateUser(t, users, 2, "second")
	users.IncrementSavedXP(1, 5)

	s1, _ := skills.Create(1, "Бег")
	s2, _ := skills.Create(1, "Чтение")
	s3, _ := skills.Create(2, "Шахматы")
	skills.UpdateXP(s1, 3)
	skills.UpdateXP(s2, 2)
	skills.UpdateXP(s3, 20)

	top, err := users.TopByTotalXP(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	if top[0].Username != "second" || top[0].TotalXP != 20 {
		t.Errorf("unexpected leader: %+v", top[0])
	}
	if top[1].Username != "first" || top[1].TotalXP != 10 {
		t.Errorf("unexpected runner-up: %+v", top[1])
	}
}

func TestTopByTotalXPCountsUsersWithoutSkills(t *testing.T) {
	queue, cleanup := setupTestDB(t)
	defer cleanup()

	users := NewUserRepository(queue)
	mustCreateUser(t, users, 1, "empty")
	users.IncrementSavedXP(1, 7)

	top, err := users.TopByTotalXP(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 1 || top[0].TotalXP != 7 {
		t.Errorf("saved XP without skills should still rank: %+v", top)
	}
}
