package services

import (
	"strings"
	"testing"

	"github.com/ad/go-telegram-skills/internal/models"
	"pgregory.net/rapid"
)

func TestPluralSkills(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{1, "навык"},
		{2, "навыка"},
		{3, "навыка"},
		{4, "навыка"},
		{5, "навыков"},
		{8, "навыков"},
		{11, "навыков"},
		{12, "навыков"},
		{14, "навыков"},
		{21, "навык"},
		{22, "навыка"},
		{25, "навыков"},
		{101, "навык"},
		{111, "навыков"},
		{112, "навыков"},
		{122, "навыка"},
	}

	for _, tc := range cases {
		if got := PluralSkills(tc.n); got != tc.want {
			t.Errorf("PluralSkills(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestPluralSkillsAlwaysReturnsKnownForm(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 1000).Draw(rt, "n")
		got := PluralSkills(n)
		if got != "навык" && got != "навыка" && got != "навыков" {
			rt.Errorf("PluralSkills(%d) returned unknown form %q", n, got)
		}
	})
}

func TestFormatSkillList(t *testing.T) {
	skills := []*models.Skill{
		{ID: 1, Name: "Бег", XP: 10},
		{ID: 2, Name: "Чтение", XP: 0},
	}

	got := FormatSkillList(skills)
	want := "1. Бег — 10 XP\n2. Чтение — 0 XP\n"
	if got != want {
		t.Errorf("FormatSkillList = %q, want %q", got, want)
	}
}

func TestFormatRating(t *testing.T) {
	entries := []*models.RatingEntry{
		{UserID: 2, Username: "leader", TotalXP: 20},
		{UserID: 1, Username: "", TotalXP: 10},
	}

	got := FormatRating(entries)
	if !strings.Contains(got, "1. @leader — 20 XP") {
		t.Errorf("rating missing leader line: %q", got)
	}
	if !strings.Contains(got, "2. Без_ника — 10 XP") {
		t.Errorf("rating missing placeholder line: %q", got)
	}
}
