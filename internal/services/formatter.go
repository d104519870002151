package services

import (
	"fmt"
	"strings"

	"github.com/ad/go-telegram-skills/internal/models"
)

// PluralSkills picks the Russian plural form of "навык" for a count:
// 1 навык, 2-4 навыка, 5+ навыков, with the 11-14 exception.
func PluralSkills(n int) string {
	if n%10 == 1 && n%100 != 11 {
		return "навык"
	}
	if n%10 >= 2 && n%10 <= 4 && !(n%100 >= 12 && n%100 <= 14) {
		return "навыка"
	}
	return "навыков"
}

// FormatSkillList renders the numbered "name — xp XP" block shared by
// /listskills and the XP menus.
func FormatSkillList(skills []*models.Skill) string {
	var sb strings.Builder
	for i, skill := range skills {
		sb.WriteString(fmt.Sprintf("%d. %s — %d XP\n", i+1, skill.Name, skill.XP))
	}
	return sb.String()
}

// FormatRating renders the /rating leaderboard.
func FormatRating(entries []*models.RatingEntry) string {
	var sb strings.Builder
	sb.WriteString("Рейтинг по общему XP.\n\n")
	for i, entry := range entries {
		name := "Без_ника"
		if entry.Username != "" {
			name = "@" + entry.Username
		}
		sb.WriteString(fmt.Sprintf("%d. %s — %d XP\n", i+1, name, entry.TotalXP))
	}
	return sb.String()
}
