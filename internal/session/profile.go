package session

import (
	"strings"

	"github.com/tatianab/terminal-shadows/internal/locale"
	"github.com/tatianab/terminal-shadows/internal/models"
)

// Profile describes the player for the profile screen.
func (s *Session) Profile() []string {
	p := s.Player
	if p == nil {
		return nil
	}
	pr := s.Printer()
	lines := []string{
		pr.Sprintf("👤 %s | 🎯 Level %d", p.Name, p.Level),
		pr.Sprintf("⭐ Experience: %d/%d", p.Experience, p.ExperienceThreshold()),
		pr.Sprintf("💰 Balance: %d BTC", p.Currency),
		pr.Sprintf("⚡ Power: %d (%s)", p.Power(), locale.Text(pr, p.PowerRank().String())),
		"",
	}
	for _, skill := range models.SkillNames {
		lines = append(lines, pr.Sprintf("  %s: %d", locale.Text(pr, skill), p.Skills[skill]))
	}
	st := p.Stats
	lines = append(lines, "",
		pr.Sprintf("🏆 Achievements: %d/%d", len(p.Achievements), len(models.AllAchievements)),
		pr.Sprintf("🕐 Play time: %d min", int(st.PlayTime)/60),
		pr.Sprintf("📖 Chapters completed: %d", st.ChaptersCompleted),
		pr.Sprintf("🌐 Hacks completed: %d", st.HacksCompleted),
		pr.Sprintf("🎒 Items collected: %d", st.ItemsCollected),
		pr.Sprintf("💰 Total earned: %d BTC", st.TotalEarned),
	)
	return lines
}

// Achievements lists every known achievement with its status.
func (s *Session) Achievements() []string {
	pr := s.Printer()
	lines := make([]string, 0, len(models.AllAchievements))
	for _, name := range models.AllAchievements {
		label := locale.Text(pr, name)
		if s.Player != nil && s.Player.HasAchievement(name) {
			lines = append(lines, "✅ "+label)
		} else {
			lines = append(lines, pr.Sprintf("❌ %s [LOCKED]", label))
		}
	}
	return lines
}

// Factions shows each faction's standing, rank and a bar of its magnitude.
func (s *Session) Factions() []string {
	p := s.Player
	if p == nil {
		return nil
	}
	pr := s.Printer()
	lines := make([]string, 0, 2*len(models.FactionNames))
	for _, f := range models.FactionNames {
		standing := p.Factions[f]
		lines = append(lines,
			pr.Sprintf("🎯 %s: %d (%s)", strings.ToUpper(locale.Text(pr, f)), standing, locale.Text(pr, p.FactionRank(f).String())),
			"   "+strings.Repeat("█", models.StandingBar(standing)),
		)
	}
	return lines
}
