package encounter

import (
	"strings"

	"github.com/tatianab/terminal-shadows/internal/locale"
	"github.com/tatianab/terminal-shadows/internal/menu"
	"github.com/tatianab/terminal-shadows/internal/models"
)

func lockMark(ok bool) string {
	if ok {
		return "🟢"
	}
	return "🔴"
}

// TargetMenu lists hacking targets; those above the player's level are disabled.
func (r *Resolver) TargetMenu(p *models.Player) menu.Menu {
	pr := r.printer()
	m := menu.Menu{
		Title:     pr.Sprintf("🎯 CHOOSE A TARGET"),
		Text:      pr.Sprintf("💰 Balance: %d BTC", p.Currency),
		AllowBack: true,
	}
	for _, t := range Targets {
		ok := p.Level >= t.RequiredLevel
		m.Options = append(m.Options, menu.Option{
			Label:       lockMark(ok) + " " + locale.Text(pr, t.Name),
			Description: pr.Sprintf("Reward: %d BTC | Level: %d+ | Chance: %.0f%%", t.Reward, t.RequiredLevel, 100*HackChance(p.Skills[models.SkillHacking], t.Difficulty)),
			Disabled:    !ok,
		})
	}
	return m
}

// ShopMenu lists shop items; unaffordable ones are disabled.
func (r *Resolver) ShopMenu(p *models.Player) menu.Menu {
	pr := r.printer()
	m := menu.Menu{
		Title:     pr.Sprintf("🛒 TOOL SHOP"),
		Text:      pr.Sprintf("💰 Balance: %d BTC", p.Currency),
		AllowBack: true,
	}
	for _, it := range ShopItems {
		m.Options = append(m.Options, menu.Option{
			Label: pr.Sprintf("%s - %d BTC", locale.Text(pr, it.Name), it.Price),
			Description: locale.Text(pr, it.Description) + " · " +
				pr.Sprintf("Bonus: +%d %s", it.Bonus, it.Skill),
			Disabled: p.Currency < it.Price,
		})
	}
	return m
}

// CraftMenu lists recipes with the materials the player holds.
func (r *Resolver) CraftMenu(p *models.Player) menu.Menu {
	pr := r.printer()
	m := menu.Menu{
		Title:     pr.Sprintf("🔨 CRAFTING"),
		Text:      pr.Sprintf("💰 Balance: %d BTC", p.Currency),
		AllowBack: true,
	}
	for _, rec := range Recipes {
		var parts []string
		for _, mat := range rec.Materials {
			have := p.CountItem(mat.Item)
			parts = append(parts, pr.Sprintf("%s %s x%d (%d)", lockMark(have >= mat.Count), locale.Text(pr, mat.Item), mat.Count, have))
		}
		m.Options = append(m.Options, menu.Option{
			Label:       pr.Sprintf("%s (cost: %d BTC)", locale.Text(pr, rec.Result), rec.Cost),
			Description: strings.Join(parts, ", "),
			Disabled:    p.Currency < rec.Cost || len(rec.Missing(p)) > 0,
		})
	}
	return m
}

// BossMenu lists bosses; those above the player's level are disabled.
func (r *Resolver) BossMenu(p *models.Player) menu.Menu {
	pr := r.printer()
	m := menu.Menu{
		Title:     pr.Sprintf("👹 BOSS BATTLES"),
		Text:      pr.Sprintf("💪 Your level: %d | 💰 BTC: %d", p.Level, p.Currency),
		AllowBack: true,
	}
	for _, b := range Bosses {
		ok := p.Level >= b.Level
		m.Options = append(m.Options, menu.Option{
			Label:       pr.Sprintf("%s %s [Lv. %d+]", lockMark(ok), locale.Text(pr, b.Name), b.Level),
			Description: pr.Sprintf("💀 HP: %d | 🗡️ Damage: %d | 💰 Reward: %d BTC", b.HP, b.Damage, b.Reward),
			Disabled:    !ok,
		})
	}
	return m
}
