package effects

import (
	"strings"

	"github.com/tatianab/terminal-shadows/internal/locale"
	"github.com/tatianab/terminal-shadows/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Resolver applies effect bags to a player and describes what changed.
type Resolver struct {
	printer *message.Printer
}

// NewResolver returns a resolver that formats messages with p.
// A nil printer formats in English.
func NewResolver(p *message.Printer) *Resolver {
	if p == nil {
		p = message.NewPrinter(language.English)
	}
	return &Resolver{printer: p}
}

// Printer exposes the printer so encounter reports share the locale.
func (r *Resolver) Printer() *message.Printer {
	return r.printer
}

// Apply mutates p with every effect in bag, in evaluation order, then
// unlocks any milestone achievements the new state satisfies. Effects that
// change nothing produce no message.
func (r *Resolver) Apply(bag Bag, p *models.Player) []string {
	var out []string
	for _, e := range bag.Ordered() {
		if msg := r.apply(e, p); msg != "" {
			out = append(out, msg)
		}
	}
	return append(out, r.Milestones(p)...)
}

// ApplySpec applies an authored choice effect.
func (r *Resolver) ApplySpec(spec models.EffectSpec, p *models.Player) []string {
	return r.Apply(FromSpec(spec), p)
}

// ApplyEvent applies an encounter reward or penalty. Currency and experience
// may be negative and are floored at zero; "level" raises by the given amount;
// faction and faction2 carry independent standing changes.
func (r *Resolver) ApplyEvent(spec models.EffectSpec, p *models.Player) []string {
	return r.Apply(FromEventSpec(spec), p)
}

// Milestones unlocks counter-based achievements and reports each new one.
func (r *Resolver) Milestones(p *models.Player) []string {
	var out []string
	for _, name := range p.UnlockMilestones() {
		out = append(out, r.printer.Sprintf("🏆 Achievement unlocked: %s", locale.Text(r.printer, name)))
	}
	return out
}

func (r *Resolver) apply(e Effect, p *models.Player) string {
	pr := r.printer
	switch e := e.(type) {
	case GrantCurrency:
		applied := p.GrantCurrency(e.Amount)
		switch {
		case applied > 0:
			return pr.Sprintf("💰 +%d BTC", applied)
		case applied < 0:
			return pr.Sprintf("💸 -%d BTC", -applied)
		}
	case SetLevel:
		p.SetLevel(e.Level)
		return pr.Sprintf("🎉 Level set to %d!", p.Level)
	case RaiseLevel:
		if e.Levels <= 0 {
			return ""
		}
		p.RaiseLevel(e.Levels)
		return pr.Sprintf("🎉 Level raised to %d!", p.Level)
	case GrantSkill:
		if lvl, ok := p.GrantSkill(e.Skill, e.Amount); ok {
			return pr.Sprintf("⚡ %s raised to %d", strings.ToUpper(locale.Text(pr, e.Skill)), lvl)
		}
	case GrantAllSkills:
		if e.Amount > 0 {
			p.GrantAllSkills(e.Amount)
			return pr.Sprintf("⚡ All skills +%d", e.Amount)
		}
	case GrantExperience:
		return r.experience(e.Amount, p)
	case GrantItem:
		p.AddItem(e.Item)
		return pr.Sprintf("🎒 Received: %s", locale.Text(pr, e.Item))
	case ShiftReputation:
		return pr.Sprintf("📊 Reputation: %d", p.ShiftReputation(e.Amount))
	case ShiftFaction:
		if v, ok := p.ShiftFaction(e.Faction, e.Amount); ok {
			return pr.Sprintf("🎯 %s: %d (%s)", strings.ToUpper(locale.Text(pr, e.Faction)), v, locale.Text(pr, p.FactionRank(e.Faction).String()))
		}
	case UnlockAchievement:
		if p.UnlockAchievement(e.Name) {
			return pr.Sprintf("🏆 Achievement unlocked: %s", locale.Text(pr, e.Name))
		}
	}
	return ""
}

func (r *Resolver) experience(amount int, p *models.Player) string {
	if _, leveled := p.GrantExperience(amount); leveled {
		return LevelUpMessage(r.printer, p.Level)
	}
	switch {
	case amount > 0:
		return r.printer.Sprintf("⭐ +%d experience", amount)
	case amount < 0:
		return r.printer.Sprintf("⭐ -%d experience", -amount)
	}
	return ""
}

// LevelUpMessage is the notice shown when a player reaches level.
func LevelUpMessage(p *message.Printer, level int) string {
	return p.Sprintf("🎉 Level up! Now level %d. All skills +1!", level)
}
