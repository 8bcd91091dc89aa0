package encounter

import (
	"github.com/tatianab/terminal-shadows/internal/effects"
	"github.com/tatianab/terminal-shadows/internal/locale"
	"github.com/tatianab/terminal-shadows/internal/menu"
	"github.com/tatianab/terminal-shadows/internal/models"
	"github.com/tatianab/terminal-shadows/internal/random"
)

const (
	// MaxTurns ends a fight in a draw.
	MaxTurns = 30
	// BossPenaltyCap bounds the BTC lost to a boss.
	BossPenaltyCap = 50000
	// BossExperiencePerLevel times the boss level is the victory experience.
	BossExperiencePerLevel = 500
)

// Boss is a table-driven opponent. Level is both the entry requirement and
// the experience multiplier.
type Boss struct {
	Name       string
	HP         int
	Damage     int
	Reward     int
	Level      int
	DropSkill  string
	DropAmount int
}

var Bosses = []Boss{
	{"🤖 Cyber Sentinel", 100, 10, 20000, 5, models.SkillStealth, 3},
	{"👨‍💼 Corporate Titan", 200, 15, 50000, 10, models.SkillSocial, 4},
	{"🧠 Neuromancer", 300, 20, 100000, 15, models.SkillProgramming, 5},
	{"👁️ All-Seeing Eye", 500, 30, 200000, 25, models.SkillInvestigation, 6},
	{"💀 Digital Reaper", 800, 40, 350000, 35, models.SkillHacking, 7},
	{"🐉 Quantum Dragon", 1200, 50, 500000, 50, models.SkillHacking, 10},
	{"👹 Lord of Chaos", 2000, 70, 1000000, 75, models.SkillProgramming, 15},
	{"♾️ Absolute Singularity", 5000, 100, 5000000, 100, models.SkillHacking, 20},
}

// Action is a fight move, numbered as presented.
type Action int

const (
	ActionAttack Action = iota + 1
	ActionDefend
	ActionHeavy
	ActionFlee
)

// FightState is where a fight stands.
type FightState int

const (
	FightOngoing FightState = iota
	FightVictory
	FightDefeat
	FightFled
	FightDraw
)

// PlayerHP is the starting health for a player of level.
func PlayerHP(level int) int {
	return 100 + level*10
}

// Fight is one boss battle in progress.
type Fight struct {
	Boss     Boss
	PlayerHP int
	BossHP   int
	Turn     int
	State    FightState

	player   *models.Player
	resolver *Resolver
}

// StartFight begins a fight with b. The player must meet the boss level.
func (r *Resolver) StartFight(p *models.Player, b Boss) (*Fight, error) {
	if p.Level < b.Level {
		return nil, ErrLevelTooLow
	}
	return &Fight{
		Boss:     b,
		PlayerHP: PlayerHP(p.Level),
		BossHP:   b.HP,
		Turn:     1,
		player:   p,
		resolver: r,
	}, nil
}

// Over reports whether the fight has ended.
func (f *Fight) Over() bool {
	return f.State != FightOngoing
}

func (f *Fight) Menu() menu.Menu {
	pr := f.resolver.printer()
	return menu.Menu{
		Title: pr.Sprintf("--- TURN %d ---", f.Turn),
		Text:  pr.Sprintf("🛡️ Your HP: %d\n💀 Boss HP: %d", f.PlayerHP, f.BossHP),
		Options: []menu.Option{
			{Label: pr.Sprintf("⚔️ Hack attack")},
			{Label: pr.Sprintf("🛡️ Firewall defense")},
			{Label: pr.Sprintf("⚡ Heavy attack")},
			{Label: pr.Sprintf("🏃 Flee")},
		},
	}
}

// Act plays one turn. Defending halves the boss hit and skips its normal
// retaliation; fleeing ends the fight with nothing gained or lost.
func (f *Fight) Act(a Action) ([]string, error) {
	if f.Over() {
		return nil, ErrFightOver
	}
	r := f.resolver
	pr := r.printer()
	p := f.player
	var out []string

	switch a {
	case ActionAttack:
		dmg := random.Between(r.rng, 10, 20) + p.Skills[models.SkillHacking]*3
		f.BossHP -= dmg
		out = append(out, pr.Sprintf("⚔️ You deal %d damage!", dmg))
	case ActionDefend:
		taken := f.Boss.Damage / 2
		f.PlayerHP -= taken
		out = append(out, pr.Sprintf("🛡️ The boss deals %d damage (50%% blocked)", taken))
	case ActionHeavy:
		dmg := random.Between(r.rng, 30, 50) + p.Skills[models.SkillProgramming]*5
		f.BossHP -= dmg
		out = append(out, pr.Sprintf("⚡ CRITICAL HIT! %d damage!", dmg))
	case ActionFlee:
		f.State = FightFled
		return append(out, pr.Sprintf("🏃 You fled the fight!")), nil
	default:
		return nil, menu.ErrOutOfRange
	}

	if a != ActionDefend && f.BossHP > 0 {
		hit := max(0, f.Boss.Damage+random.Between(r.rng, -5, 5))
		f.PlayerHP -= hit
		out = append(out, pr.Sprintf("💥 %s deals %d damage!", locale.Text(pr, f.Boss.Name), hit))
	}
	f.Turn++

	switch {
	case f.BossHP <= 0:
		f.State = FightVictory
		out = append(out, f.victory()...)
	case f.PlayerHP <= 0:
		f.State = FightDefeat
		penalty := p.Penalize(BossPenaltyCap)
		out = append(out, pr.Sprintf("💀 YOU LOST!"), pr.Sprintf("💸 Lost: %d BTC", penalty))
	case f.Turn > MaxTurns:
		f.State = FightDraw
		out = append(out, pr.Sprintf("⏰ The fight dragged on too long. Draw!"))
	}
	return out, nil
}

func (f *Fight) victory() []string {
	r := f.resolver
	p := f.player
	out := []string{r.printer().Sprintf("🎉 VICTORY OVER %s!", locale.Text(r.printer(), f.Boss.Name))}
	p.BossDefeats++
	p.Stats.BossesDefeated++
	bag := effects.Bag{
		effects.GrantCurrency{Amount: f.Boss.Reward},
		effects.GrantSkill{Skill: f.Boss.DropSkill, Amount: f.Boss.DropAmount},
		effects.GrantExperience{Amount: f.Boss.Level * BossExperiencePerLevel},
	}
	return append(out, r.effects.Apply(bag, p)...)
}
