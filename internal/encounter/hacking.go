package encounter

import (
	"github.com/tatianab/terminal-shadows/internal/effects"
	"github.com/tatianab/terminal-shadows/internal/locale"
	"github.com/tatianab/terminal-shadows/internal/models"
	"github.com/tatianab/terminal-shadows/internal/random"
)

const (
	hackCap         = 0.95
	hackSkillFactor = 0.25
	// LootChance is the independent chance of a consumable after a hack.
	LootChance = 0.4
	// HackPenaltyCap bounds the BTC lost on a failed hack.
	HackPenaltyCap = 500
)

// Target is a hackable system.
type Target struct {
	Name          string
	Reward        int
	Difficulty    int
	RequiredLevel int
}

var Targets = []Target{
	{"🏢 MegaCorp Inc", 500, 1, 1},
	{"🏛️ Police Database", 1000, 2, 2},
	{"💊 Black Market", 2000, 3, 3},
	{"🔐 Shadow Network", 5000, 5, 5},
	{"🌍 Global Bank", 10000, 8, 8},
	{"🐉 CyberDragon", 20000, 10, 10},
	{"🤖 AI Avalon", 50000, 15, 15},
	{"⚛️ Quantum Network", 100000, 20, 20},
	{"🌀 Multiverse Portal", 150000, 25, 25},
	{"👁️ Eye of Providence", 200000, 30, 30},
	{"🔮 Crystal of Fate", 300000, 35, 35},
	{"⚡ Heart of Reality", 500000, 40, 40},
}

// Consumables that can drop from a successful hack.
const (
	ItemEncryptionKey = "🔑 Encryption Key"
	ItemExploit       = "💾 Exploit"
	ItemFirewall      = "🛡️ Firewall"
	ItemSniffer       = "📡 Sniffer"
	ItemAccelerator   = "⚡ Accelerator"
)

var LootItems = []string{ItemEncryptionKey, ItemExploit, ItemFirewall, ItemSniffer, ItemAccelerator}

// HackChance is the success probability for a hacking skill against a
// target difficulty.
func HackChance(skill, difficulty int) float64 {
	if difficulty <= 0 {
		return hackCap
	}
	return min(hackCap, float64(skill)*hackSkillFactor/float64(difficulty))
}

// Hack attempts t. The player must meet the target's level requirement.
func (r *Resolver) Hack(p *models.Player, t Target) (Report, error) {
	if p.Level < t.RequiredLevel {
		return Report{}, ErrLevelTooLow
	}
	pr := r.printer()
	rep := Report{Title: locale.Text(pr, t.Name)}
	skill := p.Skills[models.SkillHacking]

	if !random.Chance(r.rng, HackChance(skill, t.Difficulty)) {
		penalty := p.Penalize(HackPenaltyCap)
		rep.add(pr.Sprintf("❌ HACK FAILED!"), pr.Sprintf("💥 Penalty: %d BTC", penalty))
		return rep, nil
	}

	rep.Success = true
	rep.add(pr.Sprintf("✅ HACK SUCCESSFUL!"))
	reward := t.Reward
	if skill > t.Difficulty {
		bonus := reward / 2
		reward += bonus
		rep.add(pr.Sprintf("🎁 Mastery bonus: +%d BTC", bonus))
	}

	bag := effects.Bag{
		effects.GrantCurrency{Amount: reward},
		effects.GrantExperience{Amount: reward / 2},
	}
	if random.Chance(r.rng, LootChance) {
		bag = append(bag, effects.GrantItem{Item: LootItems[r.rng.IntN(len(LootItems))]})
	}
	if reward >= models.HackMasterRewardMin {
		bag = append(bag, effects.UnlockAchievement{Name: models.AchievementHackMaster})
	}
	p.Stats.HacksCompleted++
	rep.add(r.effects.Apply(bag, p)...)
	return rep, nil
}
