package encounter

import (
	"github.com/tatianab/terminal-shadows/internal/effects"
	"github.com/tatianab/terminal-shadows/internal/locale"
	"github.com/tatianab/terminal-shadows/internal/models"
)

// ShopItem is a tool that permanently raises one skill.
type ShopItem struct {
	Name        string
	Description string
	Price       int
	Skill       string
	Bonus       int
}

// Shop items that double as crafting materials.
const (
	ItemExploitCompiler  = "💻 Exploit Compiler"
	ItemTracker          = "🕵️ Tracker"
	ItemQuantumDecryptor = "⚡ Quantum Decryptor"
	ItemNeuralInterface  = "🧠 Neural Interface"
)

var ShopItems = []ShopItem{
	{"🔍 Advanced Scanner", "Raises the odds of a successful hack", 2000, models.SkillHacking, 2},
	{"🛡️ Anonymizer", "Makes you harder to detect", 1500, models.SkillStealth, 2},
	{ItemExploitCompiler, "Build your own exploits", 3000, models.SkillProgramming, 3},
	{"📡 DDoS Utility", "A blunt instrument against servers", 2500, models.SkillHacking, 1},
	{"🔓 Social Engineering Kit", "Get people to talk", 1800, models.SkillSocial, 2},
	{ItemTracker, "Follow digital footprints", 2200, models.SkillInvestigation, 2},
	{ItemQuantumDecryptor, "Cutting-edge intrusion tech", 5000, models.SkillHacking, 5},
	{ItemNeuralInterface, "Jack straight into neural nets", 8000, models.SkillProgramming, 4},
	{"🌀 Reality Breaker", "Hack parallel worlds", 15000, models.SkillHacking, 8},
	{"👁️ Divine Insight", "See through any defense", 20000, models.SkillInvestigation, 10},
	{"🔮 Event Oracle", "Predict your opponent's next move", 25000, models.SkillSocial, 12},
	{"⚛️ Universe Generator", "Create realities of your own", 50000, models.SkillProgramming, 15},
}

// Buy purchases item if the player can afford it.
func (r *Resolver) Buy(p *models.Player, item ShopItem) (Report, error) {
	if !p.Spend(item.Price) {
		return Report{}, ErrInsufficientFunds
	}
	p.Stats.ItemsBought++

	pr := r.printer()
	name := locale.Text(pr, item.Name)
	rep := Report{Title: name, Success: true}
	rep.add(pr.Sprintf("✅ Bought: %s", name))
	bag := effects.Bag{
		effects.GrantSkill{Skill: item.Skill, Amount: item.Bonus},
		effects.GrantItem{Item: item.Name},
	}
	if item.Price >= models.BigSpenderPriceMin {
		bag = append(bag, effects.UnlockAchievement{Name: models.AchievementBigSpender})
	}
	rep.add(r.effects.Apply(bag, p)...)
	return rep, nil
}
