package encounter

import (
	"github.com/tatianab/terminal-shadows/internal/effects"
	"github.com/tatianab/terminal-shadows/internal/locale"
	"github.com/tatianab/terminal-shadows/internal/models"
)

// Material is one ingredient of a recipe.
type Material struct {
	Item  string
	Count int
}

// Recipe converts materials plus BTC into a new item and a skill bonus.
// AllSkills, when set, raises every skill instead of Skill.
type Recipe struct {
	Result    string
	Materials []Material
	Cost      int
	Skill     string
	Bonus     int
	AllSkills int
}

// Items only obtainable from events or the shop, used as materials.
const (
	ItemDarknetKeys       = "🔑 Darknet Keys"
	ItemMultiverseCrystal = "🔮 Multiverse Crystal"
)

// Crafted results that feed later recipes.
const (
	ItemAdvancedExploit  = "🔧 Advanced Exploit"
	ItemSuperFirewall    = "🛡️ Super Firewall"
	ItemNeuralNetwork    = "🧠 Neural Network"
	ItemAllSeeingRadar   = "👁️ All-Seeing Radar"
	ItemQuantumBooster   = "⚡ Quantum Booster"
	ItemPortalKey        = "🌀 Portal Key"
	ItemCrownOfTheMaster = "👑 Crown of the Master"
)

var Recipes = []Recipe{
	{
		Result:    ItemAdvancedExploit,
		Materials: []Material{{ItemEncryptionKey, 2}, {ItemExploit, 1}},
		Cost:      5000, Skill: models.SkillHacking, Bonus: 5,
	},
	{
		Result:    ItemSuperFirewall,
		Materials: []Material{{ItemFirewall, 3}, {ItemAccelerator, 1}},
		Cost:      8000, Skill: models.SkillStealth, Bonus: 4,
	},
	{
		Result:    ItemNeuralNetwork,
		Materials: []Material{{ItemExploitCompiler, 1}, {ItemNeuralInterface, 1}},
		Cost:      15000, Skill: models.SkillProgramming, Bonus: 7,
	},
	{
		Result:    ItemAllSeeingRadar,
		Materials: []Material{{ItemSniffer, 2}, {ItemTracker, 2}},
		Cost:      12000, Skill: models.SkillInvestigation, Bonus: 6,
	},
	{
		Result:    ItemQuantumBooster,
		Materials: []Material{{ItemQuantumDecryptor, 1}, {ItemAccelerator, 3}},
		Cost:      25000, Skill: models.SkillHacking, Bonus: 10,
	},
	{
		Result:    ItemPortalKey,
		Materials: []Material{{ItemMultiverseCrystal, 1}, {ItemDarknetKeys, 1}},
		Cost:      50000, Skill: models.SkillInvestigation, Bonus: 12,
	},
	{
		Result:    ItemCrownOfTheMaster,
		Materials: []Material{{ItemQuantumBooster, 1}, {ItemNeuralNetwork, 1}, {ItemPortalKey, 1}},
		Cost:      100000, AllSkills: 10,
	},
}

// Missing returns the materials p lacks, with the shortfall as Count.
func (rec Recipe) Missing(p *models.Player) []Material {
	var out []Material
	for _, m := range rec.Materials {
		if have := p.CountItem(m.Item); have < m.Count {
			out = append(out, Material{Item: m.Item, Count: m.Count - have})
		}
	}
	return out
}

// Craft builds rec. Both the BTC cost and every material must be available
// at once; otherwise nothing changes.
func (r *Resolver) Craft(p *models.Player, rec Recipe) (Report, error) {
	if p.Currency < rec.Cost {
		return Report{}, ErrInsufficientFunds
	}
	if len(rec.Missing(p)) > 0 {
		return Report{}, ErrMissingMaterials
	}
	for _, m := range rec.Materials {
		p.RemoveItem(m.Item, m.Count)
	}
	p.Spend(rec.Cost)
	p.Inventory = append(p.Inventory, rec.Result)
	p.CraftedItems = append(p.CraftedItems, rec.Result)
	p.Stats.ItemsCrafted++

	pr := r.printer()
	rep := Report{Title: locale.Text(pr, rec.Result), Success: true}
	rep.add(pr.Sprintf("✅ Crafted: %s", locale.Text(pr, rec.Result)))
	var bag effects.Bag
	if rec.AllSkills > 0 {
		bag = append(bag, effects.GrantAllSkills{Amount: rec.AllSkills})
	} else {
		bag = append(bag, effects.GrantSkill{Skill: rec.Skill, Amount: rec.Bonus})
	}
	rep.add(r.effects.Apply(bag, p)...)
	return rep, nil
}
