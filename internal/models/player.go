package models

import (
	"slices"
	"time"
)

// Skill names. The key set of Player.Skills is fixed to these.
const (
	SkillHacking       = "hacking"
	SkillStealth       = "stealth"
	SkillProgramming   = "programming"
	SkillSocial        = "social"
	SkillInvestigation = "investigation"
)

// SkillNames lists every skill in display order.
var SkillNames = []string{SkillHacking, SkillStealth, SkillProgramming, SkillSocial, SkillInvestigation}

// Faction names. The key set of Player.Factions is fixed to these.
const (
	FactionHackers      = "hackers"
	FactionCorporations = "corporations"
	FactionAnarchists   = "anarchists"
	FactionGovernment   = "government"
	FactionUnderground  = "underground"
)

// FactionNames lists every faction in display order.
var FactionNames = []string{FactionHackers, FactionCorporations, FactionAnarchists, FactionGovernment, FactionUnderground}

const (
	StartingCurrency = 1000
	// ExperiencePerLevel times the current level is the level-up threshold.
	ExperiencePerLevel = 1000
)

// Player is the progression state owned by one session.
type Player struct {
	Name                   string         `yaml:"name"`
	Level                  int            `yaml:"level"`
	Experience             int            `yaml:"experience"`
	Currency               int            `yaml:"currency"`
	Skills                 map[string]int `yaml:"skills"`
	Inventory              []string       `yaml:"inventory"` // duplicates allowed, count = quantity
	StoryProgress          int            `yaml:"story_progress"`
	StoryComplete          bool           `yaml:"story_complete"`
	Reputation             int            `yaml:"reputation"`
	Factions               map[string]int `yaml:"faction_standing"`
	Achievements           []string       `yaml:"achievements"` // a set; order is unlock order
	CraftedItems           []string       `yaml:"crafted_items"`
	BossDefeats            int            `yaml:"boss_defeats"`
	DailyMissionsCompleted int            `yaml:"daily_missions_completed"`
	Stats                  PersonalStats  `yaml:"personal_stats"`
}

// PersonalStats are cumulative counters. Only PlayTime accumulates deltas;
// the rest only grow.
type PersonalStats struct {
	PlayTime             float64   `yaml:"play_time"` // seconds
	ChaptersCompleted    int       `yaml:"chapters_completed"`
	TotalEarned          int       `yaml:"total_currency_earned"`
	HacksCompleted       int       `yaml:"hacks_completed"`
	ItemsCollected       int       `yaml:"items_collected"`
	ItemsBought          int       `yaml:"items_bought"`
	AchievementsUnlocked int       `yaml:"achievements_unlocked"`
	BossesDefeated       int       `yaml:"bosses_defeated"`
	EventsCompleted      int       `yaml:"events_completed"`
	ItemsCrafted         int       `yaml:"items_crafted"`
	DailyMissions        int       `yaml:"daily_missions"`
	StartDate            time.Time `yaml:"start_date"`
	LastPlayDate         time.Time `yaml:"last_play_date"`
}

// NewPlayer returns a fresh level 1 player.
func NewPlayer(name string, now time.Time) *Player {
	now = now.UTC()
	p := &Player{
		Name:          name,
		Level:         1,
		Currency:      StartingCurrency,
		Skills:        make(map[string]int, len(SkillNames)),
		Inventory:     []string{},
		StoryProgress: 1,
		Factions:      make(map[string]int, len(FactionNames)),
		Achievements:  []string{},
		CraftedItems:  []string{},
		Stats: PersonalStats{
			StartDate:    now,
			LastPlayDate: now,
		},
	}
	for _, s := range SkillNames {
		p.Skills[s] = 1
	}
	for _, f := range FactionNames {
		p.Factions[f] = 0
	}
	return p
}

// Clone returns a deep copy.
func (p *Player) Clone() *Player {
	c := *p
	c.Skills = make(map[string]int, len(p.Skills))
	for k, v := range p.Skills {
		c.Skills[k] = v
	}
	c.Factions = make(map[string]int, len(p.Factions))
	for k, v := range p.Factions {
		c.Factions[k] = v
	}
	c.Inventory = slices.Clone(p.Inventory)
	c.Achievements = slices.Clone(p.Achievements)
	c.CraftedItems = slices.Clone(p.CraftedItems)
	if c.Inventory == nil {
		c.Inventory = []string{}
	}
	if c.Achievements == nil {
		c.Achievements = []string{}
	}
	if c.CraftedItems == nil {
		c.CraftedItems = []string{}
	}
	return &c
}

// Normalize back-fills anything an older or partial save left out.
func (p *Player) Normalize(now time.Time) {
	if p.Level < 1 {
		p.Level = 1
	}
	if p.Experience < 0 {
		p.Experience = 0
	}
	if p.Currency < 0 {
		p.Currency = 0
	}
	if p.StoryProgress < 1 {
		p.StoryProgress = 1
	}
	if p.Skills == nil {
		p.Skills = make(map[string]int, len(SkillNames))
	}
	for _, s := range SkillNames {
		if p.Skills[s] < 1 {
			p.Skills[s] = 1
		}
	}
	if p.Factions == nil {
		p.Factions = make(map[string]int, len(FactionNames))
	}
	for _, f := range FactionNames {
		if _, ok := p.Factions[f]; !ok {
			p.Factions[f] = 0
		}
	}
	if p.Inventory == nil {
		p.Inventory = []string{}
	}
	if p.Achievements == nil {
		p.Achievements = []string{}
	}
	if p.CraftedItems == nil {
		p.CraftedItems = []string{}
	}
	if p.Stats.StartDate.IsZero() {
		p.Stats.StartDate = now.UTC()
	}
	if p.Stats.LastPlayDate.IsZero() {
		p.Stats.LastPlayDate = p.Stats.StartDate
	}
}

// ExperienceThreshold is the experience needed to reach the next level.
func (p *Player) ExperienceThreshold() int {
	return p.Level * ExperiencePerLevel
}

// GrantExperience adds amount and levels up once if the threshold is reached.
// It returns the level held before the level-up and true, or 0 and false.
// Negative amounts reduce experience but never below zero.
func (p *Player) GrantExperience(amount int) (int, bool) {
	p.Experience += amount
	if p.Experience < 0 {
		p.Experience = 0
	}
	if amount > 0 && p.Experience >= p.ExperienceThreshold() {
		prior := p.Level
		p.levelUp()
		return prior, true
	}
	return 0, false
}

func (p *Player) levelUp() {
	p.Level++
	p.Experience = 0
	for _, s := range SkillNames {
		p.Skills[s]++
	}
}

// SetLevel sets the level outright. Levels below 1 are raised to 1.
func (p *Player) SetLevel(level int) {
	p.Level = max(1, level)
}

// RaiseLevel increments the level without touching skills or experience.
func (p *Player) RaiseLevel(n int) {
	p.SetLevel(p.Level + n)
}

// GrantSkill raises skill by amount. Unknown skills and non-positive amounts
// are no-ops and return false.
func (p *Player) GrantSkill(skill string, amount int) (int, bool) {
	cur, ok := p.Skills[skill]
	if !ok || amount <= 0 {
		return cur, false
	}
	p.Skills[skill] = cur + amount
	return p.Skills[skill], true
}

// GrantAllSkills raises every skill by amount.
func (p *Player) GrantAllSkills(amount int) {
	if amount <= 0 {
		return
	}
	for _, s := range SkillNames {
		p.Skills[s] += amount
	}
}

// SkillTotal is the sum of every skill level.
func (p *Player) SkillTotal() int {
	total := 0
	for _, s := range SkillNames {
		total += p.Skills[s]
	}
	return total
}

// GrantCurrency adds amount. Positive amounts count toward total earnings;
// negative amounts are clamped so currency never drops below zero.
// It returns the delta actually applied.
func (p *Player) GrantCurrency(amount int) int {
	if amount >= 0 {
		p.Currency += amount
		p.Stats.TotalEarned += amount
		return amount
	}
	applied := max(amount, -p.Currency)
	p.Currency += applied
	return applied
}

// Spend deducts cost if affordable and reports whether it did.
func (p *Player) Spend(cost int) bool {
	if cost < 0 || p.Currency < cost {
		return false
	}
	p.Currency -= cost
	return true
}

// Penalize removes min(limit, currency/4) and returns the amount removed.
func (p *Player) Penalize(limit int) int {
	penalty := min(limit, p.Currency/4)
	p.Currency -= penalty
	return penalty
}

// HasAchievement reports whether name is unlocked.
func (p *Player) HasAchievement(name string) bool {
	return slices.Contains(p.Achievements, name)
}

// UnlockAchievement inserts name once. It reports whether it was new.
func (p *Player) UnlockAchievement(name string) bool {
	if name == "" || p.HasAchievement(name) {
		return false
	}
	p.Achievements = append(p.Achievements, name)
	p.Stats.AchievementsUnlocked++
	return true
}

// ShiftFaction adds a signed delta to a faction's standing.
// Unknown factions are ignored and return false.
func (p *Player) ShiftFaction(faction string, amount int) (int, bool) {
	cur, ok := p.Factions[faction]
	if !ok {
		return 0, false
	}
	p.Factions[faction] = cur + amount
	return p.Factions[faction], true
}

// FactionRank maps the current standing of faction to its tier.
func (p *Player) FactionRank(faction string) FactionRank {
	return RankForStanding(p.Factions[faction])
}

// ShiftReputation adds a signed delta to overall reputation.
func (p *Player) ShiftReputation(amount int) int {
	p.Reputation += amount
	return p.Reputation
}

// AddItem appends item to the inventory.
func (p *Player) AddItem(item string) {
	p.Inventory = append(p.Inventory, item)
	p.Stats.ItemsCollected++
}

// CountItem returns how many units of item the inventory holds.
func (p *Player) CountItem(item string) int {
	n := 0
	for _, it := range p.Inventory {
		if it == item {
			n++
		}
	}
	return n
}

// RemoveItem removes up to n units of item, oldest first, and returns how
// many were removed.
func (p *Player) RemoveItem(item string, n int) int {
	removed := 0
	kept := p.Inventory[:0]
	for _, it := range p.Inventory {
		if it == item && removed < n {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	p.Inventory = kept
	return removed
}

// ItemCounts groups the inventory by item, in first-seen order.
func (p *Player) ItemCounts() ([]string, map[string]int) {
	var order []string
	counts := make(map[string]int)
	for _, it := range p.Inventory {
		if counts[it] == 0 {
			order = append(order, it)
		}
		counts[it]++
	}
	return order, counts
}

// CompleteChapter advances story progress by exactly one chapter.
func (p *Player) CompleteChapter() {
	p.StoryProgress++
	p.Stats.ChaptersCompleted++
}

// RecordPlayTime accumulates a session delta and stamps the last-played time.
func (p *Player) RecordPlayTime(delta time.Duration, now time.Time) {
	if delta > 0 {
		p.Stats.PlayTime += delta.Seconds()
	}
	p.Stats.LastPlayDate = now.UTC()
}

// StartSandbox applies the sandbox head start.
func (p *Player) StartSandbox() {
	p.Currency = 5000
	p.Level = 5
	for _, s := range SkillNames {
		p.Skills[s] = 3
	}
}
