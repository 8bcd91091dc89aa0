package models

// Achievement names.
const (
	AchievementHackMaster      = "Hack Master"
	AchievementBigSpender      = "Big Spender"
	AchievementQuickStart      = "Quick Start"
	AchievementUntouchable     = "Untouchable"
	AchievementNetworkGuru     = "Network Guru"
	AchievementCodeVirtuoso    = "Code Virtuoso"
	AchievementTracker         = "Tracker"
	AchievementSniper          = "Sniper"
	AchievementCryptoMagnate   = "Crypto Magnate"
	AchievementDigitalLegend   = "Legend of the Digital World"
	AchievementWorldWalker     = "World Walker"
	AchievementDigitalDeity    = "Digital Deity"
	AchievementEternalHacker   = "Eternal Hacker"
	AchievementRealitySavior   = "Savior of Reality"
	AchievementAnonymousGuide  = "Anonymous Guide"
	AchievementEventMagnet     = "Event Magnet"
	AchievementBossSlayer      = "Boss Slayer"
	AchievementCraftMaster     = "Craft Master"
	AchievementDailyPlanner    = "Daily Planner"
	AchievementFactionDiplomat = "Faction Diplomat"
)

// AllAchievements lists every known achievement in display order.
var AllAchievements = []string{
	AchievementHackMaster, AchievementBigSpender, AchievementQuickStart,
	AchievementUntouchable, AchievementNetworkGuru, AchievementCodeVirtuoso,
	AchievementTracker, AchievementSniper, AchievementCryptoMagnate,
	AchievementDigitalLegend, AchievementWorldWalker, AchievementDigitalDeity,
	AchievementEternalHacker, AchievementRealitySavior, AchievementAnonymousGuide,
	AchievementEventMagnet, AchievementBossSlayer, AchievementCraftMaster,
	AchievementDailyPlanner, AchievementFactionDiplomat,
}

// Milestone thresholds.
const (
	BossSlayerDefeats   = 5
	CraftMasterCrafts   = 10
	DailyPlannerCount   = 100
	EventMagnetEvents   = 50
	DiplomatStanding    = 1000
	HackMasterRewardMin = 50000
	BigSpenderPriceMin  = 5000
)

type milestone struct {
	name string
	met  func(p *Player) bool
}

var milestones = []milestone{
	{AchievementBossSlayer, func(p *Player) bool { return p.BossDefeats >= BossSlayerDefeats }},
	{AchievementCraftMaster, func(p *Player) bool { return len(p.CraftedItems) >= CraftMasterCrafts }},
	{AchievementDailyPlanner, func(p *Player) bool { return p.DailyMissionsCompleted >= DailyPlannerCount }},
	{AchievementEventMagnet, func(p *Player) bool { return p.Stats.EventsCompleted >= EventMagnetEvents }},
	{AchievementFactionDiplomat, func(p *Player) bool {
		for _, f := range FactionNames {
			if p.Factions[f] < DiplomatStanding {
				return false
			}
		}
		return true
	}},
}

// UnlockMilestones unlocks every counter-based achievement whose condition
// now holds and returns the newly unlocked names.
func (p *Player) UnlockMilestones() []string {
	var unlocked []string
	for _, m := range milestones {
		if m.met(p) && p.UnlockAchievement(m.name) {
			unlocked = append(unlocked, m.name)
		}
	}
	return unlocked
}
