package models

// FactionRank is a standing tier, ordered worst to best.
type FactionRank int

const (
	RankEnemy FactionRank = iota
	RankHated
	RankUnfriendly
	RankNeutral
	RankFriendly
	RankRespected
	RankRevered
	RankLegendary
)

var factionRankNames = [...]string{
	"Enemy of the People",
	"Hated",
	"Unfriendly",
	"Neutral",
	"Friendly",
	"Respected",
	"Revered",
	"Legendary",
}

func (r FactionRank) String() string {
	if r < 0 || int(r) >= len(factionRankNames) {
		return "Unknown"
	}
	return factionRankNames[r]
}

// factionThresholds are exclusive upper bounds for each tier but the last.
var factionThresholds = [...]int{-500, -200, -50, 50, 200, 500, 1000}

// RankForStanding maps a standing score to its tier.
func RankForStanding(standing int) FactionRank {
	for i, limit := range factionThresholds {
		if standing < limit {
			return FactionRank(i)
		}
	}
	return RankLegendary
}

// StandingBar is the width of a standing bar, capped at 50 cells.
func StandingBar(standing int) int {
	if standing < 0 {
		standing = -standing
	}
	return min(50, standing/20)
}

// PowerRank is the profile tier derived from total power.
type PowerRank int

const (
	PowerNovice PowerRank = iota
	PowerPro
	PowerExpert
	PowerMaster
	PowerLegend
)

func (r PowerRank) String() string {
	switch r {
	case PowerPro:
		return "Pro"
	case PowerExpert:
		return "Expert"
	case PowerMaster:
		return "Master"
	case PowerLegend:
		return "Legend"
	}
	return "Novice"
}

// Power sums skills, level and currency in ten-thousands.
func (p *Player) Power() int {
	return p.SkillTotal() + p.Level + p.Currency/10000
}

// PowerRank maps Power to a tier.
func (p *Player) PowerRank() PowerRank {
	switch power := p.Power(); {
	case power > 1000:
		return PowerLegend
	case power > 500:
		return PowerMaster
	case power > 250:
		return PowerExpert
	case power > 100:
		return PowerPro
	}
	return PowerNovice
}
