package encounter

import (
	"github.com/tatianab/terminal-shadows/internal/effects"
	"github.com/tatianab/terminal-shadows/internal/locale"
	"github.com/tatianab/terminal-shadows/internal/menu"
	"github.com/tatianab/terminal-shadows/internal/models"
	"github.com/tatianab/terminal-shadows/internal/random"
)

// BoardSize is how many missions a board offers.
const BoardSize = 3

// MissionKind names the player counter a mission watches.
type MissionKind string

const (
	MissionHack  MissionKind = "hack"
	MissionBuy   MissionKind = "buy"
	MissionSkill MissionKind = "skill"
	MissionBoss  MissionKind = "boss"
	MissionEvent MissionKind = "event"
)

// Mission is a daily objective: raise the watched counter by Target.
type Mission struct {
	Name       string
	Kind       MissionKind
	Target     int
	Currency   int
	Experience int
}

var Missions = []Mission{
	{"💻 Hack 3 servers", MissionHack, 3, 15000, 3000},
	{"🛒 Buy 2 items", MissionBuy, 2, 10000, 2000},
	{"⚡ Raise a skill", MissionSkill, 1, 20000, 5000},
	{"👹 Defeat a boss", MissionBoss, 1, 50000, 10000},
	{"🎲 Complete 2 events", MissionEvent, 2, 25000, 6000},
}

// Counter reads the counter a mission kind watches.
func Counter(p *models.Player, kind MissionKind) int {
	switch kind {
	case MissionHack:
		return p.Stats.HacksCompleted
	case MissionBuy:
		return p.Stats.ItemsBought
	case MissionSkill:
		return p.SkillTotal()
	case MissionBoss:
		return p.Stats.BossesDefeated
	case MissionEvent:
		return p.Stats.EventsCompleted
	}
	return 0
}

// MissionBoard is a session's sample of missions. Progress is measured from
// the counters as they were when the board was drawn.
type MissionBoard struct {
	Missions []Mission
	baseline []int
	claimed  []bool
}

// NewBoard samples BoardSize missions without replacement.
func (r *Resolver) NewBoard(p *models.Player) *MissionBoard {
	idx := random.Sample(r.rng, len(Missions), BoardSize)
	b := &MissionBoard{
		Missions: make([]Mission, len(idx)),
		baseline: make([]int, len(idx)),
		claimed:  make([]bool, len(idx)),
	}
	for i, j := range idx {
		b.Missions[i] = Missions[j]
		b.baseline[i] = Counter(p, Missions[j].Kind)
	}
	return b
}

// Progress is how far mission i (0-based) has come, capped at its target.
func (b *MissionBoard) Progress(p *models.Player, i int) int {
	m := b.Missions[i]
	return max(0, min(m.Target, Counter(p, m.Kind)-b.baseline[i]))
}

func (b *MissionBoard) Complete(p *models.Player, i int) bool {
	return b.Progress(p, i) >= b.Missions[i].Target
}

func (b *MissionBoard) Claimed(i int) bool {
	return b.claimed[i]
}

// MissionMenu lists the board with progress; finished unclaimed missions are selectable.
func (r *Resolver) MissionMenu(b *MissionBoard, p *models.Player) menu.Menu {
	pr := r.printer()
	m := menu.Menu{
		Title:     pr.Sprintf("📋 DAILY MISSIONS"),
		Text:      pr.Sprintf("Completed so far: %d missions", p.DailyMissionsCompleted),
		AllowBack: true,
	}
	for i, mission := range b.Missions {
		status := "⏳"
		switch {
		case b.Claimed(i):
			status = "✅"
		case b.Complete(p, i):
			status = "🎁"
		}
		m.Options = append(m.Options, menu.Option{
			Label: status + " " + locale.Text(pr, mission.Name),
			Description: pr.Sprintf("%d/%d · 💰 %d BTC · ⭐ %d", b.Progress(p, i), mission.Target,
				mission.Currency, mission.Experience),
			Disabled: b.Claimed(i) || !b.Complete(p, i),
		})
	}
	return m
}

// Claim pays out mission selection (1-based) once it is complete. Each
// mission pays at most once per board.
func (r *Resolver) Claim(b *MissionBoard, p *models.Player, selection int) (Report, error) {
	if selection < 1 || selection > len(b.Missions) {
		return Report{}, menu.ErrOutOfRange
	}
	i := selection - 1
	if b.claimed[i] {
		return Report{}, ErrAlreadyClaimed
	}
	if !b.Complete(p, i) {
		return Report{}, ErrMissionIncomplete
	}
	b.claimed[i] = true
	p.DailyMissionsCompleted++
	p.Stats.DailyMissions++

	pr := r.printer()
	mission := b.Missions[i]
	rep := Report{Title: locale.Text(pr, mission.Name), Success: true}
	rep.add(pr.Sprintf("📋 Mission complete: %s", rep.Title))
	bag := effects.Bag{
		effects.GrantCurrency{Amount: mission.Currency},
		effects.GrantExperience{Amount: mission.Experience},
	}
	rep.add(r.effects.Apply(bag, p)...)
	return rep, nil
}
