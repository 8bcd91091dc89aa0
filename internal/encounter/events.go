package encounter

import (
	_ "embed"
	"fmt"

	"github.com/tatianab/terminal-shadows/internal/effects"
	"github.com/tatianab/terminal-shadows/internal/locale"
	"github.com/tatianab/terminal-shadows/internal/menu"
	"github.com/tatianab/terminal-shadows/internal/models"
	"github.com/tatianab/terminal-shadows/internal/random"
	"gopkg.in/yaml.v3"
)

//go:embed data/events.yaml
var eventsYAML []byte

const (
	eventCap         = 0.95
	eventSkillFactor = 0.15
	gambleWinChance  = 0.5
	// AmbientEventChance is the chance of a random event on each sandbox loop.
	AmbientEventChance = 0.15
)

// Event is a random situation with a few ways out.
type Event struct {
	Title   string        `yaml:"title"`
	Text    string        `yaml:"text"`
	Choices []EventChoice `yaml:"choices"`
}

// EventChoice either checks Skill (Success or Failure applies), gambles its
// Cost, or applies Reward outright. Cost is paid before anything else.
type EventChoice struct {
	Text    string            `yaml:"text"`
	Skill   string            `yaml:"skill,omitempty"`
	Cost    int               `yaml:"cost,omitempty"`
	Gamble  bool              `yaml:"random,omitempty"`
	Reward  models.EffectSpec `yaml:"reward,omitempty"`
	Success models.EffectSpec `yaml:"success_reward,omitempty"`
	Failure models.EffectSpec `yaml:"fail_penalty,omitempty"`
}

// Events is the random event table.
var Events = mustLoadEvents(eventsYAML)

func mustLoadEvents(data []byte) []Event {
	var events []Event
	if err := yaml.Unmarshal(data, &events); err != nil {
		panic(fmt.Sprintf("encounter: parse events: %v", err))
	}
	return events
}

// EventChance is the success probability of an event skill check.
func EventChance(skill int) float64 {
	return min(eventCap, float64(skill)*eventSkillFactor)
}

// PickEvent draws a random event.
func (r *Resolver) PickEvent() Event {
	return Events[r.rng.IntN(len(Events))]
}

// AmbientEvent rolls for an unprompted sandbox event.
func (r *Resolver) AmbientEvent() (Event, bool) {
	if !random.Chance(r.rng, AmbientEventChance) {
		return Event{}, false
	}
	return r.PickEvent(), true
}

// EventMenu lists the choices of ev with their cost and skill requirement.
func (r *Resolver) EventMenu(ev Event) menu.Menu {
	pr := r.printer()
	m := menu.Menu{Title: locale.Text(pr, ev.Title), Text: locale.Text(pr, ev.Text)}
	for _, c := range ev.Choices {
		opt := menu.Option{Label: locale.Text(pr, c.Text)}
		switch {
		case c.Cost > 0 && c.Skill != "":
			opt.Description = pr.Sprintf("cost: %d BTC, requires %s", c.Cost, c.Skill)
		case c.Cost > 0:
			opt.Description = pr.Sprintf("cost: %d BTC", c.Cost)
		case c.Skill != "":
			opt.Description = pr.Sprintf("requires %s", c.Skill)
		}
		m.Options = append(m.Options, opt)
	}
	return m
}

// ResolveEvent applies choice (1-based) of ev. An unaffordable cost returns
// ErrInsufficientFunds without mutating the player.
func (r *Resolver) ResolveEvent(p *models.Player, ev Event, choice int) (Report, error) {
	if choice < 1 || choice > len(ev.Choices) {
		return Report{}, menu.ErrOutOfRange
	}
	c := ev.Choices[choice-1]
	if c.Cost > 0 && !p.Spend(c.Cost) {
		return Report{}, ErrInsufficientFunds
	}
	pr := r.printer()
	rep := Report{Title: locale.Text(pr, ev.Title), Success: true}
	if c.Cost > 0 {
		rep.add(pr.Sprintf("💸 -%d BTC", c.Cost))
	}

	switch {
	case c.Skill != "":
		if random.Chance(r.rng, EventChance(p.Skills[c.Skill])) {
			rep.add(pr.Sprintf("✅ SUCCESS!"))
			rep.add(r.effects.ApplyEvent(c.Success, p)...)
		} else {
			rep.Success = false
			rep.add(pr.Sprintf("❌ FAILURE!"))
			rep.add(r.effects.ApplyEvent(c.Failure, p)...)
		}
	case c.Gamble:
		if random.Chance(r.rng, gambleWinChance) {
			win := c.Cost * random.Between(r.rng, 2, 5)
			rep.add(pr.Sprintf("🎉 YOU WIN! +%d BTC", win))
			r.effects.Apply(effects.Bag{effects.GrantCurrency{Amount: win}}, p)
		} else {
			rep.Success = false
			rep.add(pr.Sprintf("💥 YOU LOSE! -%d BTC", c.Cost))
		}
	default:
		rep.add(r.effects.ApplyEvent(c.Reward, p)...)
	}

	p.Stats.EventsCompleted++
	rep.add(r.effects.Milestones(p)...)
	return rep, nil
}
