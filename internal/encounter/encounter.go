// Package encounter holds the procedural sandbox systems: hacking targets,
// random events, boss fights, crafting, daily missions and the shop.
//
// Every system follows the same steps: pick an entry from a fixed table,
// check eligibility, roll or compute the outcome, then hand the resulting
// effect bag to the effects resolver. Ineligible requests return a sentinel
// error and leave the player untouched.
package encounter

import (
	"errors"
	"fmt"

	"github.com/tatianab/terminal-shadows/internal/effects"
	"github.com/tatianab/terminal-shadows/internal/menu"
	"github.com/tatianab/terminal-shadows/internal/models"
	"github.com/tatianab/terminal-shadows/internal/random"
	"golang.org/x/text/message"
)

var (
	ErrLevelTooLow       = errors.New("level too low")
	ErrInsufficientFunds = errors.New("not enough BTC")
	ErrMissingMaterials  = errors.New("missing materials")
	ErrFightOver         = errors.New("fight is over")
	ErrAlreadyClaimed    = errors.New("mission reward already claimed")
	ErrMissionIncomplete = errors.New("mission not complete")
	ErrUnknownKind       = errors.New("unknown encounter kind")
)

// Report is the outcome of one resolution.
type Report struct {
	Title    string
	Success  bool
	Messages []string
}

func (r *Report) add(msgs ...string) {
	r.Messages = append(r.Messages, msgs...)
}

// Resolver runs encounters against a player with one shared random source.
type Resolver struct {
	rng     random.Source
	effects *effects.Resolver
}

func NewResolver(rng random.Source, eff *effects.Resolver) *Resolver {
	if eff == nil {
		eff = effects.NewResolver(nil)
	}
	return &Resolver{rng: rng, effects: eff}
}

func (r *Resolver) printer() *message.Printer {
	return r.effects.Printer()
}

// Kind names a one-shot encounter reachable through Run.
type Kind string

const (
	KindHack  Kind = "hack"
	KindShop  Kind = "shop"
	KindCraft Kind = "craft"
)

// Run resolves a one-shot encounter from its table by 1-based selection.
// Boss fights and random events are multi-step and use StartFight and
// ResolveEvent instead.
func (r *Resolver) Run(kind Kind, p *models.Player, selection int) (Report, error) {
	switch kind {
	case KindHack:
		if selection < 1 || selection > len(Targets) {
			return Report{}, menu.ErrOutOfRange
		}
		return r.Hack(p, Targets[selection-1])
	case KindShop:
		if selection < 1 || selection > len(ShopItems) {
			return Report{}, menu.ErrOutOfRange
		}
		return r.Buy(p, ShopItems[selection-1])
	case KindCraft:
		if selection < 1 || selection > len(Recipes) {
			return Report{}, menu.ErrOutOfRange
		}
		return r.Craft(p, Recipes[selection-1])
	}
	return Report{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
