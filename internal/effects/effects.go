// Package effects turns sparse effect bags into ordered mutations of a player.
//
// An effect bag is a list of discrete operations. The resolver always applies
// them in kind order (currency, level, skill, experience, item, reputation,
// faction, achievement) regardless of how the bag was built, so a level-up
// caused by experience is reported before any achievement that follows it.
package effects

import (
	"cmp"
	"slices"

	"github.com/tatianab/terminal-shadows/internal/models"
)

// Kind fixes the evaluation order of an effect.
type Kind int

const (
	KindCurrency Kind = iota
	KindLevel
	KindSkill
	KindExperience
	KindItem
	KindReputation
	KindFaction
	KindAchievement
)

// Effect is one discrete mutation.
type Effect interface {
	Kind() Kind
}

type GrantCurrency struct{ Amount int }

// SetLevel sets the level outright.
type SetLevel struct{ Level int }

// RaiseLevel adds Levels to the current level.
type RaiseLevel struct{ Levels int }

type GrantSkill struct {
	Skill  string
	Amount int
}

// GrantAllSkills raises every skill by Amount.
type GrantAllSkills struct{ Amount int }

type GrantExperience struct{ Amount int }

type GrantItem struct{ Item string }

type ShiftReputation struct{ Amount int }

type ShiftFaction struct {
	Faction string
	Amount  int
}

type UnlockAchievement struct{ Name string }

func (GrantCurrency) Kind() Kind     { return KindCurrency }
func (SetLevel) Kind() Kind          { return KindLevel }
func (RaiseLevel) Kind() Kind        { return KindLevel }
func (GrantSkill) Kind() Kind        { return KindSkill }
func (GrantAllSkills) Kind() Kind    { return KindSkill }
func (GrantExperience) Kind() Kind   { return KindExperience }
func (GrantItem) Kind() Kind         { return KindItem }
func (ShiftReputation) Kind() Kind   { return KindReputation }
func (ShiftFaction) Kind() Kind      { return KindFaction }
func (UnlockAchievement) Kind() Kind { return KindAchievement }

// Bag is a sparse set of effects.
type Bag []Effect

// Ordered returns a copy of b sorted into evaluation order. Effects of the
// same kind keep their relative order.
func (b Bag) Ordered() Bag {
	out := slices.Clone(b)
	slices.SortStableFunc(out, func(x, y Effect) int {
		return cmp.Compare(x.Kind(), y.Kind())
	})
	return out
}

// FromSpec converts an authored effect spec. The "level" key is an absolute
// set; "level_up" raises relative to the current level.
func FromSpec(spec models.EffectSpec) Bag {
	return fromSpec(spec, false)
}

// FromEventSpec converts an encounter reward spec, where "level" is relative.
func FromEventSpec(spec models.EffectSpec) Bag {
	return fromSpec(spec, true)
}

func fromSpec(spec models.EffectSpec, relativeLevel bool) Bag {
	if spec.IsEmpty() {
		return nil
	}
	var b Bag
	if spec.Currency != nil {
		b = append(b, GrantCurrency{Amount: *spec.Currency})
	}
	if spec.Level != nil {
		if relativeLevel {
			b = append(b, RaiseLevel{Levels: *spec.Level})
		} else {
			b = append(b, SetLevel{Level: *spec.Level})
		}
	}
	if spec.LevelUp != 0 {
		b = append(b, RaiseLevel{Levels: spec.LevelUp})
	}
	if spec.Skill != "" {
		amount := 1
		if spec.Value != nil {
			amount = *spec.Value
		}
		b = append(b, GrantSkill{Skill: spec.Skill, Amount: amount})
	}
	if spec.Experience != nil {
		b = append(b, GrantExperience{Amount: *spec.Experience})
	}
	if spec.Item != "" {
		b = append(b, GrantItem{Item: spec.Item})
	}
	if spec.Reputation != nil {
		b = append(b, ShiftReputation{Amount: *spec.Reputation})
	}
	for _, f := range []*models.FactionShift{spec.Faction, spec.Faction2} {
		if f != nil {
			b = append(b, ShiftFaction{Faction: f.Faction, Amount: f.Amount})
		}
	}
	if spec.Achievement != "" {
		b = append(b, UnlockAchievement{Name: spec.Achievement})
	}
	return b
}
