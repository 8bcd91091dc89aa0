package models

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Scene ids with special meaning to the narrative engine.
const (
	SceneStart  = "start"
	ChapterEnd  = "chapter_end"
	NextChapter = "next_chapter"
	GameEnd     = "game_end"
)

// IsTerminalScene reports whether id ends a chapter.
func IsTerminalScene(id string) bool {
	switch id {
	case ChapterEnd, NextChapter, GameEnd:
		return true
	}
	return false
}

// GameMode separates story progress from sandbox progress.
type GameMode string

const (
	ModeStory   GameMode = "story"
	ModeSandbox GameMode = "sandbox"
)

// Modes lists every game mode in display order.
var Modes = []GameMode{ModeStory, ModeSandbox}

func (m GameMode) Valid() bool {
	return m == ModeStory || m == ModeSandbox
}

// Chapter is one unit of authored story content.
type Chapter struct {
	Title           string           `yaml:"title"`
	GuideAppearance bool             `yaml:"guide_appearance"`
	Scenes          map[string]Scene `yaml:"scenes"` // keyed by scene id, "start" is the entry
}

// Scene is a single narrative beat. A scene without choices is terminal.
type Scene struct {
	Text    string   `yaml:"text"`
	Choices []Choice `yaml:"choices,omitempty"`
}

// Choice moves the chapter to Next after applying Effect.
type Choice struct {
	Text   string     `yaml:"text"`
	Effect EffectSpec `yaml:"effect,omitempty"`
	Next   string     `yaml:"next"`
}

// EffectSpec is the authored, sparse shape of an effect bag. Absent keys are no-ops.
type EffectSpec struct {
	Currency    *int          `yaml:"currency,omitempty"`
	Level       *int          `yaml:"level,omitempty"`    // absolute set
	LevelUp     int           `yaml:"level_up,omitempty"` // relative raise, used by event rewards
	Skill       string        `yaml:"skill,omitempty"`
	Value       *int          `yaml:"value,omitempty"` // skill amount, defaults to 1
	Experience  *int          `yaml:"experience,omitempty"`
	Item        string        `yaml:"item,omitempty"`
	Reputation  *int          `yaml:"reputation,omitempty"`
	Achievement string        `yaml:"achievement,omitempty"`
	Faction     *FactionShift `yaml:"faction,omitempty"`
	Faction2    *FactionShift `yaml:"faction2,omitempty"`
}

// IsEmpty reports whether e carries no effect at all.
func (e EffectSpec) IsEmpty() bool {
	return e.Currency == nil && e.Level == nil && e.LevelUp == 0 && e.Skill == "" &&
		e.Experience == nil && e.Item == "" && e.Reputation == nil && e.Achievement == "" &&
		e.Faction == nil && e.Faction2 == nil
}

// UnmarshalYAML accepts the older "bitcoins" and "exp" key names.
func (e *EffectSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain EffectSpec
	var raw struct {
		plain    `yaml:",inline"`
		Bitcoins *int `yaml:"bitcoins"`
		Exp      *int `yaml:"exp"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*e = EffectSpec(raw.plain)
	if e.Currency == nil {
		e.Currency = raw.Bitcoins
	}
	if e.Experience == nil {
		e.Experience = raw.Exp
	}
	return nil
}

// FactionShift is a signed standing change for one faction.
type FactionShift struct {
	Faction string `yaml:"faction"`
	Amount  int    `yaml:"amount"`
}

// UnmarshalYAML accepts both `{faction: x, amount: n}` and the `[x, n]` pair form.
func (f *FactionShift) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		if len(node.Content) != 2 {
			return fmt.Errorf("faction pair needs 2 elements, got %d", len(node.Content))
		}
		if err := node.Content[0].Decode(&f.Faction); err != nil {
			return err
		}
		return node.Content[1].Decode(&f.Amount)
	}
	type plain FactionShift
	return node.Decode((*plain)(f))
}
