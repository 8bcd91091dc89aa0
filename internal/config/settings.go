package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Normal Difficulty = "normal"
	Hard   Difficulty = "hard"
)

var difficulties = []Difficulty{Easy, Normal, Hard}

// Settings is the small persisted preferences document. Difficulty is
// shown and stored but does not change any resolver.
type Settings struct {
	Language   string     `yaml:"language"`
	Difficulty Difficulty `yaml:"difficulty"`
	Autosave   bool       `yaml:"autosave"`
	Animations bool       `yaml:"animations"`
	Music      bool       `yaml:"music"`
}

func DefaultSettings() Settings {
	return Settings{
		Language:   "en",
		Difficulty: Normal,
		Autosave:   true,
		Animations: true,
	}
}

// LoadSettings reads the document at path. A missing or unreadable document
// yields the defaults; keys absent from the document keep their defaults and
// unknown keys are ignored. The error is informational: the returned
// settings are always usable.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("parse settings: %w", err)
	}
	s.normalize()
	return s, nil
}

func (s *Settings) normalize() {
	d := DefaultSettings()
	if s.Language != "en" && s.Language != "ru" {
		s.Language = d.Language
	}
	valid := false
	for _, v := range difficulties {
		valid = valid || s.Difficulty == v
	}
	if !valid {
		s.Difficulty = d.Difficulty
	}
}

// Save writes the document to path, creating its directory.
func (s Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

func (s *Settings) ToggleLanguage() {
	if s.Language == "en" {
		s.Language = "ru"
	} else {
		s.Language = "en"
	}
}

// CycleDifficulty moves easy → normal → hard → easy.
func (s *Settings) CycleDifficulty() {
	for i, d := range difficulties {
		if d == s.Difficulty {
			s.Difficulty = difficulties[(i+1)%len(difficulties)]
			return
		}
	}
	s.Difficulty = Normal
}

func (s *Settings) ToggleAutosave()   { s.Autosave = !s.Autosave }
func (s *Settings) ToggleAnimations() { s.Animations = !s.Animations }
func (s *Settings) ToggleMusic()      { s.Music = !s.Music }
