package models

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// SchemaVersion is stamped on every save for display only.
const SchemaVersion = "4.0"

// SaveRecord is the persisted unit for one (slot, mode).
type SaveRecord struct {
	Player        Player   `yaml:"player"`
	Timestamp     string   `yaml:"timestamp"` // RFC 3339
	SchemaVersion string   `yaml:"schema_version"`
	GameMode      GameMode `yaml:"game_mode"`
}

// NewSaveRecord snapshots p. The record does not alias p.
func NewSaveRecord(p *Player, mode GameMode, now time.Time) SaveRecord {
	return SaveRecord{
		Player:        *p.Clone(),
		Timestamp:     now.UTC().Format(time.RFC3339),
		SchemaVersion: SchemaVersion,
		GameMode:      mode,
	}
}

// SavedAt parses Timestamp, returning the zero time if it is malformed.
func (r SaveRecord) SavedAt() time.Time {
	t, err := time.Parse(time.RFC3339, r.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (r SaveRecord) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

// UnmarshalSaveRecord decodes a record and back-fills missing keys.
func UnmarshalSaveRecord(data []byte, now time.Time) (*SaveRecord, error) {
	var rec SaveRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	if rec.Player.Name == "" && rec.Player.Level == 0 && rec.Timestamp == "" {
		return nil, fmt.Errorf("save record has no player data")
	}
	rec.Player.Normalize(now)
	if rec.SchemaVersion == "" {
		rec.SchemaVersion = "unknown"
	}
	return &rec, nil
}
