package menu

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	m := Menu{Options: []Option{{Label: "a"}, {Label: "b"}, {Label: "c"}}, AllowBack: true}
	tests := []struct {
		raw     string
		want    int
		wantErr error
	}{
		{"1", 1, nil},
		{" 3 ", 3, nil},
		{"4", Back, nil},
		{"back", Back, nil},
		{"0", Back, nil},
		{"5", 0, ErrOutOfRange},
		{"-1", 0, ErrOutOfRange},
		{"two", 0, ErrNotNumber},
		{"", 0, ErrNotNumber},
	}
	for _, tt := range tests {
		got, err := Parse(m, tt.raw)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("Parse(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestParseWithoutBack(t *testing.T) {
	m := Menu{Options: []Option{{Label: "only"}}}
	if _, err := Parse(m, "b"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected back to be rejected, got %v", err)
	}
	if _, err := Parse(m, "2"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected 2 to be out of range, got %v", err)
	}
	if _, err := Parse(m, "0"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected 0 to be out of range, got %v", err)
	}
}
