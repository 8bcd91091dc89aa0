// Package menu is the contract between the core and whatever shell renders
// it: the core hands out numbered options and accepts a 1-based selection or
// a back signal.
package menu

import (
	"errors"
	"strconv"
	"strings"
)

// Back is the selection value for "go back" / "cancel".
const Back = 0

var (
	ErrNotNumber  = errors.New("selection is not a number")
	ErrOutOfRange = errors.New("selection is out of range")
)

// Option is one numbered line of a menu.
type Option struct {
	Label       string
	Description string
	Disabled    bool // rendered but not selectable
}

// Menu is what a shell renders for one decision.
type Menu struct {
	Title   string
	Text    string
	Options []Option
	// AllowBack adds a back entry after the last option.
	AllowBack bool
}

// Len is the number of selectable positions, excluding back.
func (m Menu) Len() int {
	return len(m.Options)
}

// Validate checks a 1-based selection. Back is valid only if AllowBack is set.
func (m Menu) Validate(n int) error {
	if n == Back && m.AllowBack {
		return nil
	}
	if n < 1 || n > len(m.Options) {
		return ErrOutOfRange
	}
	return nil
}

// Labels returns the option labels in order.
func (m Menu) Labels() []string {
	out := make([]string, len(m.Options))
	for i, o := range m.Options {
		out[i] = o.Label
	}
	return out
}

// Parse turns raw user input into a selection. "b", "back" and "q" map to
// Back; the number after the last option also maps to Back when the menu
// allows it.
func Parse(m Menu, raw string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "b", "back", "q":
		if m.AllowBack {
			return Back, nil
		}
		return 0, ErrOutOfRange
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrNotNumber
	}
	if m.AllowBack && n == len(m.Options)+1 {
		return Back, nil
	}
	if err := m.Validate(n); err != nil {
		return 0, err
	}
	return n, nil
}
