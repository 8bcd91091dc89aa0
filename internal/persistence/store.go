// Package persistence keeps save slots for each game mode.
//
// Every mode has its own slot namespace: slot 0 is the autosave and slots
// 1 to 3 are manual saves. A Store moves opaque payloads; the Manager turns
// players into save records and back.
package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/tatianab/terminal-shadows/internal/models"
)

const (
	AutosaveSlot = 0
	FirstManual  = 1
	LastSlot     = 3
)

var (
	// ErrNoSave means the slot is empty.
	ErrNoSave = errors.New("no save in slot")
	// ErrCorrupt means the slot exists but cannot be decoded.
	ErrCorrupt     = errors.New("save is corrupt")
	ErrInvalidSlot = errors.New("invalid save slot")
)

// Store holds one payload per (mode, slot).
type Store interface {
	Put(ctx context.Context, mode models.GameMode, slot int, data []byte) error
	// Get returns ErrNoSave when the slot is empty.
	Get(ctx context.Context, mode models.GameMode, slot int) ([]byte, error)
	// Delete removes a slot. Deleting an empty slot is not an error.
	Delete(ctx context.Context, mode models.GameMode, slot int) error
	// Slots lists the occupied slots of mode in ascending order.
	Slots(ctx context.Context, mode models.GameMode) ([]int, error)
	Close() error
}

// Backend names a Store implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

// OpenStore opens the store for backend rooted at dir.
func OpenStore(backend Backend, dir string) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(dir)
	case BackendSQLite:
		return OpenSQLite(sqlitePath(dir))
	}
	return nil, fmt.Errorf("unknown storage backend %q", backend)
}

func checkKey(mode models.GameMode, slot int) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidSlot, mode)
	}
	if slot < AutosaveSlot || slot > LastSlot {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	return nil
}
