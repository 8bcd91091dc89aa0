package persistence

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/tatianab/terminal-shadows/internal/models"
)

// Manager saves and loads players through a Store.
type Manager struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

type ManagerOption func(*Manager)

func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) { m.logger = l }
}

// WithClock overrides the time source used for save timestamps.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

func NewManager(store Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Save writes a snapshot of p into (slot, mode).
func (m *Manager) Save(ctx context.Context, p *models.Player, slot int, mode models.GameMode) error {
	if err := checkKey(mode, slot); err != nil {
		return err
	}
	data, err := models.NewSaveRecord(p, mode, m.now()).Marshal()
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	if err := m.store.Put(ctx, mode, slot, data); err != nil {
		m.logger.Error("save failed", "slot", slot, "mode", mode, "error", err)
		return err
	}
	m.logger.Info("game saved", "slot", slot, "mode", mode)
	return nil
}

// Autosave writes slot 0 of mode.
func (m *Manager) Autosave(ctx context.Context, p *models.Player, mode models.GameMode) error {
	return m.Save(ctx, p, AutosaveSlot, mode)
}

// Load reads (slot, mode). An empty slot returns ErrNoSave; a slot that
// cannot be decoded returns an error wrapping ErrCorrupt.
func (m *Manager) Load(ctx context.Context, slot int, mode models.GameMode) (*models.SaveRecord, error) {
	if err := checkKey(mode, slot); err != nil {
		return nil, err
	}
	data, err := m.store.Get(ctx, mode, slot)
	if err != nil {
		return nil, err
	}
	rec, err := models.UnmarshalSaveRecord(data, m.now())
	if err != nil {
		m.logger.Warn("corrupt save", "slot", slot, "mode", mode, "error", err)
		return nil, fmt.Errorf("%w: slot %d (%s): %v", ErrCorrupt, slot, mode, err)
	}
	if !rec.GameMode.Valid() {
		rec.GameMode = mode
	}
	return rec, nil
}

// Slots lists the occupied slots of mode.
func (m *Manager) Slots(ctx context.Context, mode models.GameMode) ([]int, error) {
	return m.store.Slots(ctx, mode)
}

// SlotInfo summarizes one slot for a load or save menu.
type SlotInfo struct {
	Slot    int
	Empty   bool
	Corrupt bool
	Name    string
	Level   int
	SavedAt time.Time
}

// Summaries describes every slot of mode, empty ones included.
func (m *Manager) Summaries(ctx context.Context, mode models.GameMode) ([]SlotInfo, error) {
	out := make([]SlotInfo, 0, LastSlot+1)
	for slot := AutosaveSlot; slot <= LastSlot; slot++ {
		info := SlotInfo{Slot: slot}
		rec, err := m.Load(ctx, slot, mode)
		switch {
		case errors.Is(err, ErrNoSave):
			info.Empty = true
		case errors.Is(err, ErrCorrupt):
			info.Corrupt = true
		case err != nil:
			return nil, err
		default:
			info.Name = rec.Player.Name
			info.Level = rec.Player.Level
			info.SavedAt = rec.SavedAt()
		}
		out = append(out, info)
	}
	return out, nil
}

// Delete empties (slot, mode).
func (m *Manager) Delete(ctx context.Context, slot int, mode models.GameMode) error {
	return m.store.Delete(ctx, mode, slot)
}

// Reset deletes every slot of every mode.
func (m *Manager) Reset(ctx context.Context) error {
	var errs []error
	for _, mode := range models.Modes {
		for slot := AutosaveSlot; slot <= LastSlot; slot++ {
			if err := m.store.Delete(ctx, mode, slot); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	m.logger.Info("all saves deleted")
	return nil
}

func (m *Manager) Close() error {
	return m.store.Close()
}
