package persistence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tatianab/terminal-shadows/internal/models"
)

// FileStore keeps one YAML file per slot under a saves directory.
type FileStore struct {
	dir string
}

// NewFileStore creates dir/saves if needed.
func NewFileStore(dir string) (*FileStore, error) {
	saves := filepath.Join(dir, "saves")
	if err := os.MkdirAll(saves, 0o755); err != nil {
		return nil, fmt.Errorf("create save dir: %w", err)
	}
	return &FileStore{dir: saves}, nil
}

// Path is the file backing (mode, slot).
func (s *FileStore) Path(mode models.GameMode, slot int) string {
	if slot == AutosaveSlot {
		return filepath.Join(s.dir, fmt.Sprintf("autosave_%s.yaml", mode))
	}
	return filepath.Join(s.dir, fmt.Sprintf("save%d_%s.yaml", slot, mode))
}

// Put writes through a temp file and a rename, so a crash leaves either the
// old or the new save in place.
func (s *FileStore) Put(ctx context.Context, mode models.GameMode, slot int, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkKey(mode, slot); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, ".save-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close save: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path(mode, slot)); err != nil {
		return fmt.Errorf("replace save: %w", err)
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, mode models.GameMode, slot int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkKey(mode, slot); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(mode, slot))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("read save: %w", err)
	}
	return data, nil
}

func (s *FileStore) Delete(ctx context.Context, mode models.GameMode, slot int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkKey(mode, slot); err != nil {
		return err
	}
	err := os.Remove(s.Path(mode, slot))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete save: %w", err)
	}
	return nil
}

func (s *FileStore) Slots(ctx context.Context, mode models.GameMode) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidSlot, mode)
	}
	var slots []int
	for slot := AutosaveSlot; slot <= LastSlot; slot++ {
		if _, err := os.Stat(s.Path(mode, slot)); err == nil {
			slots = append(slots, slot)
		}
	}
	return slots, nil
}

func (s *FileStore) Close() error {
	return nil
}
