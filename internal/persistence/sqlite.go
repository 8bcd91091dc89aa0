package persistence

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tatianab/terminal-shadows/internal/models"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const migrationTable = "schema_migrations"

func sqlitePath(dir string) string {
	return filepath.Join(dir, "saves.db")
}

// SQLiteStore keeps every slot as a row of one table.
type SQLiteStore struct {
	sqlDB *sql.DB
}

// OpenSQLite opens the database at path and applies embedded migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB, migrationFS, "migrations"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteStore{sqlDB: sqlDB}, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLiteStore) Put(ctx context.Context, mode models.GameMode, slot int, data []byte) error {
	if err := checkKey(mode, slot); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO saves (mode, slot, payload, saved_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (mode, slot) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at`,
		string(mode), slot, data, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put save: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, mode models.GameMode, slot int) ([]byte, error) {
	if err := checkKey(mode, slot); err != nil {
		return nil, err
	}
	var data []byte
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT payload FROM saves WHERE mode = ? AND slot = ?`, string(mode), slot,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("get save: %w", err)
	}
	return data, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, mode models.GameMode, slot int) error {
	if err := checkKey(mode, slot); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM saves WHERE mode = ? AND slot = ?`, string(mode), slot,
	); err != nil {
		return fmt.Errorf("delete save: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Slots(ctx context.Context, mode models.GameMode) ([]int, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidSlot, mode)
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT slot FROM saves WHERE mode = ? ORDER BY slot`, string(mode),
	)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()

	var slots []int
	for rows.Next() {
		var slot int
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	return slots, nil
}

// applyMigrations executes each embedded .sql file at most once, recording
// applied files in schema_migrations.
func applyMigrations(sqlDB *sql.DB, migrations fs.FS, root string) error {
	entries, err := fs.ReadDir(migrations, root)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	if _, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS ` + migrationTable + ` (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
)`); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, name := range files {
		var found int
		err := sqlDB.QueryRow(`SELECT 1 FROM `+migrationTable+` WHERE name = ?`, name).Scan(&found)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check migration %s: %w", name, err)
		}

		content, err := fs.ReadFile(migrations, root+"/"+name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		upSQL := extractUp(string(content))
		if strings.TrimSpace(upSQL) == "" {
			continue
		}

		tx, err := sqlDB.BeginTx(context.Background(), nil)
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", name, err)
		}
		if _, err := tx.Exec(upSQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", name, err)
		}
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO `+migrationTable+` (name, applied_at) VALUES (?, ?)`,
			name, time.Now().UTC().UnixMilli(),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", name, err)
		}
	}
	return nil
}

// extractUp returns the SQL in the "-- +migrate Up" section, or all of it.
func extractUp(content string) string {
	const up, down = "-- +migrate Up", "-- +migrate Down"
	i := strings.Index(content, up)
	if i == -1 {
		return content
	}
	rest := content[i+len(up):]
	if j := strings.Index(rest, down); j != -1 {
		return rest[:j]
	}
	return rest
}
