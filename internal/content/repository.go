// Package content loads authored chapters and hands them to the narrative
// engine through a Repository built once at startup.
package content

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strconv"

	"github.com/tatianab/terminal-shadows/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed chapters/*.yaml
var embeddedChapters embed.FS

var chapterFile = regexp.MustCompile(`^chapter(\d+)\.ya?ml$`)

// Repository is the read-only, ordered list of loaded chapters.
type Repository struct {
	chapters []models.Chapter
}

// NewRepository wraps already-built chapters, in play order.
func NewRepository(chapters ...models.Chapter) *Repository {
	return &Repository{chapters: chapters}
}

// Len is the number of playable chapters.
func (r *Repository) Len() int {
	if r == nil {
		return 0
	}
	return len(r.chapters)
}

// Chapter returns chapter n, 1-based.
func (r *Repository) Chapter(n int) (*models.Chapter, bool) {
	if r == nil || n < 1 || n > len(r.chapters) {
		return nil, false
	}
	return &r.chapters[n-1], true
}

// LoadEmbedded loads the chapters shipped with the binary.
func LoadEmbedded(logger *slog.Logger) (*Repository, error) {
	sub, err := fs.Sub(embeddedChapters, "chapters")
	if err != nil {
		return nil, err
	}
	return Load(sub, logger)
}

// LoadDir loads chapters from a directory on disk.
func LoadDir(dir string, logger *slog.Logger) (*Repository, error) {
	return Load(os.DirFS(dir), logger)
}

// Load reads every chapterN.yaml at the root of fsys in numeric order.
// A chapter that cannot be read, parsed, or is structurally broken is
// skipped with a warning; it never fails the whole load.
func Load(fsys fs.FS, logger *slog.Logger) (*Repository, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read chapter dir: %w", err)
	}

	type numbered struct {
		n    int
		name string
	}
	var files []numbered
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := chapterFile.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		files = append(files, numbered{n: n, name: entry.Name()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].n < files[j].n })

	repo := &Repository{}
	expected := 1
	for _, f := range files {
		if f.n != expected {
			logger.Warn("chapter numbering gap", "expected", expected, "found", f.n)
		}
		expected = f.n + 1

		ch, err := readChapter(fsys, f.name)
		if err != nil {
			logger.Warn("skipping chapter", "file", f.name, "error", err)
			continue
		}
		issues := Validate(*ch)
		if fatal, ok := FirstFatal(issues); ok {
			logger.Warn("skipping malformed chapter", "file", f.name, "issue", fatal.String())
			continue
		}
		for _, issue := range issues {
			logger.Warn("chapter content issue", "file", f.name, "scene", issue.Scene, "issue", issue.Message)
		}
		repo.chapters = append(repo.chapters, *ch)
	}
	return repo, nil
}

func readChapter(fsys fs.FS, name string) (*models.Chapter, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	var ch models.Chapter
	if err := yaml.Unmarshal(data, &ch); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return &ch, nil
}
