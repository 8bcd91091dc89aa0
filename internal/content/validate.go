package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/tatianab/terminal-shadows/internal/models"
)

// Issue is one problem found in a chapter. Fatal issues make the chapter
// unplayable; the rest are tolerated by the engine at runtime.
type Issue struct {
	Scene   string
	Message string
	Fatal   bool
}

func (i Issue) String() string {
	if i.Scene == "" {
		return i.Message
	}
	return fmt.Sprintf("scene %q: %s", i.Scene, i.Message)
}

// FirstFatal returns the first fatal issue, if any.
func FirstFatal(issues []Issue) (Issue, bool) {
	for _, i := range issues {
		if i.Fatal {
			return i, true
		}
	}
	return Issue{}, false
}

// HasFatal reports whether any issue is fatal.
func HasFatal(issues []Issue) bool {
	_, ok := FirstFatal(issues)
	return ok
}

// Validate checks a chapter's shape. Scenes are visited in sorted order so
// the report is stable.
func Validate(ch models.Chapter) []Issue {
	var issues []Issue
	if strings.TrimSpace(ch.Title) == "" {
		issues = append(issues, Issue{Message: "missing title", Fatal: true})
	}
	if len(ch.Scenes) == 0 {
		return append(issues, Issue{Message: "no scenes", Fatal: true})
	}
	if _, ok := ch.Scenes[models.SceneStart]; !ok {
		issues = append(issues, Issue{Message: `no "start" scene`, Fatal: true})
	}

	ids := make([]string, 0, len(ch.Scenes))
	for id := range ch.Scenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		scene := ch.Scenes[id]
		if strings.TrimSpace(scene.Text) == "" {
			issues = append(issues, Issue{Scene: id, Message: "missing text"})
		}
		for n, choice := range scene.Choices {
			switch {
			case choice.Next == "":
				issues = append(issues, Issue{Scene: id, Message: fmt.Sprintf("choice %d has no next", n+1)})
			case models.IsTerminalScene(choice.Next):
			default:
				if _, ok := ch.Scenes[choice.Next]; !ok {
					msg := fmt.Sprintf("choice %d points to unknown scene %q", n+1, choice.Next)
					if s := nearest(choice.Next, ids); s != "" {
						msg += fmt.Sprintf(" (did you mean %q?)", s)
					}
					issues = append(issues, Issue{Scene: id, Message: msg})
				}
			}
			if choice.Effect.Achievement == "" {
				continue
			}
			if strings.TrimSpace(choice.Effect.Achievement) == "" {
				issues = append(issues, Issue{Scene: id, Message: fmt.Sprintf("choice %d has a blank achievement", n+1)})
			}
		}
	}
	return issues
}

// CheckFile parses and validates one chapter file on disk. A file that does
// not parse is an error rather than an issue.
func CheckFile(path string) ([]Issue, error) {
	ch, err := readChapter(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return nil, err
	}
	return Validate(*ch), nil
}

// nearest suggests the closest known id within a small edit distance.
func nearest(target string, ids []string) string {
	candidates := append([]string{models.ChapterEnd, models.NextChapter, models.GameEnd}, ids...)
	best, bestDist := "", -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(target, c)
		if d > suggestLimit(len(c)) {
			continue
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func suggestLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 10:
		return 2
	default:
		return 3
	}
}
