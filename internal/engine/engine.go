// Package engine walks authored chapters scene by scene.
//
// A ChapterRun is the per-chapter state machine. RunChapter drives one run
// against a Prompter, and PlayStory strings chapters together from the
// player's story progress.
package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/tatianab/terminal-shadows/internal/content"
	"github.com/tatianab/terminal-shadows/internal/effects"
	"github.com/tatianab/terminal-shadows/internal/guide"
	"github.com/tatianab/terminal-shadows/internal/menu"
	"github.com/tatianab/terminal-shadows/internal/models"
)

// ErrChapterDone is returned when a finished run is asked to step.
var ErrChapterDone = errors.New("chapter already finished")

// Signal is how a chapter or the whole story ended.
type Signal int

const (
	SignalChapterEnd Signal = iota
	SignalNextChapter
	SignalGameEnd
	SignalNoContent
	// SignalAborted means the prompter stopped before the chapter finished.
	SignalAborted
)

func (s Signal) String() string {
	switch s {
	case SignalChapterEnd:
		return models.ChapterEnd
	case SignalNextChapter:
		return models.NextChapter
	case SignalGameEnd:
		return models.GameEnd
	case SignalNoContent:
		return "no_content"
	case SignalAborted:
		return "aborted"
	}
	return "unknown"
}

func signalFor(scene string) Signal {
	switch scene {
	case models.NextChapter:
		return SignalNextChapter
	case models.GameEnd:
		return SignalGameEnd
	}
	return SignalChapterEnd
}

// Autosaver receives the autosave request made after each completed chapter.
type Autosaver interface {
	Autosave(ctx context.Context, p *models.Player, mode models.GameMode) error
}

// Prompter is implemented by whatever shell presents the story.
type Prompter interface {
	// Choose shows m and returns a 1-based selection. Returning
	// menu.ErrNotNumber or menu.ErrOutOfRange re-prompts.
	Choose(m menu.Menu) (int, error)
	// Acknowledge shows a scene without choices and waits for the player.
	Acknowledge(m menu.Menu) error
	// Notify shows resolver messages.
	Notify(lines []string)
}

// Engine holds what every chapter run needs.
type Engine struct {
	repo     *content.Repository
	resolver *effects.Resolver
	narrator guide.Narrator
	saver    Autosaver
	logger   *slog.Logger
}

type Option func(*Engine)

// WithNarrator sets the guide narrator used for guide_appearance chapters.
func WithNarrator(n guide.Narrator) Option {
	return func(e *Engine) { e.narrator = n }
}

// WithAutosaver enables autosave after each completed chapter.
func WithAutosaver(s Autosaver) Option {
	return func(e *Engine) { e.saver = s }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func NewEngine(repo *content.Repository, resolver *effects.Resolver, opts ...Option) *Engine {
	if resolver == nil {
		resolver = effects.NewResolver(nil)
	}
	e := &Engine{
		repo:     repo,
		resolver: resolver,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.narrator == nil {
		e.narrator = guide.Static{Printer: resolver.Printer()}
	}
	return e
}

// Repository returns the chapters the engine plays.
func (e *Engine) Repository() *content.Repository {
	return e.repo
}

// ChapterRun is the state of one chapter being played.
type ChapterRun struct {
	engine    *Engine
	chapter   *models.Chapter
	player    *models.Player
	scene     string
	guideLine string
}

// Begin starts chapter ch at its start scene.
func (e *Engine) Begin(ctx context.Context, ch *models.Chapter, p *models.Player) *ChapterRun {
	r := &ChapterRun{engine: e, chapter: ch, player: p, scene: models.SceneStart}
	if ch.GuideAppearance {
		line, err := e.narrator.Line(ctx, ch, p)
		if err != nil {
			e.logger.Warn("guide line unavailable", "chapter", ch.Title, "error", err)
		}
		r.guideLine = line
	}
	r.settle()
	return r
}

// settle ends the chapter when the current scene does not exist.
func (r *ChapterRun) settle() {
	if r.Done() {
		return
	}
	if _, ok := r.chapter.Scenes[r.scene]; !ok {
		r.engine.logger.Error("scene not found, ending chapter", "chapter", r.chapter.Title, "scene", r.scene)
		r.scene = models.ChapterEnd
	}
}

// Scene is the current scene id.
func (r *ChapterRun) Scene() string {
	return r.scene
}

// Done reports whether the run reached a terminal scene.
func (r *ChapterRun) Done() bool {
	return models.IsTerminalScene(r.scene)
}

// Signal is the terminal signal. It is only meaningful once Done.
func (r *ChapterRun) Signal() Signal {
	return signalFor(r.scene)
}

// Menu describes the current scene for the shell. A scene without choices
// yields a menu with no options.
func (r *ChapterRun) Menu() menu.Menu {
	scene := r.chapter.Scenes[r.scene]
	text := scene.Text
	if r.scene == models.SceneStart && r.guideLine != "" {
		text = r.guideLine + "\n\n" + text
	}
	m := menu.Menu{Title: r.chapter.Title, Text: text}
	for _, c := range scene.Choices {
		m.Options = append(m.Options, menu.Option{Label: c.Text})
	}
	return m
}

// Choose applies choice n (1-based) and moves to its next scene. An invalid
// n returns menu.ErrOutOfRange and changes nothing.
func (r *ChapterRun) Choose(n int) ([]string, error) {
	if r.Done() {
		return nil, ErrChapterDone
	}
	choices := r.chapter.Scenes[r.scene].Choices
	if n < 1 || n > len(choices) {
		return nil, menu.ErrOutOfRange
	}
	choice := choices[n-1]
	msgs := r.engine.resolver.ApplySpec(choice.Effect, r.player)

	r.scene = choice.Next
	if r.scene == "" {
		r.engine.logger.Error("choice has no next scene", "chapter", r.chapter.Title, "choice", n)
		r.scene = models.ChapterEnd
	}
	r.settle()
	return msgs, nil
}

// Continue acknowledges a scene without choices, ending the chapter.
func (r *ChapterRun) Continue() error {
	if r.Done() {
		return ErrChapterDone
	}
	if len(r.chapter.Scenes[r.scene].Choices) > 0 {
		return menu.ErrOutOfRange
	}
	r.scene = models.ChapterEnd
	return nil
}

// RunChapter plays ch to a terminal scene. Bad input re-prompts without
// touching the player; any other prompter error aborts the chapter.
func (e *Engine) RunChapter(ctx context.Context, ch *models.Chapter, p *models.Player, pr Prompter) (Signal, error) {
	run := e.Begin(ctx, ch, p)
	for !run.Done() {
		if err := ctx.Err(); err != nil {
			return SignalAborted, err
		}
		m := run.Menu()
		if m.Len() == 0 {
			if err := pr.Acknowledge(m); err != nil {
				return SignalAborted, err
			}
			if err := run.Continue(); err != nil {
				return SignalAborted, err
			}
			continue
		}

		n, err := pr.Choose(m)
		switch {
		case errors.Is(err, menu.ErrNotNumber), errors.Is(err, menu.ErrOutOfRange):
			pr.Notify([]string{e.invalidChoice(m)})
			continue
		case err != nil:
			return SignalAborted, err
		}

		msgs, err := run.Choose(n)
		if errors.Is(err, menu.ErrOutOfRange) {
			pr.Notify([]string{e.invalidChoice(m)})
			continue
		}
		if err != nil {
			return SignalAborted, err
		}
		if len(msgs) > 0 {
			pr.Notify(msgs)
		}
	}
	return run.Signal(), nil
}

func (e *Engine) invalidChoice(m menu.Menu) string {
	return e.resolver.Printer().Sprintf("❌ Invalid choice! Enter a number from 1 to %d.", m.Len())
}

// CompleteChapter records a finished chapter and requests the story autosave.
// When last is set the story is marked complete before the save.
func (e *Engine) CompleteChapter(ctx context.Context, p *models.Player, last bool) []string {
	p.CompleteChapter()
	if last {
		p.StoryComplete = true
	}
	msgs := e.resolver.Milestones(p)
	if e.saver == nil {
		return msgs
	}
	if err := e.saver.Autosave(ctx, p, models.ModeStory); err != nil {
		e.logger.Error("story autosave failed", "story_progress", p.StoryProgress, "error", err)
		return append(msgs, e.resolver.Printer().Sprintf("❌ Autosave failed: %v", err))
	}
	return append(msgs, e.resolver.Printer().Sprintf("💾 Progress saved."))
}

// PlayStory plays chapters from the player's story progress until the story
// ends or the prompter aborts. With no chapters loaded it returns
// SignalNoContent and leaves p untouched.
func (e *Engine) PlayStory(ctx context.Context, p *models.Player, pr Prompter) (Signal, error) {
	if e.repo.Len() == 0 {
		e.logger.Warn("no story content loaded")
		return SignalNoContent, nil
	}
	if p.StoryComplete {
		return SignalGameEnd, nil
	}
	for {
		ch, ok := e.repo.Chapter(p.StoryProgress)
		if !ok {
			break
		}
		e.logger.Info("chapter started", "chapter", p.StoryProgress, "title", ch.Title)
		sig, err := e.RunChapter(ctx, ch, p, pr)
		if err != nil || sig == SignalAborted {
			return SignalAborted, err
		}
		_, more := e.repo.Chapter(p.StoryProgress + 1)
		last := sig == SignalGameEnd || !more
		pr.Notify(e.CompleteChapter(ctx, p, last))
		if last {
			break
		}
	}
	p.StoryComplete = true
	e.logger.Info("story complete", "chapters", p.Stats.ChaptersCompleted)
	return SignalGameEnd, nil
}
