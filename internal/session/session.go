// Package session owns the one live player of a running game and the
// collaborators that act on it.
//
// A Session is not safe for concurrent use; the shell drives it from a single
// goroutine.
package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tatianab/terminal-shadows/internal/config"
	"github.com/tatianab/terminal-shadows/internal/content"
	"github.com/tatianab/terminal-shadows/internal/effects"
	"github.com/tatianab/terminal-shadows/internal/encounter"
	"github.com/tatianab/terminal-shadows/internal/engine"
	"github.com/tatianab/terminal-shadows/internal/guide"
	"github.com/tatianab/terminal-shadows/internal/locale"
	"github.com/tatianab/terminal-shadows/internal/menu"
	"github.com/tatianab/terminal-shadows/internal/models"
	"github.com/tatianab/terminal-shadows/internal/persistence"
	"github.com/tatianab/terminal-shadows/internal/random"
	"golang.org/x/text/message"
)

// DefaultName is used when the player leaves the name blank.
const DefaultName = "Neo"

// ErrNoPlayer is returned by operations that need a game in progress.
var ErrNoPlayer = errors.New("no game in progress")

// Deps are the collaborators a session is built from.
type Deps struct {
	Content      *content.Repository
	Saves        *persistence.Manager
	Settings     config.Settings
	SettingsPath string // empty keeps settings in memory only
	RNG          random.Source
	// Narrator, when set, voices the guide; the static line covers its failures.
	Narrator guide.Narrator
	Logger   *slog.Logger
	Now      func() time.Time
}

type Session struct {
	ID       string
	Player   *models.Player
	Mode     models.GameMode
	Settings config.Settings

	content      *content.Repository
	saves        *persistence.Manager
	settingsPath string
	rng          random.Source
	narrator     guide.Narrator
	logger       *slog.Logger
	now          func() time.Time

	started    time.Time
	effects    *effects.Resolver
	engine     *engine.Engine
	encounters *encounter.Resolver
	board      *encounter.MissionBoard
	boardDay   string
}

func New(d Deps) *Session {
	s := &Session{
		ID:           uuid.NewString(),
		Settings:     d.Settings,
		content:      d.Content,
		saves:        d.Saves,
		settingsPath: d.SettingsPath,
		rng:          d.RNG,
		narrator:     d.Narrator,
		logger:       d.Logger,
		now:          d.Now,
	}
	if s.content == nil {
		s.content = content.NewRepository()
	}
	if s.rng == nil {
		s.rng = random.New(time.Now().UnixNano())
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.logger = s.logger.With("session", s.ID)
	if s.now == nil {
		s.now = time.Now
	}
	s.rebuild()
	return s
}

// rebuild recreates everything that depends on settings.
func (s *Session) rebuild() {
	pr := locale.Printer(s.Settings.Language)
	s.effects = effects.NewResolver(pr)
	opts := []engine.Option{engine.WithLogger(s.logger)}
	if s.narrator != nil {
		opts = append(opts, engine.WithNarrator(guide.Fallback{
			Primary:   s.narrator,
			Secondary: guide.Static{Printer: pr},
			Logger:    s.logger,
		}))
	}
	if s.Settings.Autosave && s.saves != nil {
		opts = append(opts, engine.WithAutosaver(s.saves))
	}
	s.engine = engine.NewEngine(s.content, s.effects, opts...)
	s.encounters = encounter.NewResolver(s.rng, s.effects)
}

func (s *Session) Printer() *message.Printer       { return s.effects.Printer() }
func (s *Session) Engine() *engine.Engine          { return s.engine }
func (s *Session) Encounters() *encounter.Resolver { return s.encounters }
func (s *Session) Saves() *persistence.Manager     { return s.saves }
func (s *Session) Active() bool                    { return s.Player != nil }
func (s *Session) Board() *encounter.MissionBoard  { return s.dailyBoard() }
func (s *Session) Logger() *slog.Logger            { return s.logger }
func (s *Session) StoryAvailable() bool            { return s.content.Len() > 0 }
func (s *Session) ChapterCount() int               { return s.content.Len() }

// NewGame replaces the current player with a fresh one. Sandbox games get
// the sandbox head start.
func (s *Session) NewGame(name string, mode models.GameMode) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}
	p := models.NewPlayer(name, s.now())
	if mode == models.ModeSandbox {
		p.StartSandbox()
	} else {
		mode = models.ModeStory
	}
	s.begin(p, mode)
	s.logger.Info("new game", "mode", mode, "name", name)
}

// Load replaces the current player with the one saved in (slot, mode).
func (s *Session) Load(ctx context.Context, slot int, mode models.GameMode) error {
	rec, err := s.saves.Load(ctx, slot, mode)
	if err != nil {
		return err
	}
	s.begin(&rec.Player, mode)
	s.logger.Info("game loaded", "slot", slot, "mode", mode, "name", rec.Player.Name)
	return nil
}

func (s *Session) begin(p *models.Player, mode models.GameMode) {
	s.Player = p
	s.Mode = mode
	s.started = s.now()
	s.board = nil
}

// Save writes the current player into a manual slot of the current mode.
func (s *Session) Save(ctx context.Context, slot int) error {
	if s.Player == nil {
		return ErrNoPlayer
	}
	if slot < persistence.FirstManual {
		return persistence.ErrInvalidSlot
	}
	return s.saves.Save(ctx, s.Player, slot, s.Mode)
}

// Autosave writes slot 0 of the current mode when autosave is enabled.
func (s *Session) Autosave(ctx context.Context) error {
	if s.Player == nil || !s.Settings.Autosave {
		return nil
	}
	return s.saves.Autosave(ctx, s.Player, s.Mode)
}

// ReturnToMenu is the autosave point when leaving the sandbox loop.
func (s *Session) ReturnToMenu(ctx context.Context) error {
	if s.Mode != models.ModeSandbox {
		return nil
	}
	return s.Autosave(ctx)
}

// Exit records play time since the session began and autosaves.
func (s *Session) Exit(ctx context.Context) error {
	if s.Player == nil {
		return nil
	}
	now := s.now()
	s.Player.RecordPlayTime(now.Sub(s.started), now)
	s.started = now
	s.logger.Info("session exit", "play_time", s.Player.Stats.PlayTime)
	return s.Autosave(ctx)
}

// ResetSaves deletes every slot of every mode.
func (s *Session) ResetSaves(ctx context.Context) error {
	return s.saves.Reset(ctx)
}

// UpdateSettings changes settings, persists them and rebuilds the
// language-dependent resolvers.
func (s *Session) UpdateSettings(change func(*config.Settings)) error {
	change(&s.Settings)
	s.rebuild()
	if s.settingsPath == "" {
		return nil
	}
	return s.Settings.Save(s.settingsPath)
}

// StartChapter begins the chapter at the player's story progress. It
// returns false when no chapter is left to play.
// A player past the last chapter, such as one loaded from a finished story
// slot, is handed over to the sandbox instead.
func (s *Session) StartChapter(ctx context.Context) (*engine.ChapterRun, bool) {
	if s.Player == nil {
		return nil, false
	}
	ch, ok := s.content.Chapter(s.Player.StoryProgress)
	if s.Player.StoryComplete || (!ok && s.content.Len() > 0 && s.Player.StoryProgress > s.content.Len()) {
		s.completeStory()
		return nil, false
	}
	if !ok {
		return nil, false
	}
	s.logger.Info("chapter started", "chapter", s.Player.StoryProgress, "title", ch.Title)
	return s.engine.Begin(ctx, ch, s.Player), true
}

// FinishChapter records a finished run. When the run ended the game or no
// chapter follows, the story is completed and the session moves to sandbox.
func (s *Session) FinishChapter(ctx context.Context, run *engine.ChapterRun) (msgs []string, storyOver bool) {
	_, more := s.content.Chapter(s.Player.StoryProgress + 1)
	last := run.Signal() == engine.SignalGameEnd || !more
	msgs = s.engine.CompleteChapter(ctx, s.Player, last)
	if last {
		return append(msgs, s.completeStory()...), true
	}
	return msgs, false
}

// PlayStory runs the rest of the story through pr.
func (s *Session) PlayStory(ctx context.Context, pr engine.Prompter) (engine.Signal, error) {
	if s.Player == nil {
		return engine.SignalAborted, ErrNoPlayer
	}
	sig, err := s.engine.PlayStory(ctx, s.Player, pr)
	if sig == engine.SignalGameEnd {
		pr.Notify(s.completeStory())
	}
	return sig, err
}

func (s *Session) completeStory() []string {
	s.Player.StoryComplete = true
	s.Mode = models.ModeSandbox
	s.logger.Info("story complete, switching to sandbox", "level", s.Player.Level)
	pr := s.Printer()
	return []string{
		pr.Sprintf("🎊 STORY MODE COMPLETE!"),
		pr.Sprintf("Sandbox mode is now open with every feature."),
	}
}

// AmbientEvent rolls for the unprompted event shown when the sandbox menu
// comes up.
func (s *Session) AmbientEvent() (encounter.Event, bool) {
	return s.encounters.AmbientEvent()
}

// RandomEvent draws an event on request.
func (s *Session) RandomEvent() encounter.Event {
	return s.encounters.PickEvent()
}

func (s *Session) ResolveEvent(ev encounter.Event, choice int) (encounter.Report, error) {
	if s.Player == nil {
		return encounter.Report{}, ErrNoPlayer
	}
	return s.encounters.ResolveEvent(s.Player, ev, choice)
}

// Run resolves a hack, purchase or craft by 1-based selection.
func (s *Session) Run(kind encounter.Kind, selection int) (encounter.Report, error) {
	if s.Player == nil {
		return encounter.Report{}, ErrNoPlayer
	}
	return s.encounters.Run(kind, s.Player, selection)
}

// StartFight begins a fight against the boss at 1-based selection.
func (s *Session) StartFight(selection int) (*encounter.Fight, error) {
	if s.Player == nil {
		return nil, ErrNoPlayer
	}
	if selection < 1 || selection > len(encounter.Bosses) {
		return nil, menu.ErrOutOfRange
	}
	return s.encounters.StartFight(s.Player, encounter.Bosses[selection-1])
}

// dailyBoard returns today's mission board, drawing a new one when the
// calendar day changes.
func (s *Session) dailyBoard() *encounter.MissionBoard {
	if s.Player == nil {
		return nil
	}
	day := s.now().Format(time.DateOnly)
	if s.board == nil || s.boardDay != day {
		s.board = s.encounters.NewBoard(s.Player)
		s.boardDay = day
	}
	return s.board
}

// Claim collects the reward of a completed mission on today's board.
func (s *Session) Claim(selection int) (encounter.Report, error) {
	if s.Player == nil {
		return encounter.Report{}, ErrNoPlayer
	}
	return s.encounters.Claim(s.dailyBoard(), s.Player, selection)
}
