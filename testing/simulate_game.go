// Command simulate_game plays a whole game without a terminal: the story
// through a bot prompter, then a stretch of sandbox grinding. With -llm and a
// GEMINI_API_KEY, story choices come from a Gemini "player" instead of dice.
package main

import (
	"bytes"
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/terminal-shadows/internal/config"
	"github.com/tatianab/terminal-shadows/internal/content"
	"github.com/tatianab/terminal-shadows/internal/encounter"
	"github.com/tatianab/terminal-shadows/internal/menu"
	"github.com/tatianab/terminal-shadows/internal/models"
	"github.com/tatianab/terminal-shadows/internal/persistence"
	"github.com/tatianab/terminal-shadows/internal/random"
	"github.com/tatianab/terminal-shadows/internal/session"
	"google.golang.org/api/option"
)

//go:embed prompts/player_choice.txt
var playerChoicePrompt string

var playerChoiceTmpl = template.Must(template.New("player_choice").
	Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
	Parse(playerChoicePrompt))

func main() {
	seed := flag.Int64("seed", 1, "random seed")
	steps := flag.Int("steps", 50, "sandbox actions after the story")
	useLLM := flag.Bool("llm", false, "let a Gemini model pick story choices")
	lang := flag.String("lang", "en", "language of the run")
	verbose := flag.Bool("v", false, "log to stderr")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.DiscardHandler)
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	repo, err := content.LoadEmbedded(logger)
	if err != nil {
		log.Fatalf("Failed to load chapters: %v", err)
	}

	dir, err := os.MkdirTemp("", "shadows-sim")
	if err != nil {
		log.Fatalf("Failed to create save dir: %v", err)
	}
	defer os.RemoveAll(dir)
	store, err := persistence.NewFileStore(dir)
	if err != nil {
		log.Fatalf("Failed to open save store: %v", err)
	}
	saves := persistence.NewManager(store, persistence.WithLogger(logger))
	defer saves.Close()

	settings := config.DefaultSettings()
	settings.Language = *lang
	s := session.New(session.Deps{
		Content:  repo,
		Saves:    saves,
		Settings: settings,
		RNG:      random.New(*seed),
		Logger:   logger,
	})

	player := &bot{ctx: ctx, rng: rand.New(rand.NewPCG(uint64(*seed), 0))}
	if *useLLM {
		if cfg.GeminiAPIKey == "" {
			log.Fatal("-llm needs GEMINI_API_KEY")
		}
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			log.Fatalf("Failed to create player client: %v", err)
		}
		defer client.Close()
		player.model = client.GenerativeModel("gemini-2.5-flash")
	}

	fmt.Println("--- Story ---")
	s.NewGame("Sim", models.ModeStory)
	sig, err := s.PlayStory(ctx, player)
	if err != nil {
		log.Fatalf("Story aborted: %v", err)
	}
	fmt.Printf("Story ended with %s. Mode is now %s.\n\n", sig, s.Mode)

	if s.Mode != models.ModeSandbox {
		s.NewGame("Sim", models.ModeSandbox)
	}
	fmt.Println("--- Sandbox ---")
	for step := 1; step <= *steps; step++ {
		fmt.Printf("[%d] ", step)
		grind(s, player.rng)
	}

	fmt.Println("\n--- Profile ---")
	for _, line := range s.Profile() {
		fmt.Println(line)
	}
	if err := s.Exit(ctx); err != nil {
		log.Fatalf("Final save failed: %v", err)
	}
}

// bot answers story menus.
type bot struct {
	ctx   context.Context
	rng   *rand.Rand
	model *genai.GenerativeModel
}

func (b *bot) Choose(m menu.Menu) (int, error) {
	fmt.Printf("%s\n%s\n", m.Title, m.Text)
	n := b.pick(m)
	fmt.Printf("Bot picks: %s\n", m.Options[n-1].Label)
	return n, nil
}

func (b *bot) Acknowledge(m menu.Menu) error {
	fmt.Printf("%s\n%s\n", m.Title, m.Text)
	return nil
}

func (b *bot) Notify(lines []string) {
	for _, l := range lines {
		fmt.Println("  " + l)
	}
}

func (b *bot) pick(m menu.Menu) int {
	if b.model == nil {
		return b.rng.IntN(m.Len()) + 1
	}
	var prompt bytes.Buffer
	if err := playerChoiceTmpl.Execute(&prompt, m); err != nil {
		return b.rng.IntN(m.Len()) + 1
	}

	resp, err := b.model.GenerateContent(b.ctx, genai.Text(prompt.String()))
	if err != nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return b.rng.IntN(m.Len()) + 1
	}
	raw := strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	n, err := menu.Parse(m, raw)
	if err != nil || n == menu.Back {
		return b.rng.IntN(m.Len()) + 1
	}
	return n
}

// grind takes one random sandbox action and prints its outcome.
func grind(s *session.Session, rng *rand.Rand) {
	var rep encounter.Report
	var err error

	if ev, ok := s.AmbientEvent(); ok {
		rep, err = s.ResolveEvent(ev, rng.IntN(len(ev.Choices))+1)
		report(s, rep, err)
		return
	}

	switch rng.IntN(6) {
	case 0, 1:
		rep, err = s.Run(encounter.KindHack, rng.IntN(len(encounter.Targets))+1)
	case 2:
		rep, err = s.Run(encounter.KindShop, rng.IntN(len(encounter.ShopItems))+1)
	case 3:
		rep, err = s.Run(encounter.KindCraft, rng.IntN(len(encounter.Recipes))+1)
	case 4:
		f, ferr := s.StartFight(rng.IntN(len(encounter.Bosses)) + 1)
		if ferr != nil {
			report(s, rep, ferr)
			return
		}
		for !f.Over() {
			msgs, _ := f.Act(encounter.Action(rng.IntN(3) + 1))
			rep.Messages = append(rep.Messages, msgs...)
		}
	case 5:
		for i := 1; i <= encounter.BoardSize; i++ {
			if r, err := s.Claim(i); err == nil {
				rep.Messages = append(rep.Messages, r.Messages...)
			}
		}
	}
	report(s, rep, err)
}

func report(s *session.Session, rep encounter.Report, err error) {
	if err != nil {
		fmt.Printf("refused: %v\n", err)
		return
	}
	p := s.Player
	fmt.Printf("level %d, %d BTC\n", p.Level, p.Currency)
	for _, m := range rep.Messages {
		fmt.Println("  " + m)
	}
}
