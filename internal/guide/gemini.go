package guide

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/terminal-shadows/internal/locale"
	"github.com/tatianab/terminal-shadows/internal/models"
	"golang.org/x/text/message"
	"google.golang.org/api/option"
)

//go:embed prompts/guide_line.txt
var guideLinePrompt string

var guideLineTmpl = template.Must(template.New("guide_line").Parse(guideLinePrompt))

// maxOpening bounds how much scene text goes into the prompt.
const maxOpening = 600

// Gemini asks a Gemini model for the guide's line.
type Gemini struct {
	client   *genai.Client
	model    *genai.GenerativeModel
	language string
	printer  *message.Printer
}

func NewGemini(ctx context.Context, apiKey, language string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel("gemini-2.5-flash")
	model.SetTemperature(0.9)
	model.SetMaxOutputTokens(80)
	return &Gemini{
		client:   client,
		model:    model,
		language: language,
		printer:  locale.Printer(language),
	}, nil
}

func (g *Gemini) Close() {
	g.client.Close()
}

func (g *Gemini) Line(ctx context.Context, ch *models.Chapter, p *models.Player) (string, error) {
	prompt, err := renderPrompt(ch, p, g.language)
	if err != nil {
		return "", err
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}
	line := cleanLine(string(text))
	if line == "" {
		return "", fmt.Errorf("empty guide line from Gemini")
	}
	return g.attribute(line), nil
}

// attribute puts the guide's name in front of line.
func (g *Gemini) attribute(line string) string {
	if g.printer == nil {
		return "Anonymous Guide: '" + line + "'"
	}
	return g.printer.Sprintf("Anonymous Guide: '%s'", line)
}

func renderPrompt(ch *models.Chapter, p *models.Player, language string) (string, error) {
	opening := ch.Scenes[models.SceneStart].Text
	if r := []rune(opening); len(r) > maxOpening {
		opening = string(r[:maxOpening])
	}
	if language == "" {
		language = "en"
	}
	data := struct {
		Title    string
		Opening  string
		Name     string
		Level    int
		Currency int
		Language string
	}{
		Title:    ch.Title,
		Opening:  strings.TrimSpace(opening),
		Name:     p.Name,
		Level:    p.Level,
		Currency: p.Currency,
		Language: language,
	}

	var buf bytes.Buffer
	if err := guideLineTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// cleanLine keeps the first non-empty line and strips wrapping quotes and
// code fences.
func cleanLine(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	for _, line := range strings.Split(s, "\n") {
		line = strings.Trim(strings.TrimSpace(line), `"'«»`)
		if line != "" {
			return line
		}
	}
	return ""
}
