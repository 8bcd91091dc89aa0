package guide

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tatianab/terminal-shadows/internal/locale"
	"github.com/tatianab/terminal-shadows/internal/models"
)

type failing struct{}

func (failing) Line(context.Context, *models.Chapter, *models.Player) (string, error) {
	return "", errors.New("offline")
}

func TestFallback(t *testing.T) {
	ch := &models.Chapter{Title: "Test"}
	n := Fallback{Primary: failing{}, Secondary: Static{}}
	line, err := n.Line(context.Background(), ch, &models.Player{})
	if err != nil {
		t.Fatalf("Line: %v", err)
	}
	if !strings.HasPrefix(line, "Anonymous Guide:") {
		t.Errorf("unexpected fallback line %q", line)
	}
}

func TestRenderPrompt(t *testing.T) {
	ch := &models.Chapter{
		Title:  "Ghost Protocol",
		Scenes: map[string]models.Scene{models.SceneStart: {Text: strings.Repeat("x", 2000)}},
	}
	p := &models.Player{Name: "Neo", Level: 3, Currency: 42}
	prompt, err := renderPrompt(ch, p, "")
	if err != nil {
		t.Fatalf("renderPrompt: %v", err)
	}
	for _, want := range []string{"Chapter: Ghost Protocol", "Neo, level 3, 42 BTC", "Language: en"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, strings.Repeat("x", maxOpening+1)) {
		t.Error("opening text was not truncated")
	}
}

func TestCleanLine(t *testing.T) {
	tests := map[string]string{
		"\"Trust no one.\"":          "Trust no one.",
		"```\nWatch the logs.\n```":  "Watch the logs.",
		"\n\n  Stay quiet  \nextra": "Stay quiet",
		"   ":                        "",
	}
	for in, want := range tests {
		if got := cleanLine(in); got != want {
			t.Errorf("cleanLine(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAttribute(t *testing.T) {
	for _, tc := range []struct {
		g    *Gemini
		want string
	}{
		{&Gemini{}, "Anonymous Guide: 'Run.'"},
		{&Gemini{printer: locale.Printer(locale.English)}, "Anonymous Guide: 'Run.'"},
		{&Gemini{printer: locale.Printer(locale.Russian)}, "Анонимный Гид: 'Run.'"},
	} {
		if got := tc.g.attribute("Run."); got != tc.want {
			t.Errorf("attribute = %q, want %q", got, tc.want)
		}
	}
}
