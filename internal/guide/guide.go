// Package guide produces the Anonymous Guide's lines shown when a chapter
// opens with the guide present.
package guide

import (
	"context"
	"io"
	"log/slog"

	"github.com/tatianab/terminal-shadows/internal/models"
	"golang.org/x/text/message"
)

// Narrator speaks one line at the start of a chapter.
type Narrator interface {
	Line(ctx context.Context, ch *models.Chapter, p *models.Player) (string, error)
}

// Static always answers with the same localized line.
type Static struct {
	Printer *message.Printer
}

func (s Static) Line(context.Context, *models.Chapter, *models.Player) (string, error) {
	if s.Printer == nil {
		return "Anonymous Guide: 'This mission will change everything. Be careful.'", nil
	}
	return s.Printer.Sprintf("Anonymous Guide: 'This mission will change everything. Be careful.'"), nil
}

// Fallback tries Primary and answers with Secondary when it fails.
type Fallback struct {
	Primary   Narrator
	Secondary Narrator
	Logger    *slog.Logger
}

func (f Fallback) Line(ctx context.Context, ch *models.Chapter, p *models.Player) (string, error) {
	line, err := f.Primary.Line(ctx, ch, p)
	if err == nil && line != "" {
		return line, nil
	}
	logger := f.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger.Warn("guide narrator failed, using fallback", "chapter", ch.Title, "error", err)
	return f.Secondary.Line(ctx, ch, p)
}
