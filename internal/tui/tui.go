// Package tui is the terminal shell: it renders the session's menus and
// feeds the player's selections back into it.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/terminal-shadows/internal/encounter"
	"github.com/tatianab/terminal-shadows/internal/engine"
	"github.com/tatianab/terminal-shadows/internal/locale"
	"github.com/tatianab/terminal-shadows/internal/menu"
	"github.com/tatianab/terminal-shadows/internal/models"
	"github.com/tatianab/terminal-shadows/internal/persistence"
	"github.com/tatianab/terminal-shadows/internal/session"
)

type screen int

const (
	screenMain screen = iota
	screenModes
	screenName
	screenLoad
	screenLoading
	screenStory
	screenSandbox
	screenHack
	screenShop
	screenCraft
	screenBosses
	screenFight
	screenEvent
	screenMissions
	screenSave
	screenSettings
	screenReset
	screenError
)

type model struct {
	ctx     context.Context
	session *session.Session
	screen  screen
	mode    models.GameMode // picked on the main menu

	run   *engine.ChapterRun
	fight *encounter.Fight
	event encounter.Event
	slots []persistence.SlotInfo

	textInput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	err       error
	gameLog   string
	width     int
	height    int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	disabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5C5C5C"))

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF9C")).
			Bold(true).
			Underline(true)
)

func NewModel(ctx context.Context, s *session.Session) model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := model{
		ctx:       ctx,
		session:   s,
		screen:    screenMain,
		textInput: ti,
		viewport:  viewport.New(80, 20),
		spinner:   sp,
	}
	m.setPlaceholder()
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

type chapterStartedMsg struct {
	run *engine.ChapterRun
	ok  bool
}

type errMsg struct {
	err error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.exit()
			return m, tea.Quit

		case tea.KeyEsc:
			if m.screen == screenError {
				return m, tea.Quit
			}

		case tea.KeyPgUp, tea.KeyPgDown:
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd

		case tea.KeyEnter:
			if m.screen == screenLoading || m.screen == screenError {
				return m, nil
			}
			raw := m.textInput.Value()
			m.textInput.Reset()
			cmd = m.submit(raw)
			m.setPlaceholder()
			m.refresh()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.logWidth()
		m.viewport.Height = max(1, msg.Height-6)
		m.refresh()

	case chapterStartedMsg:
		m.chapterStarted(msg.run, msg.ok)
		m.setPlaceholder()
		m.refresh()
		return m, nil

	case errMsg:
		m.err = msg.err
		m.screen = screenError
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m model) View() string {
	pr := m.session.Printer()
	var s string

	switch m.screen {
	case screenLoading:
		wait := pr.Sprintf("Connecting to the network... please wait.")
		if m.session.Settings.Animations {
			wait = m.spinner.View() + " " + wait
		}
		s = "\n  " + wait + "\n"

	case screenError:
		s = "\n  " + pr.Sprintf("Error: %v", m.err) + "\n\n" + pr.Sprintf("Press Esc to quit.")

	default:
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			m.viewport.View(),
			m.renderState(),
		)
		help := helpStyle.Render(pr.Sprintf("Type a number and press Enter. b goes back, Ctrl+C saves and quits."))
		s = lipgloss.JoinVertical(lipgloss.Left,
			mainView,
			"\n"+m.textInput.View(),
			"\n"+help,
		)
	}

	return "\n" + s + "\n"
}

func (m model) logWidth() int {
	return int(float64(m.width) * 0.75)
}

// refresh redraws the log with the current menu below it.
func (m *model) refresh() {
	content := m.gameLog + m.renderMenu(m.currentMenu())
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

func (m *model) setPlaceholder() {
	pr := m.session.Printer()
	switch {
	case m.screen == screenName:
		m.textInput.Placeholder = session.DefaultName
	case m.screen == screenStory && m.run != nil && m.run.Menu().Len() == 0:
		m.textInput.Placeholder = pr.Sprintf("Press Enter to continue...")
	default:
		m.textInput.Placeholder = pr.Sprintf("Enter a number...")
	}
}

// echo records what the player typed.
func (m *model) echo(s string) {
	if s == "" {
		return
	}
	m.gameLog += userStyle.Width(m.logWidth()).Render("> "+s) + "\n\n"
}

// notify appends resolver output to the log.
func (m *model) notify(lines ...string) {
	if len(lines) == 0 {
		return
	}
	m.gameLog += gameStyle.Width(m.logWidth()).Render(strings.Join(lines, "\n")) + "\n\n"
}

func (m *model) renderMenu(mn menu.Menu) string {
	pr := m.session.Printer()
	var b strings.Builder
	if mn.Title != "" {
		b.WriteString(titleStyle.Render(mn.Title) + "\n\n")
	}
	if mn.Text != "" {
		b.WriteString(gameStyle.Width(m.logWidth()).Render(mn.Text) + "\n\n")
	}
	for i, o := range mn.Options {
		line := fmt.Sprintf("%d. %s", i+1, o.Label)
		if o.Description != "" {
			line += " " + helpStyle.Render("("+o.Description+")")
		}
		if o.Disabled {
			line = disabledStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if mn.AllowBack {
		fmt.Fprintf(&b, "%d. %s\n", len(mn.Options)+1, pr.Sprintf("🔙 Back"))
	}
	return b.String()
}

func (m model) renderState() string {
	p := m.session.Player
	if p == nil {
		return ""
	}
	pr := m.session.Printer()

	agent := titleStyle.Render(pr.Sprintf("AGENT")) + "\n" + p.Name + "\n\n"

	stats := titleStyle.Render(pr.Sprintf("STATS")) + "\n" +
		pr.Sprintf("Level: %d", p.Level) + "\n" +
		pr.Sprintf("XP: %d/%d", p.Experience, p.ExperienceThreshold()) + "\n" +
		pr.Sprintf("BTC: %d", p.Currency) + "\n" +
		pr.Sprintf("Reputation: %d", p.Reputation) + "\n"
	if m.screen == screenFight && m.fight != nil {
		stats += pr.Sprintf("HP: %d", m.fight.PlayerHP) + "\n"
	}
	if m.session.Mode == models.ModeStory {
		stats += pr.Sprintf("Chapter: %d/%d", min(p.StoryProgress, m.session.ChapterCount()), m.session.ChapterCount()) + "\n"
	}
	stats += "\n"

	inventory := titleStyle.Render(pr.Sprintf("INVENTORY")) + "\n"
	order, counts := p.ItemCounts()
	if len(order) == 0 {
		inventory += pr.Sprintf("(empty)")
	}
	for _, item := range order {
		inventory += fmt.Sprintf("- %s x%d\n", locale.Text(pr, item), counts[item])
	}

	stateWidth := int(float64(m.width) * 0.23)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(agent + stats + inventory)
}

// startChapter begins the next chapter off the update loop; the guide line
// may need a network round trip.
func (m model) startChapter() tea.Cmd {
	ctx, s := m.ctx, m.session
	return func() tea.Msg {
		run, ok := s.StartChapter(ctx)
		return chapterStartedMsg{run: run, ok: ok}
	}
}

// exit records play time and autosaves. Failures are logged; the program is
// quitting anyway.
func (m *model) exit() {
	if err := m.session.Exit(m.ctx); err != nil {
		m.session.Logger().Error("exit autosave failed", "error", err)
	}
}

func Run(ctx context.Context, s *session.Session) error {
	p := tea.NewProgram(NewModel(ctx, s), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return stopped(ctx, s, err)
}

// stopped runs the exit autosave for a program killed by ctx, usually on a
// signal. The model never saw a quit key in that case.
func stopped(ctx context.Context, s *session.Session, err error) error {
	if !errors.Is(err, tea.ErrProgramKilled) || ctx.Err() == nil {
		return err
	}
	if err := s.Exit(context.WithoutCancel(ctx)); err != nil {
		s.Logger().Error("exit autosave failed", "error", err)
	}
	return nil
}
