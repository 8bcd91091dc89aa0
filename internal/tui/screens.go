package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tatianab/terminal-shadows/internal/config"
	"github.com/tatianab/terminal-shadows/internal/encounter"
	"github.com/tatianab/terminal-shadows/internal/engine"
	"github.com/tatianab/terminal-shadows/internal/locale"
	"github.com/tatianab/terminal-shadows/internal/menu"
	"github.com/tatianab/terminal-shadows/internal/models"
	"github.com/tatianab/terminal-shadows/internal/persistence"
	"github.com/tatianab/terminal-shadows/internal/session"
	"golang.org/x/text/message"
)

// Sandbox menu positions.
const (
	sandboxHack = iota + 1
	sandboxShop
	sandboxProfile
	sandboxAchievements
	sandboxSave
	sandboxEvent
	sandboxBosses
	sandboxCraft
	sandboxMissions
	sandboxFactions
)

// Settings menu positions.
const (
	settingLanguage = iota + 1
	settingDifficulty
	settingAutosave
	settingAnimations
	settingMusic
	settingReset
)

func onOff(pr *message.Printer, v bool) string {
	if v {
		return pr.Sprintf("on")
	}
	return pr.Sprintf("off")
}

// currentMenu is the menu the next input is parsed against.
func (m *model) currentMenu() menu.Menu {
	s := m.session
	pr := s.Printer()
	enc := s.Encounters()

	switch m.screen {
	case screenMain:
		return menu.Menu{
			Title: pr.Sprintf("🕶️ TERMINAL SHADOWS"),
			Text:  pr.Sprintf("Welcome to the shadow network."),
			Options: []menu.Option{
				{Label: pr.Sprintf("📖 Story mode"), Disabled: !s.StoryAvailable()},
				{Label: pr.Sprintf("🎯 Sandbox mode")},
				{Label: pr.Sprintf("⚙️ Settings")},
				{Label: pr.Sprintf("🚪 Exit")},
			},
		}

	case screenModes:
		title := pr.Sprintf("📖 STORY MODE")
		if m.mode == models.ModeSandbox {
			title = pr.Sprintf("🎯 SANDBOX MODE")
		}
		return menu.Menu{
			Title: title,
			Options: []menu.Option{
				{Label: pr.Sprintf("🆕 New game")},
				{Label: pr.Sprintf("💾 Load game")},
			},
			AllowBack: true,
		}

	case screenName:
		return menu.Menu{
			Title: pr.Sprintf("🆕 NEW GAME"),
			Text:  pr.Sprintf("Enter your hacker name (empty for %s):", session.DefaultName),
		}

	case screenLoad, screenSave:
		return m.slotMenu()

	case screenStory:
		if m.run == nil {
			return menu.Menu{}
		}
		return m.run.Menu()

	case screenSandbox:
		return menu.Menu{
			Title: pr.Sprintf("🎯 SANDBOX"),
			Text:  pr.Sprintf("💪 Your level: %d | 💰 BTC: %d", s.Player.Level, s.Player.Currency),
			Options: []menu.Option{
				{Label: pr.Sprintf("🌐 Hack targets")},
				{Label: pr.Sprintf("🛒 Black market")},
				{Label: pr.Sprintf("👤 Profile")},
				{Label: pr.Sprintf("🏆 Achievements")},
				{Label: pr.Sprintf("💾 Save game")},
				{Label: pr.Sprintf("🎲 Random event")},
				{Label: pr.Sprintf("👹 Bosses")},
				{Label: pr.Sprintf("🔧 Crafting")},
				{Label: pr.Sprintf("📋 Daily missions")},
				{Label: pr.Sprintf("🎯 Factions")},
			},
			AllowBack: true,
		}

	case screenHack:
		return enc.TargetMenu(s.Player)
	case screenShop:
		return enc.ShopMenu(s.Player)
	case screenCraft:
		return enc.CraftMenu(s.Player)
	case screenBosses:
		return enc.BossMenu(s.Player)
	case screenFight:
		return m.fight.Menu()
	case screenEvent:
		return enc.EventMenu(m.event)
	case screenMissions:
		return enc.MissionMenu(s.Board(), s.Player)

	case screenSettings:
		set := s.Settings
		return menu.Menu{
			Title: pr.Sprintf("⚙️ SETTINGS"),
			Options: []menu.Option{
				{Label: pr.Sprintf("🌐 Language: %s", set.Language)},
				{Label: pr.Sprintf("🎚️ Difficulty: %s", locale.Text(pr, string(set.Difficulty)))},
				{Label: pr.Sprintf("💾 Autosave: %s", onOff(pr, set.Autosave))},
				{Label: pr.Sprintf("✨ Animations: %s", onOff(pr, set.Animations))},
				{Label: pr.Sprintf("🎵 Music: %s", onOff(pr, set.Music))},
				{Label: pr.Sprintf("🗑️ Reset all saves")},
			},
			AllowBack: true,
		}

	case screenReset:
		return menu.Menu{
			Title:     pr.Sprintf("🗑️ RESET"),
			Text:      pr.Sprintf("Delete every save in every mode? This cannot be undone."),
			Options:   []menu.Option{{Label: pr.Sprintf("Yes, delete everything")}},
			AllowBack: true,
		}
	}
	return menu.Menu{}
}

func (m *model) slotMenu() menu.Menu {
	pr := m.session.Printer()
	mn := menu.Menu{Title: pr.Sprintf("💾 LOAD GAME"), AllowBack: true}
	if m.screen == screenSave {
		mn.Title = pr.Sprintf("💾 SAVE GAME")
	}
	for _, info := range m.slots {
		label := pr.Sprintf("Slot %d", info.Slot)
		if info.Slot == persistence.AutosaveSlot {
			label = pr.Sprintf("🔄 Autosave")
		}
		opt := menu.Option{Label: label}
		switch {
		case info.Empty:
			opt.Description = pr.Sprintf("empty")
			opt.Disabled = m.screen == screenLoad
		case info.Corrupt:
			opt.Description = pr.Sprintf("corrupt")
			opt.Disabled = m.screen == screenLoad
		default:
			opt.Description = pr.Sprintf("%s, level %d, %s", info.Name, info.Level, info.SavedAt.Format("2006-01-02 15:04"))
		}
		mn.Options = append(mn.Options, opt)
	}
	return mn
}

// submit handles one line of input for the current screen.
func (m *model) submit(raw string) tea.Cmd {
	switch m.screen {
	case screenName:
		m.echo(raw)
		m.session.NewGame(raw, m.mode)
		return m.enterMode()
	case screenStory:
		if m.run != nil && m.run.Menu().Len() == 0 {
			if err := m.run.Continue(); err != nil {
				m.notify(m.errorText(err))
				return nil
			}
			return m.finishChapter()
		}
	}

	cur := m.currentMenu()
	n, err := menu.Parse(cur, raw)
	if err != nil {
		m.echo(raw)
		m.notify(m.session.Printer().Sprintf("❌ Invalid choice! Enter a number from 1 to %d.", cur.Len()))
		return nil
	}
	if n == menu.Back {
		m.echo(m.session.Printer().Sprintf("🔙 Back"))
		return m.back()
	}
	m.echo(cur.Options[n-1].Label)
	return m.choose(n)
}

func (m *model) back() tea.Cmd {
	switch m.screen {
	case screenModes, screenSettings:
		m.screen = screenMain
	case screenLoad:
		m.screen = screenModes
	case screenReset:
		m.screen = screenSettings
	case screenSandbox:
		if err := m.session.ReturnToMenu(m.ctx); err != nil {
			m.notify(m.errorText(err))
		}
		m.screen = screenMain
	default:
		m.screen = screenSandbox
	}
	return nil
}

func (m *model) choose(n int) tea.Cmd {
	s := m.session
	pr := s.Printer()

	switch m.screen {
	case screenMain:
		switch n {
		case 1:
			m.mode = models.ModeStory
			m.screen = screenModes
		case 2:
			m.mode = models.ModeSandbox
			m.screen = screenModes
		case 3:
			m.screen = screenSettings
		case 4:
			m.exit()
			return tea.Quit
		}

	case screenModes:
		if n == 1 {
			m.screen = screenName
			return nil
		}
		return m.openSlots(screenLoad)

	case screenLoad:
		slot := m.slots[n-1].Slot
		if err := s.Load(m.ctx, slot, m.mode); err != nil {
			m.notify(m.errorText(err))
			return nil
		}
		m.notify(pr.Sprintf("📂 Welcome back, %s!", s.Player.Name))
		return m.enterMode()

	case screenSave:
		slot := m.slots[n-1].Slot
		if err := s.Save(m.ctx, slot); err != nil {
			m.notify(m.errorText(err))
			return nil
		}
		m.notify(pr.Sprintf("💾 Game saved to slot %d.", slot))
		return m.enterSandbox()

	case screenStory:
		msgs, err := m.run.Choose(n)
		if err != nil {
			m.notify(m.errorText(err))
			return nil
		}
		m.notify(msgs...)
		if m.run.Done() {
			return m.finishChapter()
		}

	case screenSandbox:
		return m.sandbox(n)

	case screenHack:
		return m.runEncounter(encounter.KindHack, n)
	case screenShop:
		return m.runEncounter(encounter.KindShop, n)
	case screenCraft:
		return m.runEncounter(encounter.KindCraft, n)

	case screenBosses:
		f, err := s.StartFight(n)
		if err != nil {
			m.notify(m.errorText(err))
			return nil
		}
		m.fight = f
		m.notify(pr.Sprintf("👹 BOSS FIGHT: %s", locale.Text(pr, f.Boss.Name)))
		m.screen = screenFight

	case screenFight:
		msgs, err := m.fight.Act(encounter.Action(n))
		if err != nil {
			m.notify(m.errorText(err))
			return nil
		}
		m.notify(msgs...)
		if m.fight.Over() {
			m.fight = nil
			return m.enterSandbox()
		}

	case screenEvent:
		rep, err := s.ResolveEvent(m.event, n)
		if err != nil {
			m.notify(m.errorText(err))
		}
		m.notify(rep.Messages...)
		return m.enterSandbox()

	case screenMissions:
		rep, err := s.Claim(n)
		if err != nil {
			m.notify(m.errorText(err))
			return nil
		}
		m.notify(rep.Messages...)

	case screenSettings:
		return m.settings(n)

	case screenReset:
		if err := s.ResetSaves(m.ctx); err != nil {
			m.notify(m.errorText(err))
		} else {
			m.notify(pr.Sprintf("🗑️ All saves deleted."))
		}
		m.screen = screenSettings
	}
	return nil
}

func (m *model) sandbox(n int) tea.Cmd {
	s := m.session
	switch n {
	case sandboxHack:
		m.screen = screenHack
	case sandboxShop:
		m.screen = screenShop
	case sandboxProfile:
		m.notify(s.Profile()...)
		return m.enterSandbox()
	case sandboxAchievements:
		m.notify(s.Achievements()...)
		return m.enterSandbox()
	case sandboxSave:
		return m.openSlots(screenSave)
	case sandboxEvent:
		m.event = s.RandomEvent()
		m.screen = screenEvent
	case sandboxBosses:
		m.screen = screenBosses
	case sandboxCraft:
		m.screen = screenCraft
	case sandboxMissions:
		m.screen = screenMissions
	case sandboxFactions:
		m.notify(s.Factions()...)
		return m.enterSandbox()
	}
	return nil
}

func (m *model) runEncounter(kind encounter.Kind, n int) tea.Cmd {
	rep, err := m.session.Run(kind, n)
	if err != nil {
		m.notify(m.errorText(err))
		return nil
	}
	m.notify(rep.Messages...)
	return m.enterSandbox()
}

func (m *model) settings(n int) tea.Cmd {
	var change func(*config.Settings)
	switch n {
	case settingLanguage:
		change = (*config.Settings).ToggleLanguage
	case settingDifficulty:
		change = (*config.Settings).CycleDifficulty
	case settingAutosave:
		change = (*config.Settings).ToggleAutosave
	case settingAnimations:
		change = (*config.Settings).ToggleAnimations
	case settingMusic:
		change = (*config.Settings).ToggleMusic
	case settingReset:
		m.screen = screenReset
		return nil
	}
	if err := m.session.UpdateSettings(change); err != nil {
		m.notify(m.errorText(err))
		return nil
	}
	m.notify(m.session.Printer().Sprintf("✅ Settings saved."))
	return nil
}

func (m *model) openSlots(next screen) tea.Cmd {
	mode := m.mode
	if next == screenSave {
		mode = m.session.Mode
	}
	slots, err := m.session.Saves().Summaries(m.ctx, mode)
	if err != nil {
		return func() tea.Msg { return errMsg{err} }
	}
	if next == screenSave {
		slots = slots[persistence.FirstManual:]
	}
	m.slots = slots
	m.screen = next
	return nil
}

// enterMode drops the player into the loop of the session's mode.
func (m *model) enterMode() tea.Cmd {
	if m.session.Mode == models.ModeSandbox {
		return m.enterSandbox()
	}
	m.screen = screenLoading
	return m.startChapter()
}

// enterSandbox shows the sandbox menu, first rolling for an ambient event.
func (m *model) enterSandbox() tea.Cmd {
	if ev, ok := m.session.AmbientEvent(); ok {
		m.event = ev
		m.screen = screenEvent
		return nil
	}
	m.screen = screenSandbox
	return nil
}

func (m *model) chapterStarted(run *engine.ChapterRun, ok bool) {
	pr := m.session.Printer()
	if ok {
		m.run = run
		m.screen = screenStory
		return
	}
	m.run = nil
	if m.session.Player != nil && m.session.Player.StoryComplete {
		m.notify(pr.Sprintf("📖 The story is complete. The sandbox is yours."))
		m.enterSandbox()
		return
	}
	m.notify(pr.Sprintf("📖 No chapters are available."))
	m.screen = screenMain
}

func (m *model) finishChapter() tea.Cmd {
	msgs, over := m.session.FinishChapter(m.ctx, m.run)
	m.notify(msgs...)
	m.run = nil
	if over {
		return m.enterSandbox()
	}
	m.screen = screenLoading
	return m.startChapter()
}

// errorText turns a refused action into a message for the player.
func (m *model) errorText(err error) string {
	pr := m.session.Printer()
	switch {
	case errors.Is(err, encounter.ErrInsufficientFunds):
		return pr.Sprintf("💸 Not enough BTC!")
	case errors.Is(err, encounter.ErrLevelTooLow):
		return pr.Sprintf("🔒 Your level is too low.")
	case errors.Is(err, encounter.ErrMissingMaterials):
		return pr.Sprintf("🔧 Missing materials.")
	case errors.Is(err, encounter.ErrAlreadyClaimed):
		return pr.Sprintf("✅ Reward already claimed.")
	case errors.Is(err, encounter.ErrMissionIncomplete):
		return pr.Sprintf("⏳ Mission not complete yet.")
	case errors.Is(err, persistence.ErrNoSave):
		return pr.Sprintf("📭 That slot is empty.")
	case errors.Is(err, persistence.ErrCorrupt):
		return pr.Sprintf("⚠️ That save is corrupt.")
	case errors.Is(err, menu.ErrOutOfRange), errors.Is(err, menu.ErrNotNumber):
		return pr.Sprintf("❌ Invalid choice!")
	}
	m.session.Logger().Error("action failed", "error", err)
	return pr.Sprintf("⚠️ Error: %s", strings.TrimSpace(err.Error()))
}
