package cli

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/chronomap/internal/domain"
	"github.com/alexanderramin/chronomap/internal/locale"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxNotices = 5

var (
	badgeIdleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#928374")).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)
	badgeRunningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#b8bb26")).
				Border(lipgloss.RoundedBorder()).
				Padding(0, 2).
				Bold(true)
	badgePausedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fabd2f")).
				Border(lipgloss.RoundedBorder()).
				Padding(0, 2)
	badgeReportingStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fe8019")).
				Border(lipgloss.RoundedBorder()).
				Padding(0, 2).
				Bold(true)

	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ebdbb2"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#fe8019")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))
	disabledHelp = lipgloss.NewStyle().Foreground(lipgloss.Color("#504945"))
)

type badgeKeyMap struct {
	Start key.Binding
	Pause key.Binding
	Stop  key.Binding
	Yes   key.Binding
	No    key.Binding
	Quit  key.Binding
}

func newBadgeKeyMap() badgeKeyMap {
	return badgeKeyMap{
		Start: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Pause: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Stop:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		Yes:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "send")),
		No:    key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k badgeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Pause, k.Stop, k.Quit}
}

func (k badgeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// ── messages ─────────────────────────────────────────────────────────────────

type tickMsg time.Time

type noticeMsg notice

type confirmMsg confirmRequest

// workUnitMsg carries a detected changeset from the watcher.
type workUnitMsg domain.WorkUnitEvent

// pipelineDoneMsg signals that a report pipeline has finalized.
type pipelineDoneMsg struct {
	outcome domain.ReportOutcome
}

// bridgeClosedMsg means the watcher stream ended and no further work unit
// events will arrive.
type bridgeClosedMsg struct{}

// badgeModel is the root bubbletea Model for the tracking badge. It renders
// the elapsed-time readout, drains the UIBridge for notices and confirmation
// prompts, and forwards key presses to the session controller.
type badgeModel struct {
	app  *App
	ctx  context.Context
	keys badgeKeyMap
	help help.Model

	notices []string
	pending *confirmRequest

	watcherDone bool
	quitting    bool
}

func newBadgeModel(ctx context.Context, app *App) badgeModel {
	return badgeModel{
		app:  app,
		ctx:  ctx,
		keys: newBadgeKeyMap(),
		help: help.New(),
	}
}

// ── commands ─────────────────────────────────────────────────────────────────

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m badgeModel) waitForNotice() tea.Cmd {
	return func() tea.Msg {
		select {
		case n := <-m.app.Bridge.Notices:
			return noticeMsg(n)
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m badgeModel) waitForConfirm() tea.Cmd {
	return func() tea.Msg {
		select {
		case req := <-m.app.Bridge.Confirms:
			return confirmMsg(req)
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m badgeModel) waitForWorkUnit() tea.Cmd {
	if m.app.Watcher == nil {
		return nil
	}
	events := m.app.Watcher.Events()
	return func() tea.Msg {
		select {
		case ev, ok := <-events:
			if !ok {
				return bridgeClosedMsg{}
			}
			return workUnitMsg(ev)
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m badgeModel) runPipeline(ev domain.WorkUnitEvent) tea.Cmd {
	return func() tea.Msg {
		outcome := m.app.Sessions.HandleWorkUnit(m.ctx, ev)
		return pipelineDoneMsg{outcome: outcome}
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m badgeModel) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(), m.waitForNotice(), m.waitForConfirm()}
	if cmd := m.waitForWorkUnit(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m badgeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tickCmd()

	case noticeMsg:
		m.notices = append(m.notices, msg.Text)
		if len(m.notices) > maxNotices {
			m.notices = m.notices[len(m.notices)-maxNotices:]
		}
		return m, m.waitForNotice()

	case confirmMsg:
		req := confirmRequest(msg)
		m.pending = &req
		return m, nil

	case workUnitMsg:
		return m, m.runPipeline(domain.WorkUnitEvent(msg))

	case pipelineDoneMsg:
		return m, m.waitForWorkUnit()

	case bridgeClosedMsg:
		m.watcherDone = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m badgeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A pending confirmation captures the keyboard until answered.
	if m.pending != nil {
		switch {
		case key.Matches(msg, m.keys.Yes):
			m.pending.Response <- true
			m.pending = nil
			return m, m.waitForConfirm()
		case key.Matches(msg, m.keys.No):
			m.pending.Response <- false
			m.pending = nil
			return m, m.waitForConfirm()
		}
		return m, nil
	}

	controls := m.app.Sessions.Controls()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Start):
		if controls.Start {
			m.app.Sessions.Start()
		}
	case key.Matches(msg, m.keys.Pause):
		if controls.Pause {
			m.app.Sessions.Pause()
		}
	case key.Matches(msg, m.keys.Stop):
		if controls.Stop {
			m.app.Sessions.Stop(m.ctx)
		}
	}
	return m, nil
}

func (m badgeModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	state := m.app.Sessions.State()
	badge := FormatElapsed(m.app.Sessions.Elapsed())

	var style lipgloss.Style
	switch state {
	case domain.SessionRunning:
		style = badgeRunningStyle
	case domain.SessionPaused:
		style = badgePausedStyle
		badge += " " + m.app.Locale.T(locale.KeyPause, nil)
	case domain.SessionReporting:
		style = badgeReportingStyle
	default:
		style = badgeIdleStyle
	}

	b.WriteString(style.Render(badge))
	b.WriteString("\n")

	if state == domain.SessionReporting {
		b.WriteString(dimStyle.Render("reporting..."))
		b.WriteString("\n")
	}

	for _, n := range m.notices {
		b.WriteString(noticeStyle.Render(n))
		b.WriteString("\n")
	}

	if m.pending != nil {
		b.WriteString(promptStyle.Render(m.pending.Prompt))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("[y] yes  [n] no"))
		b.WriteString("\n")
	}

	if m.watcherDone {
		b.WriteString(disabledHelp.Render("event stream closed"))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}
