package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iksnae/chat-composer/internal"
	"github.com/iksnae/chat-composer/internal/autocomplete"
)

// Update handles terminal, stream and lookup messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case lookupResultMsg:
		m.engine.Apply(autocomplete.Result(msg))
		return m, nil

	case streamEventMsg:
		m.refreshTranscript()
		return m, waitForEvent(m.events)

	case replyDoneMsg:
		m.streaming = false
		m.status = ""
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.err = msg.err
			internal.LogWarnKV("reply failed", "session", msg.sessionID, "err", msg.err)
		}
		m.refreshTranscript()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.cancel()
		return m, tea.Quit
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.streaming {
		return m, nil
	}

	switch msg.String() {
	case "ctrl+n":
		m.store.CreateSession()
		m.clearComposer()
		m.refreshTranscript()
		return m, nil
	case "ctrl+r":
		return m.regenerate()
	case "ctrl+d":
		if id := m.store.CurrentSessionID(); id != "" {
			m.store.DeleteSession(id)
			m.status = "Deleted chat"
		}
		m.refreshTranscript()
		return m, nil
	case "tab":
		m.selectNextSession()
		m.refreshTranscript()
		return m, nil
	}

	out := m.engine.HandleKey(autocomplete.ParseKey(msg.String()))
	switch out.Action {
	case autocomplete.ActionNavigate, autocomplete.ActionDismiss:
		return m, nil
	case autocomplete.ActionCommit:
		m.input.SetValue(out.Text)
		m.input.SetCursor(out.Cursor)
		return m, m.lookup()
	case autocomplete.ActionSubmit:
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, tea.Batch(cmd, m.lookup())
}

// lookup re-evaluates the composer and schedules a candidate fetch if needed
func (m Model) lookup() tea.Cmd {
	l := m.engine.SetInput(m.input.Value(), m.input.Position())
	if l == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return lookupResultMsg(l.Run(ctx))
	}
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	content := strings.TrimSpace(m.input.Value())
	if content == "" {
		return m, nil
	}
	m.clearComposer()
	m.err = nil
	m.streaming = true
	m.status = "Thinking"

	ctx, rec := m.ctx, m.reconciler
	return m, func() tea.Msg {
		id, err := rec.SendToCurrent(ctx, content)
		return replyDoneMsg{sessionID: id, err: err}
	}
}

func (m Model) regenerate() (tea.Model, tea.Cmd) {
	id := m.store.CurrentSessionID()
	if id == "" {
		return m, nil
	}
	sess, _ := m.store.Session(id)
	if !sess.HasUserMessage() {
		m.status = "Nothing to regenerate"
		return m, nil
	}
	m.err = nil
	m.streaming = true
	m.status = "Regenerating"

	ctx, rec := m.ctx, m.reconciler
	return m, func() tea.Msg {
		return replyDoneMsg{sessionID: id, err: rec.Regenerate(ctx, id)}
	}
}

func (m *Model) clearComposer() {
	m.input.Reset()
	m.engine.Reset()
}

func (m *Model) selectNextSession() {
	sessions := m.store.Sessions()
	if len(sessions) == 0 {
		return
	}
	current := m.store.CurrentSessionID()
	next := 0
	for i, s := range sessions {
		if s.ID == current {
			next = (i + 1) % len(sessions)
			break
		}
	}
	_ = m.store.Select(sessions[next].ID)
}
