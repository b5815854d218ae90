package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iksnae/chat-composer/internal/autocomplete"
	"github.com/iksnae/chat-composer/internal/stream"
)

// streamEventMsg wakes the view after a fragment reached the store
type streamEventMsg stream.Event

// replyDoneMsg ends a send or regenerate run
type replyDoneMsg struct {
	sessionID string
	err       error
}

// lookupResultMsg carries an autocomplete answer back to the update loop
type lookupResultMsg autocomplete.Result

// waitForEvent blocks until the reconciler reports a fragment
func waitForEvent(events <-chan stream.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return streamEventMsg(ev)
	}
}
