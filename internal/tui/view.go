package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/iksnae/chat-composer/internal"
	"github.com/iksnae/chat-composer/internal/autocomplete"
)

const (
	headerHeight   = 1
	composerHeight = 3
	statusHeight   = 1
)

// layout sizes the transcript and input to the window and re-places the dropdown
func (m *Model) layout() {
	mainWidth := m.mainWidth()
	m.input.Width = max(mainWidth-6, 10)

	m.viewport.Width = mainWidth
	m.viewport.Height = max(m.height-headerHeight-composerHeight-statusHeight, 3)
	m.engine.Place(m.viewport.Height, statusHeight)
	m.refreshTranscript()
}

func (m Model) mainWidth() int {
	if m.width == 0 {
		return 80
	}
	return max(m.width-sidebarWidth-3, 20)
}

// refreshTranscript re-reads the current session from the store
func (m *Model) refreshTranscript() {
	sess, ok := m.store.CurrentSession()
	if !ok {
		m.viewport.SetContent(statusStyle.Render("No chat selected. Type a message to start one."))
		return
	}

	width := m.mainWidth() - 2
	body := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	for _, msg := range sess.Messages {
		label := userLabelStyle.Render("You")
		if msg.Role == internal.RoleAssistant {
			label = assistantLabelStyle.Render("Assistant")
		}
		b.WriteString(label)
		b.WriteString(" ")
		b.WriteString(timestampStyle.Render(msg.Timestamp.Local().Format("15:04")))
		b.WriteString("\n")
		b.WriteString(body.Render(msg.Content))
		b.WriteString("\n\n")
	}
	if m.streaming {
		if last, ok := sess.LastMessage(); !ok || last.Role == internal.RoleUser {
			b.WriteString(m.spinner.View() + " " + statusStyle.Render("Thinking..."))
		}
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// View renders the sidebar next to the transcript and composer
func (m Model) View() string {
	title := internal.DefaultTitle
	if sess, ok := m.store.CurrentSession(); ok {
		title = sess.Title
	}
	header := headerStyle.Render(runewidth.Truncate(title, m.mainWidth()-2, "…"))

	transcript := m.viewport.View()
	composer := composerStyle.Width(m.mainWidth() - 2).Render(m.input.View())

	var sections []string
	dropdown := m.renderDropdown()
	switch {
	case dropdown == "":
		sections = []string{header, transcript, composer}
	case m.engine.Placement() == autocomplete.Above:
		sections = []string{header, overlayBottom(transcript, dropdown), composer}
	default:
		sections = []string{header, transcript, composer, dropdown}
	}
	sections = append(sections, m.renderStatus())

	main := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), main)
}

func (m Model) renderSidebar() string {
	current := m.store.CurrentSessionID()
	lines := []string{headerStyle.Render("Chats"), ""}
	for _, s := range m.store.Sessions() {
		title := runewidth.Truncate(s.Title, sidebarWidth-4, "…")
		if s.ID == current {
			lines = append(lines, sidebarCurrentStyle.Render("▸ "+title))
		} else {
			lines = append(lines, sidebarItemStyle.Render("  "+title))
		}
	}
	height := m.height
	if height == 0 {
		height = len(lines)
	}
	return sidebarStyle.Height(height).Render(strings.Join(lines, "\n"))
}

func (m Model) renderDropdown() string {
	if !m.engine.Visible() {
		return ""
	}
	candidates := m.engine.Candidates()
	selected := m.engine.Selected()
	query := m.engine.Detection().Query

	// Scroll the window of visible rows so the highlight stays in view
	rows := min(m.dropdownHeight, len(candidates))
	first := 0
	if selected >= rows {
		first = selected - rows + 1
	}

	width := m.mainWidth() - 4
	lines := make([]string, 0, rows)
	for i := first; i < first+rows; i++ {
		line := renderCandidate(candidates[i], query)
		style := dropdownItemStyle
		if i == selected {
			style = dropdownSelectedStyle
		}
		lines = append(lines, style.Width(width).Render(line))
	}
	return dropdownStyle.Render(strings.Join(lines, "\n"))
}

func renderCandidate(c autocomplete.Candidate, query string) string {
	switch c := c.(type) {
	case autocomplete.Mention:
		return highlight(c.Name, query) + " " + usernameStyle.Render("@"+c.Username)
	case autocomplete.Suggestion:
		return highlight(c.Text, query)
	default:
		return c.Label()
	}
}

func highlight(text, query string) string {
	var b strings.Builder
	for _, span := range autocomplete.Highlight(text, query) {
		if span.Match {
			b.WriteString(matchStyle.Render(span.Text))
		} else {
			b.WriteString(span.Text)
		}
	}
	return b.String()
}

func (m Model) renderStatus() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.streaming {
		return statusStyle.Render(m.spinner.View() + " " + m.status)
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return statusStyle.Render("enter send · ctrl+n new · ctrl+r regenerate · ctrl+d delete · tab next · ctrl+c quit")
}

// overlayBottom replaces the last lines of base with overlay
func overlayBottom(base, overlay string) string {
	baseLines := strings.Split(base, "\n")
	overLines := strings.Split(overlay, "\n")
	keep := max(len(baseLines)-len(overLines), 0)
	return strings.Join(append(baseLines[:keep], overLines...), "\n")
}
