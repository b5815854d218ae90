package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/chat-composer/internal"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

var (
	limit   int
	since   string
	showRaw bool
)

const showWrapWidth = 80

var (
	// Styles for show command
	sessionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	sessionMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				MarginBottom(1)

	userMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 1)

	assistantMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Bold(true).
				Padding(0, 1)

	messageContentStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show messages for a specific session",
	Long: `Display the messages of a chat session.

Assistant replies are rendered as markdown unless --raw is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		session, ok := store.Session(args[0])
		if !ok {
			return fmt.Errorf("session %s: %w (use 'chat-composer list' to see available sessions)", args[0], internal.ErrSessionNotFound)
		}

		messages := session.Messages
		if since != "" {
			sinceTime, err := time.Parse(time.RFC3339, since)
			if err != nil {
				return fmt.Errorf("invalid --since timestamp format (expected RFC3339): %w", err)
			}
			messages = messagesSince(messages, sinceTime)
		}

		var md *glamour.TermRenderer
		if !showRaw {
			md, err = glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(showWrapWidth),
			)
			if err != nil {
				internal.LogWarn("Markdown rendering unavailable: %v", err)
				md = nil
			}
		}

		out := cmd.OutOrStdout()
		displaySessionHeader(out, session)

		total := len(messages)
		if limit > 0 && limit < len(messages) {
			messages = messages[:limit]
		}
		for i, msg := range messages {
			displayMessage(out, md, i+1, msg, total)
		}

		if limit > 0 && limit < total {
			_, _ = fmt.Fprintln(out)
			_, _ = fmt.Fprintln(out, lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				Italic(true).
				Render(fmt.Sprintf("... (%d more message(s))", total-limit)))
		}

		return nil
	},
}

func messagesSince(messages []internal.Message, t time.Time) []internal.Message {
	filtered := make([]internal.Message, 0, len(messages))
	for _, msg := range messages {
		if !msg.Timestamp.Before(t) {
			filtered = append(filtered, msg)
		}
	}
	return filtered
}

func displaySessionHeader(out io.Writer, session internal.Session) {
	_, _ = fmt.Fprintln(out, sessionHeaderStyle.Render(fmt.Sprintf("💬 %s", session.Title)))

	metaParts := []string{
		fmt.Sprintf("ID: %s", session.ID),
		fmt.Sprintf("Created: %s", session.CreatedAt.Local().Format(time.RFC3339)),
		fmt.Sprintf("Messages: %d", len(session.Messages)),
	}
	_, _ = fmt.Fprintln(out, sessionMetaStyle.Render(strings.Join(metaParts, " • ")))
	_, _ = fmt.Fprintln(out)
}

func displayMessage(out io.Writer, md *glamour.TermRenderer, index int, msg internal.Message, total int) {
	var actorStyle lipgloss.Style
	var actorLabel string

	switch msg.Role {
	case internal.RoleUser:
		actorStyle = userMessageStyle
		actorLabel = "👤 You"
	case internal.RoleAssistant:
		actorStyle = assistantMessageStyle
		actorLabel = "🤖 Assistant"
	default:
		actorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
		actorLabel = fmt.Sprintf("🔧 %s", msg.Role)
	}

	header := actorStyle.Render(actorLabel) + " " + timestampStyle.Render(fmt.Sprintf("[%d/%d]", index, total))
	if !msg.Timestamp.IsZero() {
		header += " " + timestampStyle.Render(msg.Timestamp.Local().Format("15:04:05"))
	}
	_, _ = fmt.Fprintln(out, header)

	content := strings.TrimSpace(msg.Content)
	if content == "" {
		_, _ = fmt.Fprintln(out, messageContentStyle.Foreground(lipgloss.Color("240")).Render("(empty message)"))
		_, _ = fmt.Fprintln(out)
		return
	}

	if md != nil && msg.Role == internal.RoleAssistant {
		rendered, err := md.Render(content)
		if err == nil {
			_, _ = fmt.Fprint(out, rendered)
			return
		}
		internal.LogDebug("Falling back to plain text for message %s: %v", msg.ID, err)
	}

	_, _ = fmt.Fprintln(out, messageContentStyle.Render(wordwrap.String(content, showWrapWidth)))
	_, _ = fmt.Fprintln(out)
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit number of messages to show")
	showCmd.Flags().StringVar(&since, "since", "", "Show messages since timestamp (RFC3339)")
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print message text without markdown rendering")
}
