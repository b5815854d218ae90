package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iksnae/chat-composer/internal"
)

const markdownTimeLayout = "2006-01-02 15:04:05 MST"

// MarkdownExporter exports sessions in Markdown format
type MarkdownExporter struct{}

// Export exports a session to Markdown format
func (e *MarkdownExporter) Export(session *internal.Session, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# %s\n\n", session.Title)

	_, _ = fmt.Fprintf(w, "**Session:** %s  \n", session.ID)
	_, _ = fmt.Fprintf(w, "**Created:** %s  \n", formatTime(session.CreatedAt))
	_, _ = fmt.Fprintf(w, "**Updated:** %s  \n", formatTime(session.UpdatedAt))
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(session.Messages))

	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, msg := range session.Messages {
		timestamp := ""
		if !msg.Timestamp.IsZero() {
			timestamp = fmt.Sprintf(" (%s)", formatTime(msg.Timestamp))
		}

		content := msg.Content
		if msg.Role == internal.RoleUser {
			content = escapeMarkdown(content)
		}

		_, err := fmt.Fprintf(w, "**%s:**%s\n\n%s\n\n", roleHeading(msg.Role), timestamp, content)
		if err != nil {
			return fmt.Errorf("failed to write message %s: %w", msg.ID, err)
		}

		if i < len(session.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

func roleHeading(r internal.Role) string {
	switch r {
	case internal.RoleUser:
		return "You"
	case internal.RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(markdownTimeLayout)
}

// escapeMarkdown escapes emphasis markers outside fenced code blocks
func escapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
