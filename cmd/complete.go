package cmd

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/chat-composer/internal/autocomplete"
	"github.com/spf13/cobra"
)

var (
	completeCursor int
	completePick   int
)

var (
	modeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)
)

// completeCmd represents the complete command
var completeCmd = &cobra.Command{
	Use:   "complete [--cursor N] <text...>",
	Short: "Show the completions the composer would offer",
	Long: `Run the composer's autocomplete for a piece of text and print the detected
mode and the candidates.

The cursor is a character offset into the text and defaults to its end.
With --pick the chosen candidate is spliced into the text and the result printed.`,
	Example: `  chat-composer complete "ping @jo"
  chat-composer complete --pick 0 "how to handle err"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		cursor := completeCursor
		if cursor < 0 {
			cursor = utf8.RuneCountInString(text)
		}

		engine := autocomplete.NewEngine(newDirectory(), newCatalog(),
			autocomplete.WithMentionLimit(cfg.MentionLimit),
			autocomplete.WithDropdownHeight(cfg.DropdownHeight),
		)
		engine.Refresh(cmd.Context(), text, cursor)

		out := cmd.OutOrStdout()
		if completePick >= 0 {
			next, _, ok := engine.Commit(completePick)
			if !ok {
				return fmt.Errorf("no candidate at index %d (%d available)", completePick, len(engine.Candidates()))
			}
			_, _ = fmt.Fprintln(out, next)
			return nil
		}

		displayCompletions(out, engine)
		return nil
	},
}

func displayCompletions(out io.Writer, engine *autocomplete.Engine) {
	det := engine.Detection()
	_, _ = fmt.Fprintf(out, "%s %s\n", titleStyle.Render("Mode:"), modeStyle.Render(det.Mode.String()))
	if det.Mode == autocomplete.ModeNone {
		return
	}
	_, _ = fmt.Fprintf(out, "%s %q\n", titleStyle.Render("Query:"), det.Query)

	candidates := engine.Candidates()
	if len(candidates) == 0 {
		_, _ = fmt.Fprintln(out, dateStyle.Render("No candidates"))
		return
	}

	_, _ = fmt.Fprintln(out)
	for i, c := range candidates {
		line := highlightMatch(c.Label(), det.Query)
		if m, ok := c.(autocomplete.Mention); ok {
			line += " " + idStyle.Render("@"+m.Username)
		}
		_, _ = fmt.Fprintf(out, "%s %s\n", dateStyle.Render(fmt.Sprintf("%2d.", i)), line)
	}
}

func highlightMatch(text, query string) string {
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

func init() {
	rootCmd.AddCommand(completeCmd)
	completeCmd.Flags().IntVarP(&completeCursor, "cursor", "c", -1, "Cursor position in characters (default: end of text)")
	completeCmd.Flags().IntVar(&completePick, "pick", -1, "Commit the candidate at this index and print the new text")
}
