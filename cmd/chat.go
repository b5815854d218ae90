package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/chat-composer/internal"
	"github.com/iksnae/chat-composer/internal/lookup"
	"github.com/iksnae/chat-composer/internal/tui"
	"github.com/spf13/cobra"
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the interactive composer",
	Long: `Open the interactive chat composer.

Keys:
  enter        send, or accept the highlighted completion
  up/down      move through completions
  esc          close the completion list
  ctrl+n       new chat
  ctrl+r       regenerate the last reply
  ctrl+d       delete the current chat
  tab          switch to the next chat
  pgup/pgdown  scroll the transcript
  ctrl+c       quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !internal.IsTerminal() {
			return fmt.Errorf("chat needs an interactive terminal (use 'chat-composer send' instead)")
		}

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		// The composer owns the terminal; keep log lines out of it
		if paths, err := internal.DetectDataPaths(); err == nil {
			if err := paths.EnsureBaseDir(); err == nil {
				if f, err := os.OpenFile(paths.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
					internal.SetLogOutput(f)
					defer func() {
						internal.SetLogOutput(os.Stderr)
						_ = f.Close()
					}()
				}
			}
		}

		return tui.Run(cmd.Context(), store, tuiOptions())
	},
}

func tuiOptions() tui.Options {
	return tui.Options{
		Mentions:       newDirectory(),
		Suggestions:    newCatalog(),
		MentionLimit:   cfg.MentionLimit,
		DropdownHeight: cfg.DropdownHeight,
		FragmentDelay:  cfg.FragmentDelay,
		SettleDelay:    cfg.SettleDelay,
	}
}

func newDirectory() *lookup.Directory {
	return lookup.NewDirectory(lookup.WithMentionLatency(cfg.MentionLatency))
}

func newCatalog() *lookup.Catalog {
	return lookup.NewCatalog(
		lookup.WithSuggestionLatency(cfg.SuggestionLatency),
		lookup.WithSuggestionLimit(cfg.SuggestionLimit),
	)
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
