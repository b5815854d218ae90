package cmd

import (
	"fmt"

	"github.com/iksnae/chat-composer/internal"
	"github.com/spf13/cobra"
)

var clearYes bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a chat session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		id := args[0]
		s, ok := store.Session(id)
		if !ok {
			return fmt.Errorf("session %s: %w", id, internal.ErrSessionNotFound)
		}
		store.DeleteSession(id)

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Deleted %q (%s)", s.Title, id)))
		if current := store.CurrentSessionID(); current != "" {
			_, _ = fmt.Fprintln(out, idStyle.Render("Current session is now "+current))
		}
		return nil
	},
}

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all chat sessions",
	Long:  `Delete every stored chat session. Requires --yes.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			return fmt.Errorf("refusing to delete all sessions without --yes")
		}

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		n := store.Len()
		if err := store.ClearAll(); err != nil {
			return fmt.Errorf("failed to clear sessions: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("✅ Cleared %d session(s)", n)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Confirm deleting every session")
}
