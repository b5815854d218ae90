package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/iksnae/chat-composer/internal"
	"github.com/iksnae/chat-composer/internal/session"
	"github.com/iksnae/chat-composer/internal/stream"
	"github.com/spf13/cobra"
)

var (
	sendSession       string
	regenerateSession string
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send [--session id] <text...>",
	Short: "Send a message and stream the reply",
	Long: `Send a message to a chat session and print the reply as it streams in.

Without --session the message goes to the current session; a new session is
created when there is none.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		out := cmd.OutOrStdout()
		rec := newReconciler(store, out)
		content := strings.Join(args, " ")

		id := sendSession
		if id != "" {
			err = rec.Send(ctx, id, content)
		} else {
			id, err = rec.SendToCurrent(ctx, content)
		}
		if err != nil {
			return fmt.Errorf("send failed: %w", err)
		}

		internal.LogDebug("Reply streamed into session %s", id)
		return nil
	},
}

// regenerateCmd represents the regenerate command
var regenerateCmd = &cobra.Command{
	Use:   "regenerate [--session id]",
	Short: "Replace the last reply with a new one",
	Long:  `Discard the reply to the last message of a session and stream a new one.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		id, err := resolveSessionID(store, regenerateSession)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		if err := newReconciler(store, cmd.OutOrStdout()).Regenerate(ctx, id); err != nil {
			return fmt.Errorf("regenerate failed: %w", err)
		}
		return nil
	},
}

func newReconciler(store *session.Store, out io.Writer) *stream.Reconciler {
	p := &replyPrinter{out: out}
	return stream.NewReconciler(store,
		stream.WithFragmentDelay(cfg.FragmentDelay),
		stream.WithSettleDelay(cfg.SettleDelay),
		stream.WithObserver(p.observe),
	)
}

// replyPrinter turns cumulative fragments into incremental terminal output
type replyPrinter struct {
	out     io.Writer
	printed string
}

func (p *replyPrinter) observe(ev stream.Event) {
	if !ev.Applied {
		return
	}

	delta := ev.Content
	if strings.HasPrefix(ev.Content, p.printed) {
		delta = ev.Content[len(p.printed):]
	} else if p.printed != "" {
		// Not a continuation of what is on screen; start a fresh line
		_, _ = fmt.Fprintln(p.out)
	}
	_, _ = io.WriteString(p.out, delta)
	p.printed = ev.Content

	if ev.Done {
		_, _ = fmt.Fprintln(p.out)
		p.printed = ""
	}
}

func init() {
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(regenerateCmd)
	sendCmd.Flags().StringVarP(&sendSession, "session", "s", "", "Session to send to (default: current session)")
	regenerateCmd.Flags().StringVarP(&regenerateSession, "session", "s", "", "Session to regenerate (default: current session)")
}
