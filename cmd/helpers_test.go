package cmd

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/iksnae/chat-composer/internal"
	"github.com/iksnae/chat-composer/internal/session"
	"github.com/iksnae/chat-composer/testutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const fastConfig = `fragment_delay: 0s
settle_delay: 0s
mention_latency: 0s
suggestion_latency: 0s
mention_limit: 20
suggestion_limit: 10
dropdown_height: 8
`

// setupDataDir points the commands at a fresh data directory with a config
// that removes every artificial delay.
func setupDataDir(t *testing.T) internal.DataPaths {
	t.Helper()
	testutil.CreateDataDir(t)

	paths, err := internal.DetectDataPaths()
	require.NoError(t, err)
	require.NoError(t, paths.EnsureBaseDir())
	require.NoError(t, os.WriteFile(paths.Config, []byte(fastConfig), 0644))
	return paths
}

// seedSessions writes sessions through a real store and returns their ids
func seedSessions(t *testing.T, paths internal.DataPaths, exchanges ...[]internal.Message) []string {
	t.Helper()
	kv, err := internal.OpenKVStore(paths.Database)
	require.NoError(t, err)
	defer func() { _ = kv.Close() }()

	store := session.NewStore(kv)
	ids := make([]string, 0, len(exchanges))
	for _, msgs := range exchanges {
		id := store.CreateSession()
		for _, m := range msgs {
			store.AddMessage(id, m)
		}
		ids = append(ids, id)
	}
	return ids
}

// resetFlags restores every flag to its default so runs do not leak state
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	cfg = internal.DefaultConfig()
	t.Cleanup(func() { internal.SetVerbose(false) })

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})

	err := rootCmd.Execute()
	return out.String(), err
}

func userMsg(content string) internal.Message {
	return internal.NewUserMessage(content, time.Now())
}

func assistantMsg(content string) internal.Message {
	return internal.Message{
		ID:        internal.NewMessageID(internal.RoleAssistant),
		Role:      internal.RoleAssistant,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// openTestStore reopens the data directory's database after a command ran
func openTestStore(t *testing.T, paths internal.DataPaths) *session.Store {
	t.Helper()
	kv, err := internal.OpenKVStore(paths.Database)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return session.NewStore(kv)
}
