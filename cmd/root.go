package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/chat-composer/internal"
	"github.com/iksnae/chat-composer/internal/session"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	configPath  string
	storagePath string
	ephemeral   bool
	version     string = "dev"
	commit      string = "unknown"
	date        string = "unknown"

	// cfg is loaded once per invocation before any subcommand runs
	cfg = internal.DefaultConfig()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chat-composer",
	Short: "Chat sessions with streamed replies and @-mention autocomplete",
	Long: `A terminal chat composer that keeps a persistent history of chat sessions.

Replies are streamed into the session as they are produced, and the composer
offers @-mention and phrase completions while you type.

Features:
  • Interactive composer with a session sidebar
  • Streamed replies with regenerate
  • @-mention and word completion with keyboard navigation
  • Export in multiple formats (JSONL, Markdown, YAML, JSON)

Quick Start:
  chat-composer chat                      # Open the interactive composer
  chat-composer send "Explain recursion"  # Send a message from the shell
  chat-composer list                      # List all sessions
  chat-composer export --format md        # Export as Markdown`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		internal.PrintError(fmt.Sprintf("Error: %v", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the YAML config file (default: <data dir>/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&storagePath, "storage", "", "Path to the session database")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep sessions in memory only")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

func loadConfig() error {
	path := configPath
	if path == "" {
		if paths, err := internal.DetectDataPaths(); err == nil {
			path = paths.Config
		}
	}

	loaded, err := internal.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg = loaded

	internal.SetLogLevel(internal.ParseLogLevel(cfg.LogLevel))
	if verbose {
		internal.SetVerbose(true)
	}
	return nil
}

// resolveDatabasePath picks the database from --storage, the config or the data dir
func resolveDatabasePath() (string, error) {
	if storagePath != "" {
		return storagePath, nil
	}
	if cfg.StoragePath != "" {
		return cfg.StoragePath, nil
	}
	paths, err := internal.DetectDataPaths()
	if err != nil {
		return "", fmt.Errorf("failed to detect data directory: %w", err)
	}
	return paths.StorageFile(cfg.StorageBackend), nil
}

// openStore opens the session store. The returned func releases the database.
func openStore() (*session.Store, func(), error) {
	if ephemeral {
		internal.LogDebug("Using in-memory session storage")
		return session.NewStore(internal.NewMemoryDurable(nil)), func() {}, nil
	}

	path, err := resolveDatabasePath()
	if err != nil {
		return nil, nil, err
	}
	durable, err := internal.OpenDurable(cfg.StorageBackend, path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open session storage: %w", err)
	}
	internal.LogDebug("Using %s session storage at %s", cfg.StorageBackend, path)

	closeFn := func() {
		if err := durable.Close(); err != nil {
			internal.LogWarn("Failed to close session storage: %v", err)
		}
	}
	return session.NewStore(durable), closeFn, nil
}

// resolveSessionID returns explicit when set, otherwise the current session
func resolveSessionID(store *session.Store, explicit string) (string, error) {
	if explicit != "" {
		if _, ok := store.Session(explicit); !ok {
			return "", fmt.Errorf("session %s: %w", explicit, internal.ErrSessionNotFound)
		}
		return explicit, nil
	}
	id := store.CurrentSessionID()
	if id == "" {
		return "", fmt.Errorf("no current session: %w", internal.ErrSessionNotFound)
	}
	return id, nil
}
