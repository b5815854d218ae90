package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/chat-composer/internal"
	"github.com/iksnae/chat-composer/internal/session"
	"github.com/spf13/cobra"
)

var (
	healthcheckDetails bool
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that chat-composer can read and write its session data",
	Long: `Check the health of chat-composer by verifying:
  • Data directory detection
  • Config file parsing
  • Session database access
  • Session collection decoding`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHealthcheck(cmd.OutOrStdout())
	},
}

func runHealthcheck(out io.Writer) error {
	line := func(a ...any) { _, _ = fmt.Fprintln(out, a...) }
	linef := func(format string, a ...any) { _, _ = fmt.Fprintf(out, format, a...) }

	line(sectionStyle.Render("🔍 Chat Composer Health Check"))
	line()

	// Step 1: Detect data paths
	line(infoStyle.Render("Step 1: Detecting data directory..."))
	paths, err := internal.DetectDataPaths()
	if err != nil {
		line(errorStyle.Render("❌ Failed to detect data directory:"), err)
		return fmt.Errorf("health check failed: %w", err)
	}
	line(successStyle.Render("✅ Data directory detected"))
	if healthcheckDetails {
		linef("   Base dir: %s\n", paths.BaseDir)
		linef("   Log file: %s\n", paths.LogFile)
	}
	line()

	// Step 2: Config
	line(infoStyle.Render("Step 2: Checking configuration..."))
	cfgFile := configPath
	if cfgFile == "" {
		cfgFile = paths.Config
	}
	if _, err := internal.LoadConfig(cfgFile); err != nil {
		line(errorStyle.Render("❌ Config file is invalid:"), err)
		return fmt.Errorf("health check failed: %w", err)
	}
	line(successStyle.Render("✅ Configuration loaded"))
	if healthcheckDetails {
		linef("   Config: %s\n", cfgFile)
		linef("   Fragment delay: %s, settle delay: %s\n", cfg.FragmentDelay, cfg.SettleDelay)
	}
	line()

	// Step 3: Open the database
	line(infoStyle.Render("Step 3: Opening session storage..."))
	var durable internal.Durable
	if ephemeral {
		line(warningStyle.Render("⚠️  Ephemeral mode: sessions are not persisted"))
		durable = internal.NewMemoryDurable(nil)
	} else {
		dbPath, err := resolveDatabasePath()
		if err != nil {
			line(errorStyle.Render("❌ Failed to resolve database path:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		store, err := internal.OpenDurable(cfg.StorageBackend, dbPath)
		if err != nil {
			line(errorStyle.Render("❌ Failed to open session database:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		defer func() { _ = store.Close() }()
		durable = store
		line(successStyle.Render("✅ Session database opened"))
		if healthcheckDetails {
			linef("   Backend: %s\n", cfg.StorageBackend)
			linef("   Database: %s\n", dbPath)
			if kv, ok := store.(*internal.KVStore); ok {
				if entries, err := kv.Entries(); err == nil {
					for _, e := range entries {
						linef("   Record %s (%d bytes)\n", e.Key, len(e.Value))
					}
				}
			}
		}
	}
	line()

	// Step 4: Decode the stored collection
	line(infoStyle.Render("Step 4: Loading session data..."))
	data, found, err := durable.Load()
	if err != nil {
		line(errorStyle.Render("❌ Failed to read session data:"), err)
		return fmt.Errorf("health check failed: %w", err)
	}

	var sessions []internal.Session
	if found {
		sessions, err = session.Decode(data)
		if err != nil {
			line(errorStyle.Render("❌ Stored sessions could not be decoded:"), err)
			line("   The composer will start with an empty history.")
			return fmt.Errorf("health check failed: %w", err)
		}
	}

	if len(sessions) > 0 {
		line(successStyle.Render(fmt.Sprintf("✅ Found %d session(s)", len(sessions))))
		if healthcheckDetails {
			for i, s := range sessions {
				if i == 5 {
					linef("   ... and %d more\n", len(sessions)-5)
					break
				}
				linef("   [%d] %s (ID: %s, %d message(s))\n", i+1, s.Title, s.ID, len(s.Messages))
			}
		}
	} else {
		line(warningStyle.Render("⚠️  No sessions stored yet"))
	}
	line()

	// Summary
	line(sectionStyle.Render("📊 Summary"))
	line()
	line(successStyle.Render("✅ Health check passed!"))
	line(successStyle.Render("   • Storage: Available"))
	line(successStyle.Render(fmt.Sprintf("   • Sessions: %d found", len(sessions))))
	return nil
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVarP(&healthcheckDetails, "details", "d", false, "Show detailed information")
}
