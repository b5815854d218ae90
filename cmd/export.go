package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/iksnae/chat-composer/internal"
	"github.com/iksnae/chat-composer/internal/export"
	"github.com/spf13/cobra"
)

var (
	format        string
	outputDir     string
	exportSession string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export sessions to file",
	Long: `Export chat sessions to one of: ` + strings.Join(export.Formats(), ", ") + `.

Every session is exported unless --session is given. Files are named
<session-id>.<ext>. Use 'chat-composer list' to see available session IDs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		sessions := store.Sessions()
		if exportSession != "" {
			s, ok := store.Session(exportSession)
			if !ok {
				return fmt.Errorf("session %s: %w (use 'chat-composer list' to see available sessions)", exportSession, internal.ErrSessionNotFound)
			}
			sessions = []internal.Session{s}
		}
		if len(sessions) == 0 {
			internal.PrintInfo("No sessions to export")
			return nil
		}

		exported := 0
		steps := []internal.ProgressStep{
			{
				Message: "Preparing " + outputDir,
				Fn: func() error {
					if err := os.MkdirAll(outputDir, 0755); err != nil {
						return fmt.Errorf("failed to create output directory: %w", err)
					}
					return nil
				},
			},
			{
				Message: fmt.Sprintf("Exporting %d session(s) as %s", len(sessions), exporter.Extension()),
				Fn: func() error {
					for i := range sessions {
						path, err := export.WriteFile(exporter, &sessions[i], outputDir)
						if err != nil {
							internal.LogError("Failed to export session %s: %v", sessions[i].ID, err)
							continue
						}
						internal.LogDebug("Wrote %s", path)
						exported++
					}
					return nil
				},
			},
		}
		if err := internal.ShowProgressWithSteps(cmd.Context(), steps); err != nil {
			return err
		}
		if exported == 0 {
			return fmt.Errorf("no sessions were exported to %s", outputDir)
		}
		if failed := len(sessions) - exported; failed > 0 {
			internal.PrintWarning(fmt.Sprintf("%d session(s) could not be exported", failed))
		}

		internal.PrintSuccess(fmt.Sprintf("Export complete: %d session(s) exported to %s", exported, outputDir))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "jsonl", "Export format ("+strings.Join(export.Formats(), ", ")+")")
	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "./exports", "Output directory")
	exportCmd.Flags().StringVar(&exportSession, "session", "", "Export a specific session by ID")
}
