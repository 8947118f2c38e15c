// =============================================================================
// Blind Receiving Highlighter - Highlight Command
// =============================================================================
//
// This file defines the 'highlight' command, which processes one report.
//
// COMMAND USAGE:
//   highlighter highlight <report> [flags]
//
// OUTPUT (in the configured output directory):
//   <name>_orig.txt           The decoded report text
//   <name>_highlighted.pdf    The highlighted report
//   <name>_highlighted.xlsx   The highlighted workbook (render.workbook)
//
// The command exits non-zero when the report cannot be processed.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/blind-receiver-highlighter/internal/highlighter"
)

var highlightCmd = &cobra.Command{
	Use:   "highlight <report>",
	Short: "Highlight a single blind receiving report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mainConfig, logger, err := loadRuntime()
		if err != nil {
			return err
		}
		defer logger.Sync()

		result := highlighter.New(args[0], mainConfig, logger).Run(cmd.Context())
		if !result.Success {
			return result.Error
		}

		out := cmd.OutOrStdout()
		for _, path := range result.OutputFiles {
			fmt.Fprintln(out, path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(highlightCmd)
}
