// =============================================================================
// Blind Receiving Highlighter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (highlighter)
//   ├── highlightCmd (highlighter highlight <report>)
//   ├── processCmd   (highlighter process)
//   └── versionCmd   (highlighter version)
//
// CONFIGURATION:
//   The root command owns the global flags (--config, --verbose). Commands
//   that process reports call loadRuntime to read the configuration and
//   build the logger.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/blind-receiver-highlighter/internal/config"
	"github.com/ginjaninja78/blind-receiver-highlighter/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "highlighter",
	Short: "Blind Receiver Highlighter - Flag likely mixed pallets in blind receiving reports",
	Long: `Blind Receiver Highlighter reads a warehouse blind receiving report, finds
the pallet receipts most likely responsible for each quantity discrepancy,
and writes a highlighted copy of the report.

Highlights:
  ***  Likely mixed event occurrence (red)
  **   Likely mixed pallet (orange)
  *    Partial pallet in an overage section (yellow)
  ---  Pallet on an inaccessible location (struck through)

Example Usage:
  highlighter highlight ./BF2.rpt           # Highlight a single report
  highlighter process                       # Highlight every report in the input directory
  highlighter process --config ./my.yaml    # Use a custom configuration file`,

	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. Interrupts cancel the command context so
// batch runs stop between reports.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// loadRuntime loads the main configuration and builds the logger from it.
func loadRuntime() (*config.MainConfig, *zap.Logger, error) {
	mainConfig, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load main config: %w", err)
	}

	logger, err := logging.New(logging.Config{
		Level:   mainConfig.LogLevel,
		Format:  mainConfig.LogFormat,
		LogFile: mainConfig.LogFile,
		Verbose: verbose,
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Debug("configuration loaded",
		zap.String("config", cfgFile),
		zap.String("output_dir", mainConfig.OutputDir),
		zap.Int("case_pack_size", mainConfig.Classifier.CasePackSize),
		zap.Int("prior_window", mainConfig.Classifier.PriorWindow),
	)

	return mainConfig, logger, nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file; a missing file selects the defaults",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}
