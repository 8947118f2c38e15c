// =============================================================================
// Blind Receiving Highlighter - Process Command
// =============================================================================
//
// This file defines the 'process' command, which highlights every report in
// the input directory.
//
// COMMAND USAGE:
//   highlighter process [flags]
//
// FLAGS:
//   --dry-run : List the reports that would be processed and exit
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Discover reports in the input directory
//   3. Give every report a distinct output name
//   4. Highlight the reports concurrently (at most max_concurrency at once);
//      every report gets its own classifier state
//   5. Write the processing summary to the output directory
//
// A failed report does not stop the others; it is listed in the summary and
// left in the input directory.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/blind-receiver-highlighter/internal/config"
	"github.com/ginjaninja78/blind-receiver-highlighter/internal/highlighter"
	"github.com/ginjaninja78/blind-receiver-highlighter/pkg/utils"
)

// dryRun lists the discovered reports without processing them.
var dryRun bool

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Highlight every report in the input directory",
	Long: `The process command scans the input directory for reports and highlights
each of them. Reports are processed concurrently and independently; errors in
one report do not affect the others.

On success:
  - The text copy and highlighted documents are placed in the output directory
  - The report is moved to the input archive when archive_processed is set

On error:
  - The report remains in the input directory
  - The failure is recorded in the processing summary`,

	RunE: func(cmd *cobra.Command, args []string) error {
		mainConfig, logger, err := loadRuntime()
		if err != nil {
			return err
		}
		defer logger.Sync()

		_, err = runProcess(cmd.Context(), mainConfig, logger, cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"List the reports that would be processed without processing them",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess highlights every report in the input directory and writes the
// processing summary.
//
// RETURNS:
//   - The summary of the run.
//   - An error if the reports cannot be discovered or the summary cannot be
//     written. Failed reports are not errors.
func runProcess(ctx context.Context, mainConfig *config.MainConfig, logger *zap.Logger, out io.Writer) (*utils.ProcessingSummary, error) {
	summary := &utils.ProcessingSummary{
		RunID:     uuid.New().String(),
		StartTime: time.Now(),
	}
	logger = logger.With(zap.String("run_id", summary.RunID))

	// =========================================================================
	// STEP 1: DISCOVER REPORTS
	// =========================================================================

	files := utils.NewFileManager(mainConfig.InputDir, mainConfig.OutputDir, mainConfig.InputArchiveDir)

	reports, err := files.DiscoverReports(mainConfig.Intake.Extensions)
	if err != nil {
		return nil, fmt.Errorf("failed to discover reports: %w", err)
	}

	if len(reports) == 0 {
		fmt.Fprintln(out, "No reports found in the input directory.")
		return summary, nil
	}

	logger.Info("discovered reports", zap.Int("count", len(reports)), zap.String("input_dir", mainConfig.InputDir))

	if dryRun {
		for _, report := range reports {
			fmt.Fprintln(out, report)
		}
		return summary, nil
	}

	if err := files.EnsureDirectories(mainConfig.ArchiveProcessed); err != nil {
		return nil, err
	}

	// =========================================================================
	// STEP 2: PROCESS REPORTS CONCURRENTLY
	// =========================================================================

	// Names are fixed up front so reports sharing a base name (BF2.rpt and
	// BF2.txt) never write to the same documents.
	outputNames := utils.PlanOutputNames(mainConfig.Render.OutputNameFormat, reports)

	results := make([]highlighter.Result, len(reports))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(mainConfig.MaxConcurrency)

	for i, report := range reports {
		i, report := i, report
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = highlighter.Result{FilePath: report, Error: err}
				return nil
			}
			results[i] = highlighter.New(report, mainConfig, logger).
				WithOutputName(outputNames[report]).
				Run(gctx)
			return nil
		})
	}

	// Every goroutine records its failure in results.
	_ = g.Wait()

	// =========================================================================
	// STEP 3: COLLECT RESULTS AND WRITE SUMMARY
	// =========================================================================

	for _, result := range results {
		if !result.Success {
			summary.AddFailure(result.FilePath, result.Error)
			fmt.Fprintf(out, "  ✗ %s: %v\n", filepath.Base(result.FilePath), result.Error)
			continue
		}

		summary.Add(utils.ProcessedFileInfo{
			InputFile:   result.FilePath,
			OutputFiles: result.OutputFiles,
			ArchivePath: result.ArchivePath,
			Lines:       result.Stats.LinesRead,
			Red:         result.Stats.RedRows,
			Orange:      result.Stats.OrangeRows,
			Yellow:      result.Stats.YellowRows,
			Crossed:     result.Stats.CrossedRows,
			ProcessTime: result.Stats.ProcessingTime,
		})
		fmt.Fprintf(out, "  ✓ %s -> %s\n", filepath.Base(result.FilePath), result.OutputFiles[len(result.OutputFiles)-1])
	}

	summary.EndTime = time.Now()

	summaryPath, err := utils.WriteSummaryLog(*summary, mainConfig.OutputDir)
	if err != nil {
		return summary, err
	}

	fmt.Fprintln(out, "\n=== Processing Complete ===")
	fmt.Fprintf(out, "Total reports:   %d\n", summary.TotalFiles)
	fmt.Fprintf(out, "Successful:      %d\n", summary.SuccessfulFiles)
	fmt.Fprintf(out, "Errors:          %d\n", summary.FailedFiles)
	fmt.Fprintf(out, "Time elapsed:    %s\n", summary.EndTime.Sub(summary.StartTime))
	fmt.Fprintf(out, "Summary:         %s\n", summaryPath)

	return summary, nil
}
