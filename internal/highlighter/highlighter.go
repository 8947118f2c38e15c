// =============================================================================
// Blind Receiving Highlighter - Pipeline Module
// =============================================================================
//
// This module orchestrates the highlighting pipeline for a single report,
// from intake to the rendered documents.
//
// PIPELINE:
//   1. Read and decode the report
//   2. Write the intermediate text copy
//   3. Index sections and classify every mixed event
//   4. Annotate the lines with priorities and strike-through
//   5. Write the highlighted PDF (and the workbook, when enabled)
//   6. Archive the report, when enabled
//
// CONCURRENCY:
//   A Highlighter owns all state for its report. Several may run at once on
//   different reports.
//
// =============================================================================

package highlighter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ginjaninja78/blind-receiver-highlighter/internal/config"
	"github.com/ginjaninja78/blind-receiver-highlighter/internal/receiving"
	"github.com/ginjaninja78/blind-receiver-highlighter/internal/render"
	"github.com/ginjaninja78/blind-receiver-highlighter/internal/rptparser"
	"github.com/ginjaninja78/blind-receiver-highlighter/pkg/utils"
)

// Console messages for the rows of the last classification batch.
const (
	msgHigh   = "[RED] Likely Mixed Event Occurrence"
	msgMedium = "[ORANGE] Likely Mixed Pallet"
	msgLow    = "[YELLOW] Partial Pallet in Positive Section"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single report.
type Result struct {
	// FilePath is the path to the report that was processed.
	FilePath string

	// OutputFiles lists the documents written, in the order written: the
	// text copy, the PDF and, when enabled, the workbook.
	OutputFiles []string

	// ArchivePath is where the report was moved to. Empty when archiving is
	// disabled or failed.
	ArchivePath string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats

	// Last is the final classification batch.
	Last receiving.Classification
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// LinesRead is the number of report lines.
	LinesRead int

	// ShortageRows, OverageRows and ExactRows count the quantity rows per
	// section kind.
	ShortageRows int
	OverageRows  int
	ExactRows    int

	// Batches is the number of classifier runs.
	Batches int

	RedRows     int
	OrangeRows  int
	YellowRows  int
	CrossedRows int

	// ProcessingTime is the time taken to process the report.
	ProcessingTime time.Duration
}

// =============================================================================
// HIGHLIGHTER STRUCTURE
// =============================================================================

// Highlighter processes a single report.
type Highlighter struct {
	reportPath string
	config     *config.MainConfig
	files      *utils.FileManager
	logger     *zap.Logger

	// outputName overrides the base name derived from the output name
	// format when set.
	outputName string
}

// New creates a new Highlighter instance.
//
// PARAMETERS:
//   - reportPath: The path to the report.
//   - cfg: The main application configuration.
//   - logger: The logger. nil disables logging.
//
// RETURNS:
//   - A new Highlighter instance.
func New(reportPath string, cfg *config.MainConfig, logger *zap.Logger) *Highlighter {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Highlighter{
		reportPath: reportPath,
		config:     cfg,
		files:      utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir),
		logger:     logger.With(zap.String("report", reportPath)),
	}
}

// WithOutputName sets the base name of the output documents, replacing the
// one derived from render.output_name_format. Batch runs use it to keep
// reports with the same file name apart.
func (h *Highlighter) WithOutputName(name string) *Highlighter {
	h.outputName = name
	return h
}

// outputPaths returns the documents this run writes.
func (h *Highlighter) outputPaths() utils.OutputPaths {
	if h.outputName != "" {
		return h.files.OutputPathsFor(h.outputName)
	}
	return h.files.OutputPaths(h.config.Render.OutputNameFormat, h.reportPath)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the pipeline for the report. ctx is checked between stages.
//
// RETURNS:
//   - A Result struct containing the outcome of the processing.
func (h *Highlighter) Run(ctx context.Context) Result {
	startTime := time.Now()
	result := Result{FilePath: h.reportPath}

	fail := func(err error) Result {
		result.Error = err
		result.Stats.ProcessingTime = time.Since(startTime)
		h.logger.Error("processing failed", zap.Error(err))
		return result
	}

	h.logger.Info("processing report")

	// =========================================================================
	// STEP 1: READ REPORT
	// =========================================================================

	report, err := rptparser.Parse(h.reportPath, h.config.Intake)
	if err != nil {
		return fail(err)
	}
	result.Stats.LinesRead = len(report.Lines)
	h.logger.Debug("read report", zap.Int("lines", len(report.Lines)), zap.String("encoding", report.Encoding))

	// =========================================================================
	// STEP 2: WRITE INTERMEDIATE TEXT COPY
	// =========================================================================

	if err := h.files.EnsureDirectories(false); err != nil {
		return fail(err)
	}
	paths := h.outputPaths()

	if err := rptparser.WriteText(paths.Text, report.Lines); err != nil {
		return fail(err)
	}
	result.OutputFiles = append(result.OutputFiles, paths.Text)

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	// =========================================================================
	// STEP 3: CLASSIFY
	// =========================================================================

	engine := receiving.NewEngine(report.Lines, h.config.ClassifierOptions(), h.logger)
	analysis := engine.Analyze()

	result.Last = analysis.Last
	result.Stats.ShortageRows = len(analysis.Sections.ShortageIndices)
	result.Stats.OverageRows = len(analysis.Sections.OverageIndices)
	result.Stats.ExactRows = len(analysis.Sections.ExactIndices)
	result.Stats.Batches = analysis.Batches
	result.Stats.RedRows = analysis.Highlights.Red.Len()
	result.Stats.OrangeRows = analysis.Highlights.Orange.Len()
	result.Stats.YellowRows = analysis.Highlights.Yellow.Len()
	result.Stats.CrossedRows = analysis.Highlights.Crossed.Len()

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	// =========================================================================
	// STEP 4-5: ANNOTATE AND RENDER
	// =========================================================================

	opts := render.Options{
		IndentWidth:  h.config.Render.Indent(),
		LinesPerPage: h.config.Render.LinesPerPage,
	}
	annotated := render.Annotate(analysis.Lines, analysis.Highlights, opts)

	if err := render.WritePDF(paths.PDF, annotated, opts); err != nil {
		return fail(err)
	}
	result.OutputFiles = append(result.OutputFiles, paths.PDF)
	h.logger.Info("wrote highlighted report", zap.String("path", paths.PDF))

	if h.config.Render.Workbook {
		if err := render.WriteWorkbook(paths.Workbook, annotated, render.NewSummary(analysis), opts); err != nil {
			return fail(err)
		}
		result.OutputFiles = append(result.OutputFiles, paths.Workbook)
		h.logger.Info("wrote highlighted workbook", zap.String("path", paths.Workbook))
	}

	h.logBatch(analysis.Last)

	// =========================================================================
	// STEP 6: ARCHIVE REPORT
	// =========================================================================

	if h.config.ArchiveProcessed {
		archived, err := h.files.ArchiveInputFile(h.reportPath)
		if err != nil {
			// The outputs exist; a failed move does not fail the report.
			h.logger.Warn("failed to archive report", zap.Error(err))
		} else {
			result.ArchivePath = archived
		}
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	h.logger.Info("report processed",
		zap.Int("lines", result.Stats.LinesRead),
		zap.Int("red", result.Stats.RedRows),
		zap.Int("orange", result.Stats.OrangeRows),
		zap.Int("yellow", result.Stats.YellowRows),
		zap.Int("crossed", result.Stats.CrossedRows),
		zap.Duration("elapsed", result.Stats.ProcessingTime),
	)

	return result
}

// logBatch prints every row of a classification batch with its priority
// message. Line numbers are 1-based.
func (h *Highlighter) logBatch(c receiving.Classification) {
	groups := []struct {
		msg  string
		rows []receiving.Line
	}{
		{msgHigh, c.High},
		{msgMedium, c.Medium},
		{msgLow, c.Low},
	}

	for _, g := range groups {
		for _, l := range g.rows {
			h.logger.Info(g.msg,
				zap.Int("line", l.Index+1),
				zap.String("row", strings.TrimSpace(l.Text)),
			)
		}
	}
}

// String summarizes the result for console output.
func (r Result) String() string {
	if !r.Success {
		return fmt.Sprintf("%s: failed: %v", r.FilePath, r.Error)
	}
	return fmt.Sprintf("%s: red=%d orange=%d yellow=%d crossed=%d -> %s",
		r.FilePath, r.Stats.RedRows, r.Stats.OrangeRows, r.Stats.YellowRows, r.Stats.CrossedRows,
		strings.Join(r.OutputFiles, ", "))
}
