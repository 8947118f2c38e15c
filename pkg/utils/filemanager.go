// =============================================================================
// Blind Receiving Highlighter - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the highlighter,
// including:
//   - Report discovery in the input directory
//   - Output file naming
//   - Report archival after successful processing
//   - The batch processing summary log
//
// ARCHIVAL STRATEGY:
//   - Reports are moved to input_archive after successful processing, and
//     only when archive_processed is enabled
//   - Failed reports remain in their original location
//   - Output documents stay in the output directory
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Suffixes appended to the output base name.
const (
	TextSuffix     = "_orig.txt"
	PDFSuffix      = "_highlighted.pdf"
	WorkbookSuffix = "_highlighted.xlsx"

	summaryPrefix = "processing_summary_"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the highlighter.
type FileManager struct {
	// InputDir is the directory scanned for reports.
	InputDir string

	// OutputDir is the directory where output documents are placed.
	OutputDir string

	// InputArchiveDir is the directory for archived reports.
	InputArchiveDir string

	// UseTimestampSubdirs creates date-based subdirectories in the archive.
	// Example: input_archive/2024/01/15/BF2.rpt
	UseTimestampSubdirs bool
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(inputDir, outputDir, inputArchiveDir string) *FileManager {
	return &FileManager{
		InputDir:        inputDir,
		OutputDir:       outputDir,
		InputArchiveDir: inputArchiveDir,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates the output directory and, when archiving, the
// archive directory.
//
// RETURNS:
//   - An error if any directory cannot be created.
func (fm *FileManager) EnsureDirectories(archive bool) error {
	dirs := []string{fm.OutputDir}
	if archive {
		dirs = append(dirs, fm.InputArchiveDir)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// =============================================================================
// REPORT DISCOVERY
// =============================================================================

// DiscoverReports lists the files in the input directory whose extension is
// one of extensions, compared case-insensitively. Subdirectories are not
// scanned. When the input and output directories are the same, the text
// copies and summaries written by earlier runs are skipped. The result is
// sorted by path.
//
// PARAMETERS:
//   - extensions: The accepted extensions, with the leading dot.
//
// RETURNS:
//   - A slice of file paths.
//   - An error if the directory cannot be read.
func (fm *FileManager) DiscoverReports(extensions []string) ([]string, error) {
	entries, err := os.ReadDir(fm.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	accepted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		accepted[strings.ToLower(ext)] = true
	}

	sharedDir := sameDir(fm.InputDir, fm.OutputDir)

	var result []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if sharedDir && isGeneratedOutput(entry.Name()) {
			continue
		}
		if accepted[strings.ToLower(filepath.Ext(entry.Name()))] {
			result = append(result, filepath.Join(fm.InputDir, entry.Name()))
		}
	}

	slices.Sort(result)
	return result, nil
}

// isGeneratedOutput reports whether name is a file this tool writes to the
// output directory.
func isGeneratedOutput(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, TextSuffix) ||
		strings.HasSuffix(lower, PDFSuffix) ||
		strings.HasSuffix(lower, WorkbookSuffix) ||
		strings.HasPrefix(lower, summaryPrefix)
}

// sameDir reports whether a and b name the same directory.
func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// =============================================================================
// REPORT ARCHIVAL
// =============================================================================

// ArchiveInputFile moves a processed report to the archive directory.
//
// PARAMETERS:
//   - filePath: The path to the report to archive.
//
// RETURNS:
//   - The path to the archived file.
//   - An error if archival fails.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	archivePath := fm.getArchivePath(filePath)

	if err := os.MkdirAll(filepath.Dir(archivePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := os.Rename(filePath, archivePath); err != nil {
		// Rename fails across devices; fall back to copy and delete.
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

// getArchivePath constructs the archive path for a file.
func (fm *FileManager) getArchivePath(filePath string) string {
	fileName := filepath.Base(filePath)

	if fm.UseTimestampSubdirs {
		now := time.Now()
		return filepath.Join(
			fm.InputArchiveDir,
			fmt.Sprintf("%d", now.Year()),
			fmt.Sprintf("%02d", now.Month()),
			fmt.Sprintf("%02d", now.Day()),
			fileName,
		)
	}

	return filepath.Join(fm.InputArchiveDir, fileName)
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// OutputPaths holds the documents produced for one report.
type OutputPaths struct {
	Text     string
	PDF      string
	Workbook string
}

// OutputPaths returns the output documents for a report, named by format
// (see GenerateOutputBaseName) inside the output directory.
func (fm *FileManager) OutputPaths(format, reportPath string) OutputPaths {
	return fm.OutputPathsFor(GenerateOutputBaseName(format, reportPath))
}

// OutputPathsFor returns the output documents for an already generated base
// name.
func (fm *FileManager) OutputPathsFor(baseName string) OutputPaths {
	base := filepath.Join(fm.OutputDir, baseName)
	return OutputPaths{
		Text:     base + TextSuffix,
		PDF:      base + PDFSuffix,
		Workbook: base + WorkbookSuffix,
	}
}

// GenerateOutputBaseName generates the base name shared by a report's
// output documents.
//
// PARAMETERS:
//   - format: The format string for the name.
//     Placeholders:
//     {name}      - Report file name without extension
//     {uuid}      - A random UUID
//     {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//     {date}      - Current date (YYYYMMDD)
//     {time}      - Current time (HHMMSS)
//     An empty format is treated as "{name}".
//   - reportPath: The path to the report.
//
// RETURNS:
//   - The generated name, without directory or suffix.
//
// EXAMPLE:
//
//	format: "{name}_{date}"
//	reportPath: "/data/in/BF2.rpt"
//	output: "BF2_20240115"
func GenerateOutputBaseName(format, reportPath string) string {
	if format == "" {
		format = "{name}"
	}

	now := time.Now()
	name := strings.TrimSuffix(filepath.Base(reportPath), filepath.Ext(reportPath))

	replacer := strings.NewReplacer(
		"{name}", name,
		"{uuid}", uuid.New().String(),
		"{timestamp}", now.Format("20060102_150405"),
		"{date}", now.Format("20060102"),
		"{time}", now.Format("150405"),
	)
	return replacer.Replace(format)
}

// PlanOutputNames assigns every report a distinct output base name.
//
// Reports whose names from format collide (BF2.rpt and BF2.txt both give
// "BF2") get their extension appended ("BF2_rpt", "BF2_txt"). A name that
// still collides gets a short random suffix.
//
// PARAMETERS:
//   - format: The output name format (see GenerateOutputBaseName).
//   - reports: The report paths of one run.
//
// RETURNS:
//   - The base name for each report path.
func PlanOutputNames(format string, reports []string) map[string]string {
	bases := make(map[string]string, len(reports))
	counts := make(map[string]int, len(reports))
	for _, report := range reports {
		base := GenerateOutputBaseName(format, report)
		bases[report] = base
		counts[strings.ToLower(base)]++
	}

	names := make(map[string]string, len(reports))
	used := make(map[string]bool, len(reports))
	for _, report := range reports {
		name := bases[report]
		if counts[strings.ToLower(name)] > 1 {
			if ext := strings.TrimPrefix(filepath.Ext(report), "."); ext != "" {
				name += "_" + ext
			}
		}
		for used[strings.ToLower(name)] {
			name = bases[report] + "_" + uuid.New().String()[:8]
		}
		used[strings.ToLower(name)] = true
		names[report] = name
	}
	return names
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary contains summary information about a processing run.
type ProcessingSummary struct {
	RunID           string
	StartTime       time.Time
	EndTime         time.Time
	TotalFiles      int
	SuccessfulFiles int
	FailedFiles     int
	TotalLines      int
	TotalRed        int
	TotalOrange     int
	TotalYellow     int
	TotalCrossed    int
	ProcessedFiles  []ProcessedFileInfo
	FailedFilesList []FailedFileInfo
}

// ProcessedFileInfo contains information about a successfully processed report.
type ProcessedFileInfo struct {
	InputFile   string
	OutputFiles []string
	ArchivePath string
	Lines       int
	Red         int
	Orange      int
	Yellow      int
	Crossed     int
	ProcessTime time.Duration
}

// FailedFileInfo contains information about a failed report.
type FailedFileInfo struct {
	InputFile    string
	ErrorMessage string
}

// Add records one report outcome and updates the totals.
func (s *ProcessingSummary) Add(info ProcessedFileInfo) {
	s.TotalFiles++
	s.SuccessfulFiles++
	s.TotalLines += info.Lines
	s.TotalRed += info.Red
	s.TotalOrange += info.Orange
	s.TotalYellow += info.Yellow
	s.TotalCrossed += info.Crossed
	s.ProcessedFiles = append(s.ProcessedFiles, info)
}

// AddFailure records a failed report.
func (s *ProcessingSummary) AddFailure(inputFile string, err error) {
	s.TotalFiles++
	s.FailedFiles++
	s.FailedFilesList = append(s.FailedFilesList, FailedFileInfo{
		InputFile:    inputFile,
		ErrorMessage: err.Error(),
	})
}

// WriteSummaryLog writes a processing summary to a log file.
//
// PARAMETERS:
//   - summary: The processing summary.
//   - outputDir: The directory to write the summary file.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary ProcessingSummary, outputDir string) (string, error) {
	timestamp := summary.StartTime.Format("20060102_150405")
	summaryPath := filepath.Join(outputDir, fmt.Sprintf("%s%s.txt", summaryPrefix, timestamp))

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	duration := summary.EndTime.Sub(summary.StartTime)
	fmt.Fprintf(writer, "Blind Receiving Highlighter - Processing Summary\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Run ID:         %s\n"+
		"  Start Time:     %s\n"+
		"  End Time:       %s\n"+
		"  Duration:       %s\n\n"+
		"Statistics:\n"+
		"  Total Files:    %d\n"+
		"  Successful:     %d\n"+
		"  Failed:         %d\n"+
		"  Total Lines:    %d\n"+
		"  Red Rows:       %d\n"+
		"  Orange Rows:    %d\n"+
		"  Yellow Rows:    %d\n"+
		"  Crossed Rows:   %d\n\n",
		summary.RunID,
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		duration.String(),
		summary.TotalFiles,
		summary.SuccessfulFiles,
		summary.FailedFiles,
		summary.TotalLines,
		summary.TotalRed,
		summary.TotalOrange,
		summary.TotalYellow,
		summary.TotalCrossed)

	if len(summary.ProcessedFiles) > 0 {
		writer.WriteString("Successful Files:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, pf := range summary.ProcessedFiles {
			fmt.Fprintf(writer, "  Input:        %s\n", pf.InputFile)
			for _, out := range pf.OutputFiles {
				fmt.Fprintf(writer, "  Output:       %s\n", out)
			}
			if pf.ArchivePath != "" {
				fmt.Fprintf(writer, "  Archived To:  %s\n", pf.ArchivePath)
			}
			fmt.Fprintf(writer, "  Lines:        %d\n", pf.Lines)
			fmt.Fprintf(writer, "  Highlights:   red=%d orange=%d yellow=%d crossed=%d\n",
				pf.Red, pf.Orange, pf.Yellow, pf.Crossed)
			fmt.Fprintf(writer, "  Process Time: %s\n\n", pf.ProcessTime.String())
		}
	}

	if len(summary.FailedFilesList) > 0 {
		writer.WriteString("Failed Files:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, ff := range summary.FailedFilesList {
			fmt.Fprintf(writer, "  File:  %s\n", ff.InputFile)
			fmt.Fprintf(writer, "  Error: %s\n\n", ff.ErrorMessage)
		}
	}

	writer.WriteString("================================================================================\n" +
		"End of Summary\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
