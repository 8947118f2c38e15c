// =============================================================================
// Blind Receiving Highlighter - Workbook Writer
// =============================================================================
//
// Writes the annotated report to an .xlsx workbook with one row per line,
// filled by priority, plus a summary sheet of the classification counts.
//
// =============================================================================

package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/blind-receiver-highlighter/internal/receiving"
)

// Sheet names used in the highlighted workbook.
const (
	ReportSheet  = "Report"
	SummarySheet = "Summary"
)

// priorityFills maps each priority to its cell fill color.
var priorityFills = map[Priority]string{
	PriorityHigh:   "#FF0000",
	PriorityMedium: "#FFA500",
	PriorityLow:    "#FFFF00",
}

// =============================================================================
// SUMMARY
// =============================================================================

// Summary holds the counts written to the Summary sheet.
type Summary struct {
	Lines        int
	ShortageRows int
	OverageRows  int
	ExactRows    int
	Red          int
	Orange       int
	Yellow       int
	Crossed      int
	Batches      int
}

// NewSummary collects the counts of an analysis.
func NewSummary(a *receiving.Analysis) Summary {
	return Summary{
		Lines:        len(a.Lines),
		ShortageRows: len(a.Sections.ShortageIndices),
		OverageRows:  len(a.Sections.OverageIndices),
		ExactRows:    len(a.Sections.ExactIndices),
		Red:          a.Highlights.Red.Len(),
		Orange:       a.Highlights.Orange.Len(),
		Yellow:       a.Highlights.Yellow.Len(),
		Crossed:      a.Highlights.Crossed.Len(),
		Batches:      a.Batches,
	}
}

func (s Summary) rows() [][]any {
	return [][]any{
		{"Metric", "Value"},
		{"Lines", s.Lines},
		{"Shortage rows", s.ShortageRows},
		{"Overage rows", s.OverageRows},
		{"Exact rows", s.ExactRows},
		{"Red rows", s.Red},
		{"Orange rows", s.Orange},
		{"Yellow rows", s.Yellow},
		{"Crossed rows", s.Crossed},
		{"Classifier batches", s.Batches},
	}
}

// =============================================================================
// WORKBOOK WRITER
// =============================================================================

type styleKey struct {
	priority Priority
	crossed  bool
}

// WriteWorkbook writes the annotated report to an Excel workbook.
//
// The Report sheet holds one row per line with the priority as a fill color
// and crossed rows in strikethrough. A manual page break is inserted every
// LinesPerPage rows so the printed workbook matches the PDF pages. The
// Summary sheet holds the counts.
//
// PARAMETERS:
//   - path: The destination .xlsx file.
//   - lines: The annotated report lines.
//   - summary: The counts for the Summary sheet.
//   - opts: The layout options.
//
// RETURNS:
//   - An error if the workbook cannot be built or saved.
func WriteWorkbook(path string, lines []AnnotatedLine, summary Summary, opts Options) error {
	opts = opts.withDefaults()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ReportSheet); err != nil {
		return fmt.Errorf("failed to name report sheet: %w", err)
	}
	if err := f.SetColWidth(ReportSheet, "A", "A", 110); err != nil {
		return fmt.Errorf("failed to size report column: %w", err)
	}

	styles := make(map[styleKey]int)
	styleFor := func(key styleKey) (int, error) {
		if id, ok := styles[key]; ok {
			return id, nil
		}
		style := &excelize.Style{
			Font: &excelize.Font{Family: "Courier New", Size: 10, Strike: key.crossed},
		}
		if color, ok := priorityFills[key.priority]; ok {
			style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
		}
		id, err := f.NewStyle(style)
		if err != nil {
			return 0, err
		}
		styles[key] = id
		return id, nil
	}

	for i, line := range lines {
		row := i + 1
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(ReportSheet, cell, line.Text); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}

		id, err := styleFor(styleKey{priority: line.Priority, crossed: line.Crossed})
		if err != nil {
			return fmt.Errorf("failed to create style: %w", err)
		}
		if err := f.SetCellStyle(ReportSheet, cell, cell, id); err != nil {
			return fmt.Errorf("failed to style row %d: %w", row, err)
		}

		if i > 0 && i%opts.LinesPerPage == 0 {
			if err := f.InsertPageBreak(ReportSheet, cell); err != nil {
				return fmt.Errorf("failed to insert page break at row %d: %w", row, err)
			}
		}
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	for i, values := range summary.rows() {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
