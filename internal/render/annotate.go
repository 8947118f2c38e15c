// =============================================================================
// Blind Receiving Highlighter - Report Renderer Module
// =============================================================================
//
// This module turns a classified report into display lines and writes them
// as a highlighted PDF and, optionally, an Excel workbook.
//
// DISPLAY RULES:
//   - Quantity rows: the trailing variance is replaced by its signed form
//     ("+6", "-2", or the bare number when exact).
//   - Timestamped rows and rows containing "Acceptance": trimmed and indented.
//   - Every other row: trimmed.
//   - Priority rows: the start of the display text is overwritten with a
//     marker ("*** " high, "** " medium, "* " low). A row in several sets
//     takes the highest.
//   - Rows on inaccessible locations are struck through.
//
// =============================================================================

package render

import (
	"regexp"
	"strings"

	"github.com/ginjaninja78/blind-receiver-highlighter/internal/receiving"
)

// =============================================================================
// RENDER OPTIONS
// =============================================================================

// Options controls layout of the rendered documents.
type Options struct {
	// IndentWidth is the number of spaces before event rows.
	// Default: 10
	IndentWidth int

	// LinesPerPage is the number of report lines on each page.
	// Default: 60
	LinesPerPage int
}

// DefaultOptions returns the US Letter layout: 60 lines per page, 10-space indent.
func DefaultOptions() Options {
	return Options{IndentWidth: 10, LinesPerPage: 60}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.IndentWidth < 0 {
		o.IndentWidth = d.IndentWidth
	}
	if o.LinesPerPage < 1 {
		o.LinesPerPage = d.LinesPerPage
	}
	return o
}

// =============================================================================
// PRIORITY
// =============================================================================

// Priority is the highlight level of a display line.
type Priority int

const (
	PriorityNone Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
)

// String returns the color name used in logs and the workbook.
func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "red"
	case PriorityMedium:
		return "orange"
	case PriorityLow:
		return "yellow"
	default:
		return ""
	}
}

// Marker returns the prefix written over the start of a priority row.
func (p Priority) Marker() string {
	switch p {
	case PriorityHigh:
		return "*** "
	case PriorityMedium:
		return "** "
	case PriorityLow:
		return "* "
	default:
		return ""
	}
}

// =============================================================================
// ANNOTATION
// =============================================================================

// AnnotatedLine is one report line ready for rendering.
type AnnotatedLine struct {
	Index    int
	Source   string
	Text     string
	Priority Priority
	Crossed  bool
}

var trailingNumberPattern = regexp.MustCompile(`(\d+)\s*$`)

// Annotate produces the display lines for a classified report. h may be nil,
// in which case nothing is highlighted.
func Annotate(lines []receiving.Line, h *receiving.Highlights, opts Options) []AnnotatedLine {
	opts = opts.withDefaults()

	out := make([]AnnotatedLine, 0, len(lines))
	for _, l := range lines {
		a := AnnotatedLine{
			Index:  l.Index,
			Source: l.Text,
			Text:   DisplayText(l.Text, opts.IndentWidth),
		}
		if h != nil {
			a.Priority = priorityOf(l, h)
			a.Crossed = h.Crossed.Contains(l)
		}
		a.Text = applyMarker(a.Text, a.Priority)
		out = append(out, a)
	}
	return out
}

// DisplayText applies the quantity and indentation rules to one line.
func DisplayText(line string, indentWidth int) string {
	switch {
	case receiving.IsQuantityRow(line):
		q, ok := receiving.ExtractQuantities(line)
		if !ok {
			return line
		}
		return trailingNumberPattern.ReplaceAllLiteralString(line, q.SignedVariance())
	case receiving.IsTimestampedRow(line), strings.Contains(line, "Acceptance"):
		return strings.Repeat(" ", indentWidth) + strings.TrimSpace(line)
	default:
		return strings.TrimSpace(line)
	}
}

func priorityOf(l receiving.Line, h *receiving.Highlights) Priority {
	switch {
	case h.Red.Contains(l):
		return PriorityHigh
	case h.Orange.Contains(l):
		return PriorityMedium
	case h.Yellow.Contains(l):
		return PriorityLow
	default:
		return PriorityNone
	}
}

// applyMarker overwrites the first characters of text with the marker. Text
// shorter than the marker is replaced by it.
func applyMarker(text string, p Priority) string {
	marker := p.Marker()
	if marker == "" {
		return text
	}
	r := []rune(text)
	n := len([]rune(marker))
	if len(r) <= n {
		return marker
	}
	return marker + string(r[n:])
}

// paginate splits lines into pages of at most perPage lines. An empty
// report still has one page.
func paginate(lines []AnnotatedLine, perPage int) [][]AnnotatedLine {
	if len(lines) == 0 {
		return [][]AnnotatedLine{nil}
	}
	var pages [][]AnnotatedLine
	for start := 0; start < len(lines); start += perPage {
		end := min(start+perPage, len(lines))
		pages = append(pages, lines[start:end])
	}
	return pages
}

// PageCount returns the number of pages n lines occupy.
func PageCount(n int, opts Options) int {
	opts = opts.withDefaults()
	if n == 0 {
		return 1
	}
	return (n + opts.LinesPerPage - 1) / opts.LinesPerPage
}
