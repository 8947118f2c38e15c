// =============================================================================
// Blind Receiving Highlighter - PDF Writer
// =============================================================================
//
// Draws the annotated report on US Letter pages in a monospaced font.
// Crossed lines get a strike line running to the right edge of the page.
//
// =============================================================================

package render

import (
	"fmt"

	"github.com/go-pdf/fpdf"
)

// PDF page layout, in points.
const (
	pdfFontFamily = "Courier"
	pdfFontSize   = 10
	pdfLeading    = 12
	pdfLeftMargin = 30
	pdfTopMargin  = 40

	// strikeOffset is the distance above the baseline of the strike line.
	strikeOffset = 4
)

// WritePDF writes the annotated report to a US Letter PDF.
//
// Each line is drawn in a monospaced font at a fixed leading so the report
// columns stay aligned. Crossed lines get a horizontal rule through the text
// running to the right edge of the page.
//
// PARAMETERS:
//   - path: The destination file.
//   - lines: The annotated report lines.
//   - opts: The layout options.
//
// RETURNS:
//   - An error if the document cannot be produced or written.
func WritePDF(path string, lines []AnnotatedLine, opts Options) error {
	opts = opts.withDefaults()

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("blind-receiver-highlighter", true)
	pdf.SetLineWidth(1)
	pdf.SetDrawColor(0, 0, 0)

	// Core fonts are cp1252; report text is UTF-8.
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	pageWidth, _ := pdf.GetPageSize()

	for _, page := range paginate(lines, opts.LinesPerPage) {
		pdf.AddPage()
		pdf.SetFont(pdfFontFamily, "", pdfFontSize)

		y := float64(pdfTopMargin)
		for _, line := range page {
			if line.Crossed {
				pdf.Line(pdfLeftMargin, y-strikeOffset, pageWidth, y-strikeOffset)
			}
			pdf.Text(pdfLeftMargin, y, translate(line.Text))
			y += pdfLeading
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}
