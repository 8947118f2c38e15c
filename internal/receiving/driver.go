// =============================================================================
// Blind Receiving Highlighter - Classification Driver
// =============================================================================
//
// Runs the classifier once per mixed event of a report and merges every
// batch into a single set of highlights. Reports with shortage rows are
// driven from their shortage quantity rows; reports without are driven from
// their overage quantity rows.
//
// =============================================================================

package receiving

import "go.uber.org/zap"

// Analysis is the complete classification of one report.
type Analysis struct {
	Lines      []Line
	Sections   *Sections
	Highlights *Highlights

	// Last is the final classification batch produced by the driver.
	// Highlights is the accumulated result across all batches.
	Last Classification

	// Batches is how many times the classifier ran.
	Batches int
}

// FindHighlightRows runs the classifier for every mixed event of the
// report and merges each batch into h.
//
// STRATEGY:
//   - The report has shortage rows: classify at the line after each
//     shortage quantity row.
//   - The report has none: for each overage quantity row, classify at the
//     next section start after the following line (or that line itself
//     when no later section starts).
//
// RETURNS:
//   - The last batch and the number of batches run.
func (e *Engine) FindHighlightRows(h *Highlights) (Classification, int) {
	var (
		last    Classification
		batches int
	)

	run := func(start int) {
		c := e.Classify(start)
		h.Merge(c)
		last = c
		batches++
	}

	if !e.sections.HasShortage() {
		for _, i := range e.sections.OverageIndices {
			if i+1 >= len(e.lines) {
				continue
			}
			start := i + 1
			if next, ok := e.sections.NextBoundary(start); ok {
				start = next
			}
			run(start)
		}
	} else {
		for _, i := range e.sections.ShortageIndices {
			if i+1 >= len(e.lines) {
				continue
			}
			run(i + 1)
		}
	}

	e.logger.Debug("highlight rows found",
		zap.Int("batches", batches),
		zap.Int("red", h.Red.Len()),
		zap.Int("orange", h.Orange.Len()),
		zap.Int("yellow", h.Yellow.Len()),
	)

	return last, batches
}

// MarkInaccessible adds every inaccessible location row to h.Crossed.
func (e *Engine) MarkInaccessible(h *Highlights) {
	for _, l := range e.lines {
		if IsInaccessibleLocation(l.Text) {
			h.Crossed.Add(l)
		}
	}
}

// Analyze runs the inaccessible-location detector and the driver against a
// fresh set of highlights.
func (e *Engine) Analyze() *Analysis {
	h := NewHighlights(e.opts.Identity)
	e.MarkInaccessible(h)
	last, batches := e.FindHighlightRows(h)

	return &Analysis{
		Lines:      e.lines,
		Sections:   e.sections,
		Highlights: h,
		Last:       last,
		Batches:    batches,
	}
}
