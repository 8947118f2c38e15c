// =============================================================================
// Blind Receiving Highlighter - Priority Classifier
// =============================================================================
//
// Given the line that follows a mixed event (a shortage quantity row), the
// classifier picks the overage-section event rows that most likely received
// the missing product:
//
//   HIGH   (red)    : the overage event row closest in time before the
//                     mixed event.
//   MEDIUM (orange) : the other rows inside the prior-time window
//                     (by default the second closest).
//   LOW    (yellow) : every overage event row holding a partial pallet,
//                     i.e. a pallet size that is not a whole number of
//                     case packs.
//
// When the report has no overage section at all, a single fallback row is
// chosen so that a detected mixed event always produces a high priority row.
//
// The classifier is pure with respect to the engine: it returns a
// Classification and never mutates shared state. The driver merges results.
//
// =============================================================================

package receiving

import (
	"sort"
	"time"

	"go.uber.org/zap"
)

// =============================================================================
// OPTIONS
// =============================================================================

const (
	// DefaultCasePackSize is the standard case-pack unit. Pallet sizes that
	// are not a multiple of it are partial pallets.
	DefaultCasePackSize = 6

	// DefaultPriorWindow is how many chronologically prior overage rows are
	// flagged around a mixed event.
	DefaultPriorWindow = 2
)

// Options tunes the classifier.
type Options struct {
	// CasePackSize is the case-pack unit used by the partial pallet check.
	CasePackSize int

	// PriorWindow is the number of prior overage rows taken. The most recent
	// is high priority, the rest are medium priority.
	PriorWindow int

	// Identity selects how flagged rows are de-duplicated.
	Identity RowIdentity
}

// DefaultOptions returns the built-in classifier settings.
func DefaultOptions() Options {
	return Options{
		CasePackSize: DefaultCasePackSize,
		PriorWindow:  DefaultPriorWindow,
		Identity:     IdentityText,
	}
}

// =============================================================================
// CLASSIFICATION RESULT
// =============================================================================

// Classification is the outcome of classifying around one start row.
type Classification struct {
	// Start is the report index the classification was anchored on.
	Start int

	High   []Line
	Medium []Line
	Low    []Line

	// Target is the clock time of the start row. Zero when Escaped.
	Target time.Time

	// Escaped is true when the start row had no parseable time and the
	// start row itself was returned as the high priority row.
	Escaped bool

	// FollowingOverage is the overage event row closest in time after
	// Target. It is informational only and never merged into a priority set.
	FollowingOverage *Line
}

// =============================================================================
// ENGINE
// =============================================================================

// timedRow is an event row with its parsed clock time.
type timedRow struct {
	line     Line
	clock    time.Time
	hasClock bool
}

// Engine classifies one report. It indexes sections on construction and is
// read-only afterwards, so Classify may be called any number of times.
type Engine struct {
	lines    []Line
	sections *Sections
	opts     Options
	logger   *zap.Logger

	// overage holds event rows inside overage sections; other holds the
	// remaining event rows.
	overage []timedRow
	other   []timedRow

	// partialAnchor is the greatest event row index with a partial pallet,
	// or -1.
	partialAnchor int
}

// NewEngine indexes text and prepares the event row buckets.
//
// PARAMETERS:
//   - text: The report lines in order.
//   - opts: Classifier settings. Zero values fall back to the defaults.
//   - logger: Destination for debug output. nil disables logging.
func NewEngine(text []string, opts Options, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.CasePackSize <= 0 {
		opts.CasePackSize = DefaultCasePackSize
	}
	if opts.PriorWindow <= 0 {
		opts.PriorWindow = DefaultPriorWindow
	}
	if opts.Identity == "" {
		opts.Identity = IdentityText
	}

	lines := make([]Line, len(text))
	for i, t := range text {
		lines[i] = Line{Index: i, Text: t}
	}

	e := &Engine{
		lines:         lines,
		sections:      IndexSections(text),
		opts:          opts,
		logger:        logger,
		partialAnchor: -1,
	}
	for _, i := range e.sections.SkippedIndices {
		logger.Debug("quantity row skipped: numbers out of range",
			zap.Int("index", i),
			zap.String("row", text[i]),
		)
	}
	e.bucketEventRows()
	return e
}

// bucketEventRows splits event rows by whether their section is overage.
func (e *Engine) bucketEventRows() {
	for _, l := range e.lines {
		if !IsTimestampedRow(l.Text) {
			continue
		}

		clock, ok := LineClock(l.Text)
		row := timedRow{line: l, clock: clock, hasClock: ok}
		if e.sections.DetermineSection(l.Index) == SectionOverage {
			e.overage = append(e.overage, row)
		} else {
			e.other = append(e.other, row)
		}

		if size, ok := ExtractPalletSize(l.Text); ok && IsPartialPallet(size, e.opts.CasePackSize) {
			e.partialAnchor = l.Index
		}
	}
}

// Lines returns the report lines.
func (e *Engine) Lines() []Line { return e.lines }

// Sections returns the section index.
func (e *Engine) Sections() *Sections { return e.sections }

// Options returns the effective settings.
func (e *Engine) Options() Options { return e.opts }

// Classify computes the high, medium and low priority rows for the mixed
// event at start.
//
// PARAMETERS:
//   - start: The report index of the row that follows the mixed event.
//
// RETURNS:
//   - The classification. An out of range start yields an empty result.
func (e *Engine) Classify(start int) Classification {
	c := Classification{Start: start}
	if start < 0 || start >= len(e.lines) {
		return c
	}
	startLine := e.lines[start]

	// Rows without a usable time cannot be ordered; flag the row itself.
	target, ok := LineClock(startLine.Text)
	if !ok {
		c.High = []Line{startLine}
		c.Escaped = true
		e.logger.Debug("mixed event row has no time", zap.Int("index", start))
		return c
	}
	c.Target = target

	e.logger.Debug("classifying mixed event",
		zap.Int("index", start),
		zap.String("time", target.Format(clockLayout)),
	)

	c.High, c.Medium = e.priorRows(target)
	c.FollowingOverage = e.followingRow(target)
	c.Low = e.partialPallets()

	if !e.sections.HasOverage() {
		c.High = append(c.High, e.fallbackRow(start))
	}

	return c
}

// priorRows takes the PriorWindow overage rows closest before target.
func (e *Engine) priorRows(target time.Time) (high, medium []Line) {
	var prior []timedRow
	for _, r := range e.overage {
		if r.hasClock && r.clock.Before(target) {
			prior = append(prior, r)
		}
	}
	if len(prior) == 0 {
		return nil, nil
	}

	sort.SliceStable(prior, func(a, b int) bool { return prior[a].clock.Before(prior[b].clock) })

	window := e.opts.PriorWindow
	if window > len(prior) {
		window = len(prior)
	}
	recent := prior[len(prior)-window:]

	high = []Line{recent[len(recent)-1].line}
	for _, r := range recent[:len(recent)-1] {
		medium = append(medium, r.line)
	}
	return high, medium
}

// followingRow returns the overage row closest after target, if any.
func (e *Engine) followingRow(target time.Time) *Line {
	var best *timedRow
	for i := range e.overage {
		r := &e.overage[i]
		if !r.hasClock || !r.clock.After(target) {
			continue
		}
		if best == nil || r.clock.Before(best.clock) {
			best = r
		}
	}
	if best == nil {
		return nil
	}
	l := best.line
	return &l
}

// partialPallets returns every overage event row with a partial pallet.
// Rows without a readable pallet size are skipped.
func (e *Engine) partialPallets() []Line {
	var low []Line
	for _, r := range e.overage {
		size, ok := ExtractPalletSize(r.line.Text)
		if !ok {
			continue
		}
		if IsPartialPallet(size, e.opts.CasePackSize) {
			low = append(low, r.line)
		}
	}
	return low
}

// fallbackRow picks the high priority row when the report has no overage
// section: the row just before the next section start, else the last
// partial pallet event row, else the start row.
func (e *Engine) fallbackRow(start int) Line {
	if next, ok := e.sections.NextBoundary(start); ok {
		return e.lines[next-1]
	}
	if e.partialAnchor >= 0 {
		return e.lines[e.partialAnchor]
	}
	return e.lines[start]
}
