// =============================================================================
// Blind Receiving Highlighter - Section Indexer
// =============================================================================
//
// A section is the run of report lines that follows a quantity row, up to
// the next quantity row. The sign of the quantity row's variance names the
// section:
//
//   received < ordered  -> shortage
//   received > ordered  -> overage
//   received = ordered  -> exact
//
// Event rows inherit the section of the nearest quantity row above them.
// The index is built once per report and is read-only afterwards.
//
// =============================================================================

package receiving

import "sort"

// SectionKind labels a section by its variance sign.
type SectionKind int

const (
	// SectionNone is returned for indices that precede every section start.
	SectionNone SectionKind = iota
	SectionShortage
	SectionOverage
	SectionExact
)

// String returns the lowercase section name.
func (k SectionKind) String() string {
	switch k {
	case SectionShortage:
		return "shortage"
	case SectionOverage:
		return "overage"
	case SectionExact:
		return "exact"
	default:
		return "none"
	}
}

// sectionStart is one quantity row index tagged with its section kind.
type sectionStart struct {
	index int
	kind  SectionKind
}

// Sections is the result of the indexing pass.
type Sections struct {
	// ShortageIndices holds quantity row indices with received < ordered.
	ShortageIndices []int

	// OverageIndices holds quantity row indices with received > ordered.
	OverageIndices []int

	// ExactIndices holds quantity row indices with received = ordered.
	ExactIndices []int

	// SkippedIndices holds quantity rows whose numbers could not be read,
	// e.g. a run of digits too long for an int. They start no section.
	SkippedIndices []int

	// starts merges the three index sets, sorted by index.
	starts []sectionStart
}

// IndexSections classifies every quantity row of lines into exactly one of
// the three section index sets.
//
// PARAMETERS:
//   - lines: The full report, one entry per line.
//
// RETURNS:
//   - The section index. Each index slice is in ascending order.
func IndexSections(lines []string) *Sections {
	s := &Sections{}

	for i, line := range lines {
		if !IsQuantityRow(line) {
			continue
		}
		record, ok := ExtractQuantities(line)
		if !ok {
			s.SkippedIndices = append(s.SkippedIndices, i)
			continue
		}

		var kind SectionKind
		switch record.Sign {
		case SignMinus:
			kind = SectionShortage
			s.ShortageIndices = append(s.ShortageIndices, i)
		case SignPlus:
			kind = SectionOverage
			s.OverageIndices = append(s.OverageIndices, i)
		default:
			kind = SectionExact
			s.ExactIndices = append(s.ExactIndices, i)
		}
		s.starts = append(s.starts, sectionStart{index: i, kind: kind})
	}

	// Lines are scanned in order, so starts is already sorted. Keep the
	// sort so the invariant does not depend on the scan.
	sort.Slice(s.starts, func(a, b int) bool { return s.starts[a].index < s.starts[b].index })

	return s
}

// DetermineSection returns the kind of the greatest section start that is
// <= index, or SectionNone when index precedes all section starts.
func (s *Sections) DetermineSection(index int) SectionKind {
	// First start strictly greater than index.
	pos := sort.Search(len(s.starts), func(i int) bool { return s.starts[i].index > index })
	if pos == 0 {
		return SectionNone
	}
	return s.starts[pos-1].kind
}

// NextBoundary returns the smallest section start index strictly greater
// than index.
func (s *Sections) NextBoundary(index int) (int, bool) {
	pos := sort.Search(len(s.starts), func(i int) bool { return s.starts[i].index > index })
	if pos == len(s.starts) {
		return 0, false
	}
	return s.starts[pos].index, true
}

// HasShortage reports whether any shortage row was indexed.
func (s *Sections) HasShortage() bool { return len(s.ShortageIndices) > 0 }

// HasOverage reports whether any overage row was indexed.
func (s *Sections) HasOverage() bool { return len(s.OverageIndices) > 0 }

// Len returns the number of indexed quantity rows.
func (s *Sections) Len() int { return len(s.starts) }
