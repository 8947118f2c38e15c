// =============================================================================
// Blind Receiving Highlighter - Row Sets
// =============================================================================
//
// Line and RowSet, the ordered sets of report rows the classifier fills.
// Row identity is configurable: by line text, where duplicate lines collapse,
// or by position in the report.
//
// =============================================================================

package receiving

import (
	"fmt"
	"strconv"
)

// Line is one report line with its position in the report.
type Line struct {
	Index int
	Text  string
}

// RowIdentity selects how RowSet decides two lines are the same row.
type RowIdentity string

const (
	// IdentityText treats lines with equal text as the same row, so
	// duplicate lines collapse. A duplicate of a flagged line is flagged too
	// when rendered.
	IdentityText RowIdentity = "text"

	// IdentityIndex treats every report position as a distinct row.
	IdentityIndex RowIdentity = "index"
)

// ParseRowIdentity parses a configuration value. The empty string selects
// IdentityText.
func ParseRowIdentity(s string) (RowIdentity, error) {
	switch RowIdentity(s) {
	case "", IdentityText:
		return IdentityText, nil
	case IdentityIndex:
		return IdentityIndex, nil
	default:
		return "", fmt.Errorf("unknown row identity %q (want %q or %q)", s, IdentityText, IdentityIndex)
	}
}

// RowSet is an insertion-ordered set of lines. It only grows.
type RowSet struct {
	identity RowIdentity
	rows     []Line
	seen     map[string]struct{}
}

// NewRowSet returns an empty set using the given identity.
func NewRowSet(identity RowIdentity) *RowSet {
	if identity == "" {
		identity = IdentityText
	}
	return &RowSet{
		identity: identity,
		seen:     make(map[string]struct{}),
	}
}

func (s *RowSet) key(l Line) string {
	if s.identity == IdentityIndex {
		return strconv.Itoa(l.Index)
	}
	return l.Text
}

// Add inserts l and reports whether it was new.
func (s *RowSet) Add(l Line) bool {
	k := s.key(l)
	if _, ok := s.seen[k]; ok {
		return false
	}
	s.seen[k] = struct{}{}
	s.rows = append(s.rows, l)
	return true
}

// AddAll inserts every line of ls.
func (s *RowSet) AddAll(ls []Line) {
	for _, l := range ls {
		s.Add(l)
	}
}

// Contains reports whether l is in the set.
func (s *RowSet) Contains(l Line) bool {
	_, ok := s.seen[s.key(l)]
	return ok
}

// Rows returns a copy of the members in insertion order.
func (s *RowSet) Rows() []Line {
	out := make([]Line, len(s.rows))
	copy(out, s.rows)
	return out
}

// Len returns the number of members.
func (s *RowSet) Len() int { return len(s.rows) }

// Highlights accumulates the priority and strike-through sets for one
// report. Create one per report.
type Highlights struct {
	Red     *RowSet
	Orange  *RowSet
	Yellow  *RowSet
	Crossed *RowSet
}

// NewHighlights returns empty sets using the given identity.
func NewHighlights(identity RowIdentity) *Highlights {
	return &Highlights{
		Red:     NewRowSet(identity),
		Orange:  NewRowSet(identity),
		Yellow:  NewRowSet(identity),
		Crossed: NewRowSet(identity),
	}
}

// Merge adds one classification batch to the priority sets.
func (h *Highlights) Merge(c Classification) {
	h.Red.AddAll(c.High)
	h.Orange.AddAll(c.Medium)
	h.Yellow.AddAll(c.Low)
}
