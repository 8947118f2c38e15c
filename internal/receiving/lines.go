// =============================================================================
// Blind Receiving Highlighter - Line Classifier
// =============================================================================
//
// This module identifies what kind of record a single report line holds.
// The blind receiving export is a fixed columnar layout with three record
// shapes that matter to the highlighter:
//
//   QUANTITY ROW:   100001  WIDGET 12CT           12    18     6
//                   ^code                         ^ord  ^rcv   ^variance
//
//   EVENT ROW:      100001  08:15  LP000123       12    A04
//                   ^code   ^time                 ^pallet size
//
//   LOCATION ROW:   100001  08:15  LP000124       12    D12
//                   an event row whose trailing field is a location id
//
// An exclamation mark anywhere in a line is an alternate start-of-record
// marker for event rows.
//
// All functions in this file are pure.
//
// =============================================================================

package receiving

import (
	"regexp"
	"time"
)

// =============================================================================
// PATTERNS
// =============================================================================

var (
	// clockPattern matches H:MM or HH:MM anywhere in a line.
	clockPattern = regexp.MustCompile(`\d{1,2}:\d{2}`)

	// quantityTailPattern matches three whitespace separated integers at
	// the end of a line.
	quantityTailPattern = regexp.MustCompile(`\s+\d+\s+\d+\s+\d+\s*$`)

	// recordStartPattern matches the 6-digit record code.
	recordStartPattern = regexp.MustCompile(`^\s*\d{6}`)

	// locationTailPattern matches a trailing location id: a plain integer or
	// an integer prefixed with D or T.
	locationTailPattern = regexp.MustCompile(`\s+(?:\d+|D\d+|T\d+)\s*$`)

	// recordMarkerPattern is the alternate start-of-record marker.
	recordMarkerPattern = regexp.MustCompile(`!`)
)

// clockLayout is the time.Parse layout for report times. The hour accepts
// one or two digits.
const clockLayout = "15:04"

// =============================================================================
// PREDICATES
// =============================================================================

// IsTimestampedRow reports whether line is an event row: it carries a clock
// time and either starts with a 6-digit code or contains an exclamation mark.
func IsTimestampedRow(line string) bool {
	if !clockPattern.MatchString(line) {
		return false
	}
	return recordStartPattern.MatchString(line) || recordMarkerPattern.MatchString(line)
}

// IsQuantityRow reports whether line is a quantity row: it starts with a
// 6-digit code, ends with three integers and carries no clock time.
//
// The no-time condition keeps quantity rows and event rows disjoint.
func IsQuantityRow(line string) bool {
	return quantityTailPattern.MatchString(line) &&
		recordStartPattern.MatchString(line) &&
		!clockPattern.MatchString(line)
}

// IsInaccessibleLocation reports whether line is an event row whose trailing
// field is a location id.
func IsInaccessibleLocation(line string) bool {
	return IsTimestampedRow(line) && locationTailPattern.MatchString(line)
}

// =============================================================================
// CLOCK TIMES
// =============================================================================

// FindClock returns the first H:MM or HH:MM substring of line.
func FindClock(line string) (string, bool) {
	match := clockPattern.FindString(line)
	return match, match != ""
}

// ParseClock parses an H:MM or HH:MM string into a clock time with no date
// component. Out of range values such as "25:61" return false.
func ParseClock(s string) (time.Time, bool) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// LineClock finds and parses the clock time embedded in line.
func LineClock(line string) (time.Time, bool) {
	s, ok := FindClock(line)
	if !ok {
		return time.Time{}, false
	}
	return ParseClock(s)
}
