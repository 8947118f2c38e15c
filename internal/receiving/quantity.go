// =============================================================================
// Blind Receiving Highlighter - Quantity Rows
// =============================================================================
//
// Recognizes quantity rows (item, description, ordered, received, variance)
// and extracts their numbers. Also reads the pallet size from event rows and
// decides whether a pallet is partial.
//
// =============================================================================

package receiving

import (
	"regexp"
	"strconv"
)

var (
	integerPattern = regexp.MustCompile(`\d+`)
	wordPattern    = regexp.MustCompile(`\b\w+\b`)
)

// Sign is the direction of a quantity variance.
type Sign int

const (
	// SignNone means received equals ordered.
	SignNone Sign = iota
	// SignPlus means more was received than ordered.
	SignPlus
	// SignMinus means less was received than ordered.
	SignMinus
)

// String returns the display prefix for the sign.
func (s Sign) String() string {
	switch s {
	case SignPlus:
		return "+"
	case SignMinus:
		return "-"
	default:
		return ""
	}
}

// QuantityRecord holds the trailing quantities of a quantity row.
type QuantityRecord struct {
	Ordered  int
	Received int

	// Variance is the magnitude as printed in the report. The report never
	// prints a sign; Sign is derived from Ordered and Received.
	Variance int

	Sign Sign
}

// SignedVariance renders the variance with its derived sign, e.g. "+6".
func (q QuantityRecord) SignedVariance() string {
	return q.Sign.String() + strconv.Itoa(q.Variance)
}

// ExtractQuantities reads the last three integers of line as
// (ordered, received, variance). It returns false when fewer than three
// integers are present.
func ExtractQuantities(line string) (QuantityRecord, bool) {
	runs := integerPattern.FindAllString(line, -1)
	if len(runs) < 3 {
		return QuantityRecord{}, false
	}

	values := make([]int, 3)
	for i, run := range runs[len(runs)-3:] {
		n, err := strconv.Atoi(run)
		if err != nil {
			return QuantityRecord{}, false
		}
		values[i] = n
	}

	record := QuantityRecord{
		Ordered:  values[0],
		Received: values[1],
		Variance: values[2],
	}
	switch {
	case record.Received > record.Ordered:
		record.Sign = SignPlus
	case record.Received < record.Ordered:
		record.Sign = SignMinus
	}
	return record, true
}

// ExtractPalletSize reads the second-from-last word of line as the pallet
// size. It returns false when the line has fewer than three words or that
// word is not an integer.
func ExtractPalletSize(line string) (int, bool) {
	words := wordPattern.FindAllString(line, -1)
	if len(words) < 3 {
		return 0, false
	}
	size, err := strconv.Atoi(words[len(words)-2])
	if err != nil {
		return 0, false
	}
	return size, true
}

// IsPartialPallet reports whether size is not a whole number of case packs.
// A non-positive casePack disables the check.
func IsPartialPallet(size, casePack int) bool {
	if casePack <= 0 {
		return false
	}
	return size%casePack != 0
}
