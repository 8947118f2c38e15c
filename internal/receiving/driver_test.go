package receiving

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_ShortageReport(t *testing.T) {
	a := NewEngine(shortageReport, DefaultOptions(), nil).Analyze()

	assert.Equal(t, 1, a.Batches)
	assert.Equal(t, 5, a.Last.Start)
	assert.Equal(t, []string{shortageReport[3]}, texts(a.Highlights.Red.Rows()))
	assert.Equal(t, []string{shortageReport[2]}, texts(a.Highlights.Orange.Rows()))
	assert.Zero(t, a.Highlights.Yellow.Len())
	assert.Equal(t, []string{shortageReport[6]}, texts(a.Highlights.Crossed.Rows()))
}

func TestAnalyze_OverageOnlyReportFlagsPartialPallet(t *testing.T) {
	a := NewEngine(overageOnlyReport, DefaultOptions(), nil).Analyze()

	require.Equal(t, 1, a.Batches)
	assert.True(t, a.Highlights.Yellow.Contains(Line{Index: 1, Text: overageOnlyReport[1]}))
	assert.Equal(t, []string{overageOnlyReport[1]}, texts(a.Last.Low))
}

func TestFindHighlightRows_OverageBoundaryIsClassified(t *testing.T) {
	report := []string{
		"100001  WIDGET  6  12  6",
		"100001  08:00  LP1  12  A04",
		"100003  THING  6  6  0",
		"100003  09:00  LP2  6  A05",
	}
	e := NewEngine(report, DefaultOptions(), nil)
	h := NewHighlights(IdentityText)

	last, batches := e.FindHighlightRows(h)

	// The next section start is a quantity row, which carries no time.
	assert.Equal(t, 1, batches)
	assert.Equal(t, 2, last.Start)
	assert.True(t, last.Escaped)
	assert.Equal(t, []string{report[2]}, texts(h.Red.Rows()))
}

func TestFindHighlightRows_OnlyLastBatchReturned(t *testing.T) {
	report := []string{
		"100001  WIDGET  12  24  12",
		"100001  08:00  LP1  12  A04",
		"100001  09:00  LP2  12  A05",
		"100002  GADGET  18  12  6",
		"100002  08:30  LP3  6  A06",
		"100003  GIZMO  18  12  6",
		"100003  09:30  LP4  6  A07",
	}
	e := NewEngine(report, DefaultOptions(), nil)
	h := NewHighlights(IdentityText)

	last, batches := e.FindHighlightRows(h)

	assert.Equal(t, 2, batches)
	assert.Equal(t, 6, last.Start)
	assert.Equal(t, []string{report[2]}, texts(last.High))
	assert.Equal(t, []string{report[1]}, texts(last.Medium))

	// The first batch flagged 08:00 as high priority; it stays red.
	assert.Equal(t, []string{report[1], report[2]}, texts(h.Red.Rows()))
	assert.Equal(t, []string{report[1]}, texts(h.Orange.Rows()))
}

func TestFindHighlightRows_ShortageAtLastLineIsSkipped(t *testing.T) {
	report := []string{"100002  GADGET  18  12  6"}
	e := NewEngine(report, DefaultOptions(), nil)

	_, batches := e.FindHighlightRows(NewHighlights(IdentityText))
	assert.Zero(t, batches)
}

func TestFindHighlightRows_AccumulationIsMonotonic(t *testing.T) {
	e := NewEngine(shortageReport, DefaultOptions(), nil)
	h := NewHighlights(IdentityText)

	sizes := func() [4]int {
		return [4]int{h.Red.Len(), h.Orange.Len(), h.Yellow.Len(), h.Crossed.Len()}
	}

	before := sizes()
	e.MarkInaccessible(h)
	afterCross := sizes()
	e.FindHighlightRows(h)
	afterFirst := sizes()
	e.FindHighlightRows(h)
	afterSecond := sizes()

	for i := range before {
		assert.LessOrEqual(t, before[i], afterCross[i])
		assert.LessOrEqual(t, afterCross[i], afterFirst[i])
		assert.LessOrEqual(t, afterFirst[i], afterSecond[i])
	}
}

func TestMarkInaccessible_DeduplicatesByText(t *testing.T) {
	report := []string{
		"100002  10:30  LP000202  6  D12",
		"100002  10:30  LP000202  6  D12",
	}
	e := NewEngine(report, DefaultOptions(), nil)
	h := NewHighlights(IdentityText)

	e.MarkInaccessible(h)
	e.MarkInaccessible(h)

	assert.Equal(t, 1, h.Crossed.Len())
}

func TestMarkInaccessible_IndexIdentityKeepsDuplicates(t *testing.T) {
	report := []string{
		"100002  10:30  LP000202  6  D12",
		"100002  10:30  LP000202  6  D12",
	}
	opts := DefaultOptions()
	opts.Identity = IdentityIndex
	e := NewEngine(report, opts, nil)
	h := NewHighlights(IdentityIndex)

	e.MarkInaccessible(h)
	e.MarkInaccessible(h)

	assert.Equal(t, 2, h.Crossed.Len())
}

func TestAnalyze_RowCanBeRedAndCrossed(t *testing.T) {
	report := []string{
		"100001  WIDGET  12  18  6",
		"100001  09:00  LP1  12  D3",
		"100002  GADGET  18  12  6",
		"100002  10:00  LP2  6  A04",
	}
	a := NewEngine(report, DefaultOptions(), nil).Analyze()

	row := Line{Index: 1, Text: report[1]}
	assert.True(t, a.Highlights.Red.Contains(row))
	assert.True(t, a.Highlights.Crossed.Contains(row))
}
