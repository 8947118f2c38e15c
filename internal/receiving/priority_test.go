package receiving

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func texts(lines []Line) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.Text)
	}
	return out
}

func TestClassify_TwoPriorOverageRows(t *testing.T) {
	e := NewEngine(shortageReport, DefaultOptions(), nil)

	c := e.Classify(5)

	assert.False(t, c.Escaped)
	assert.Equal(t, "10:00", c.Target.Format("15:04"))
	assert.Equal(t, []string{shortageReport[3]}, texts(c.High))
	assert.Equal(t, []string{shortageReport[2]}, texts(c.Medium))
	assert.Empty(t, c.Low)
	assert.Nil(t, c.FollowingOverage)
}

func TestClassify_SinglePriorOverageRow(t *testing.T) {
	// 08:30 sits between the two overage receipts.
	report := append(append([]string{}, shortageReport...), "100002  08:30  LP000203  6  A07")
	e := NewEngine(report, DefaultOptions(), nil)

	c := e.Classify(7)

	assert.Equal(t, []string{shortageReport[2]}, texts(c.High))
	assert.Empty(t, c.Medium)
	require.NotNil(t, c.FollowingOverage)
	assert.Equal(t, shortageReport[3], c.FollowingOverage.Text)
}

func TestClassify_NoPriorOverageRows(t *testing.T) {
	report := append(append([]string{}, shortageReport...), "100002  07:00  LP000203  6  A07")
	e := NewEngine(report, DefaultOptions(), nil)

	c := e.Classify(7)

	assert.Empty(t, c.High)
	assert.Empty(t, c.Medium)
	require.NotNil(t, c.FollowingOverage)
	assert.Equal(t, shortageReport[2], c.FollowingOverage.Text)
}

func TestClassify_StartRowWithoutTime(t *testing.T) {
	report := []string{
		"100001  WIDGET  12  18  6",
		"100001  08:00  LP1  7  A04",
		"100002  GADGET  18  12  6",
		"! pallet label missing",
	}
	e := NewEngine(report, DefaultOptions(), nil)

	c := e.Classify(3)

	assert.True(t, c.Escaped)
	assert.Equal(t, []string{report[3]}, texts(c.High))
	assert.Empty(t, c.Medium)
	assert.Empty(t, c.Low)
}

func TestClassify_StartRowWithInvalidTime(t *testing.T) {
	report := []string{"100002  GADGET  18  12  6", "100002  25:99  LP1  6  A04"}
	e := NewEngine(report, DefaultOptions(), nil)

	c := e.Classify(1)

	assert.True(t, c.Escaped)
	assert.Equal(t, []string{report[1]}, texts(c.High))
}

func TestClassify_OutOfRange(t *testing.T) {
	e := NewEngine(shortageReport, DefaultOptions(), nil)

	c := e.Classify(len(shortageReport))
	assert.Empty(t, c.High)
	assert.Empty(t, c.Medium)
	assert.Empty(t, c.Low)
}

func TestClassify_PartialPalletsAreLowPriority(t *testing.T) {
	report := []string{
		"100001  WIDGET  12  25  13",
		"100001  08:00  LP1  7  A04",
		"100001  08:10  LP2  12  A05",
		"100001  08:20  LP3  5  A06",
		"100001  08:30  LP4  X  A07",
		"100002  GADGET  18  12  6",
		"100002  09:00  LP5  7  A08",
	}
	e := NewEngine(report, DefaultOptions(), nil)

	c := e.Classify(6)

	assert.Equal(t, []string{report[1], report[3]}, texts(c.Low))
	assert.Equal(t, []string{report[4]}, texts(c.High))
	assert.Equal(t, []string{report[3]}, texts(c.Medium))
}

func TestClassify_RowsWithoutTimeAreNotOrdered(t *testing.T) {
	report := []string{
		"100001  WIDGET  12  18  6",
		"100001  08:00  LP1  6  A04",
		"! 99:99 LP2  6  A05",
		"100002  GADGET  18  12  6",
		"100002  10:00  LP3  6  A06",
	}
	e := NewEngine(report, DefaultOptions(), nil)

	c := e.Classify(4)

	assert.Equal(t, []string{report[1]}, texts(c.High))
	assert.Empty(t, c.Medium)
}

func TestClassify_PriorWindowOption(t *testing.T) {
	report := []string{
		"100001  WIDGET  12  30  18",
		"100001  09:00  LP3  6  A06",
		"100001  07:00  LP1  6  A04",
		"100001  08:00  LP2  6  A05",
		"100002  GADGET  18  12  6",
		"100002  10:00  LP4  6  A07",
	}
	opts := DefaultOptions()
	opts.PriorWindow = 3
	e := NewEngine(report, opts, nil)

	c := e.Classify(5)

	assert.Equal(t, []string{report[1]}, texts(c.High))
	assert.Equal(t, []string{report[2], report[3]}, texts(c.Medium))
}

func TestClassify_CasePackOption(t *testing.T) {
	opts := DefaultOptions()
	opts.CasePackSize = 4
	e := NewEngine(shortageReport, opts, nil)

	c := e.Classify(5)

	// 12 is a multiple of 4, 6 is not.
	assert.Equal(t, []string{shortageReport[3]}, texts(c.Low))
}

func TestClassify_FallbackToRowBeforeNextSection(t *testing.T) {
	e := NewEngine(noOverageReport, DefaultOptions(), nil)

	c := e.Classify(1)

	assert.Equal(t, []string{noOverageReport[1]}, texts(c.High))
	assert.Empty(t, c.Medium)
	assert.Empty(t, c.Low)
}

func TestClassify_FallbackToLastPartialPallet(t *testing.T) {
	report := []string{
		"100002  GADGET  18  12  6",
		"100002  10:00  LP1  6  A04",
		"! 12:00 LP9 5 A01",
	}
	e := NewEngine(report, DefaultOptions(), nil)

	c := e.Classify(1)

	assert.Equal(t, []string{report[2]}, texts(c.High))
}

func TestClassify_FallbackToStartRow(t *testing.T) {
	report := []string{
		"100002  GADGET  18  12  6",
		"100002  10:00  LP1  6  A04",
		"100002  10:05  LP2  12  A05",
	}
	e := NewEngine(report, DefaultOptions(), nil)

	c := e.Classify(1)

	assert.Equal(t, []string{report[1]}, texts(c.High))
}

func TestNewEngine_DefaultsZeroOptions(t *testing.T) {
	e := NewEngine(shortageReport, Options{}, nil)

	assert.Equal(t, DefaultOptions(), e.Options())
	assert.Len(t, e.Lines(), len(shortageReport))
	assert.Equal(t, 2, e.Sections().Len())
}

func TestNewEngine_LogsSkippedQuantityRows(t *testing.T) {
	oversized := "100009  WIDGET  123456789012345678901  5  1"
	report := append(append([]string{}, shortageReport...), oversized)

	core, logs := observer.New(zap.DebugLevel)
	e := NewEngine(report, Options{}, zap.New(core))

	assert.Equal(t, []int{len(report) - 1}, e.Sections().SkippedIndices)

	skipped := logs.FilterMessage("quantity row skipped: numbers out of range").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, zapcore.DebugLevel, skipped[0].Level)
	assert.Equal(t, oversized, skipped[0].ContextMap()["row"])
	assert.EqualValues(t, len(report)-1, skipped[0].ContextMap()["index"])
}
