package receiving

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractQuantities(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   QuantityRecord
		signed string
	}{
		{
			name:   "overage",
			line:   "100001  WIDGET 12CT            12    18     6",
			want:   QuantityRecord{Ordered: 12, Received: 18, Variance: 6, Sign: SignPlus},
			signed: "+6",
		},
		{
			name:   "shortage",
			line:   "100001  WIDGET  6  5  1",
			want:   QuantityRecord{Ordered: 6, Received: 5, Variance: 1, Sign: SignMinus},
			signed: "-1",
		},
		{
			name:   "exact",
			line:   "100003  THING  6  6  0",
			want:   QuantityRecord{Ordered: 6, Received: 6, Variance: 0, Sign: SignNone},
			signed: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractQuantities(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.signed, got.SignedVariance())
		})
	}
}

func TestExtractQuantities_NoData(t *testing.T) {
	_, ok := ExtractQuantities("100001 WIDGET")
	assert.False(t, ok)

	_, ok = ExtractQuantities("12 18")
	assert.False(t, ok)
}

func TestExtractQuantities_SignMatchesDifference(t *testing.T) {
	lines := []string{
		"100001  A  1  9  8",
		"100001  B  9  1  8",
		"100001  C  4  4  0",
		"100001  D  0  12  12",
	}

	for _, line := range lines {
		q, ok := ExtractQuantities(line)
		require.True(t, ok)
		assert.GreaterOrEqual(t, q.Ordered, 0)
		assert.GreaterOrEqual(t, q.Received, 0)
		assert.GreaterOrEqual(t, q.Variance, 0)

		diff := q.Received - q.Ordered
		switch {
		case diff > 0:
			assert.Equal(t, SignPlus, q.Sign, line)
		case diff < 0:
			assert.Equal(t, SignMinus, q.Sign, line)
		default:
			assert.Equal(t, SignNone, q.Sign, line)
		}
	}
}

func TestExtractPalletSize(t *testing.T) {
	size, ok := ExtractPalletSize("100001  08:00  LP000101        12    A04")
	require.True(t, ok)
	assert.Equal(t, 12, size)

	size, ok = ExtractPalletSize("! 12:00 LP9 5 A01")
	require.True(t, ok)
	assert.Equal(t, 5, size)

	_, ok = ExtractPalletSize("100001  08:00  LP1  X  A04")
	assert.False(t, ok)

	_, ok = ExtractPalletSize("LP1 A04")
	assert.False(t, ok)
}

func TestIsPartialPallet(t *testing.T) {
	assert.True(t, IsPartialPallet(7, 6))
	assert.False(t, IsPartialPallet(12, 6))
	assert.False(t, IsPartialPallet(0, 6))
	assert.True(t, IsPartialPallet(10, 4))
	assert.False(t, IsPartialPallet(7, 0))
}
