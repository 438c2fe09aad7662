package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		subtotal float64
		cgst     float64
		sgst     float64
		roundOff float64
		want     Breakdown
	}{
		{
			name:     "standard 2.5 + 2.5 on 6000",
			subtotal: 6000,
			cgst:     2.5,
			sgst:     2.5,
			want:     Breakdown{CGST: 150, SGST: 150, GrandTotal: 6300},
		},
		{
			name:     "zero rates",
			subtotal: 1234.56,
			want:     Breakdown{GrandTotal: 1234.56},
		},
		{
			name:     "round off applied",
			subtotal: 100,
			cgst:     2.5,
			sgst:     2.5,
			roundOff: -0.25,
			want:     Breakdown{CGST: 2.5, SGST: 2.5, RoundOff: -0.25, GrandTotal: 104.75},
		},
		{
			name:     "fractional subtotal rounds tax halves",
			subtotal: 333.33,
			cgst:     2.5,
			sgst:     2.5,
			want:     Breakdown{CGST: 8.33, SGST: 8.33, GrandTotal: 349.99},
		},
		{
			name:     "zero subtotal",
			subtotal: 0,
			cgst:     9,
			sgst:     9,
			want:     Breakdown{GrandTotal: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.subtotal, tt.cgst, tt.sgst, tt.roundOff)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.CGST, got.CGST, 0.001)
			assert.InDelta(t, tt.want.SGST, got.SGST, 0.001)
			assert.InDelta(t, tt.want.RoundOff, got.RoundOff, 0.001)
			assert.InDelta(t, tt.want.GrandTotal, got.GrandTotal, 0.001)
		})
	}
}

func TestComputeGrandTotalInvariant(t *testing.T) {
	subtotals := []float64{0, 1, 99.99, 6000, 123456.78}
	for _, sub := range subtotals {
		got, err := Compute(sub, 2.5, 2.5, 0)
		require.NoError(t, err)
		assert.InDelta(t, sub+got.CGST+got.SGST+got.RoundOff, got.GrandTotal, 0.01)
	}
}

func TestComputeRejectsBadConfig(t *testing.T) {
	_, err := Compute(-1, 2.5, 2.5, 0)
	assert.Error(t, err)

	_, err = Compute(100, -0.1, 2.5, 0)
	assert.ErrorIs(t, err, ErrRateOutOfRange)

	_, err = Compute(100, 2.5, 100.1, 0)
	assert.ErrorIs(t, err, ErrRateOutOfRange)
}

func TestLineAmount(t *testing.T) {
	assert.InDelta(t, 6000.0, LineAmount(2, 3000), 0.001)
	assert.InDelta(t, 0.1, LineAmount(0.333, 0.3), 0.001)
}
