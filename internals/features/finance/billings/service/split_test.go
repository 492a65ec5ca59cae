package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEvenly(t *testing.T) {
	tests := []struct {
		name      string
		total     string
		n         int
		wantShare string
	}{
		{name: "whole split", total: "1000.00", n: 2, wantShare: "500.00"},
		{name: "three way with remainder", total: "100.00", n: 3, wantShare: "33.33"},
		{name: "single tenant", total: "750.50", n: 1, wantShare: "750.50"},
		{name: "sub-cent amount", total: "0.05", n: 4, wantShare: "0.01"},
		{name: "zero amount", total: "0.00", n: 3, wantShare: "0.00"},
		{name: "seven way", total: "200.00", n: 7, wantShare: "28.57"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := mustDecimal(t, tt.total)
			shares, err := SplitEvenly(total, tt.n)
			require.NoError(t, err)
			require.Len(t, shares, tt.n)

			want := mustDecimal(t, tt.wantShare)
			sum := decimal.Zero
			for _, s := range shares {
				assert.True(t, s.Equal(want), "share %s, want %s", s, want)
				sum = sum.Add(s)
			}

			// Rounding down never overshoots, and leaves at most
			// (n-1) cents unassigned.
			assert.True(t, sum.LessThanOrEqual(total), "sum %s exceeds total %s", sum, total)
			maxLoss := decimal.New(int64(tt.n), -2)
			assert.True(t, total.Sub(sum).LessThan(maxLoss), "lost %s, limit %s", total.Sub(sum), maxLoss)
		})
	}
}

func TestSplitEvenlyRejectsBadInput(t *testing.T) {
	_, err := SplitEvenly(mustDecimal(t, "100.00"), 0)
	assert.Error(t, err)

	_, err = SplitEvenly(mustDecimal(t, "100.00"), -3)
	assert.Error(t, err)

	_, err = SplitEvenly(mustDecimal(t, "-50.00"), 2)
	assert.Error(t, err)
}
