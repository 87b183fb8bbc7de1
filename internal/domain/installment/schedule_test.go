package installment

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSchedule(t *testing.T) {
	tests := []struct {
		name            string
		total           string
		down            string
		count           int
		wantRemaining   string
		wantInstallment string
	}{
		{"even split", "1200", "200", 10, "1000", "100"},
		{"no down payment", "900", "0", 3, "900", "300"},
		{"rounded down", "1000", "0", 3, "1000", "333.33"},
		{"rounded up", "100", "0", 6, "100", "16.67"},
		{"single installment", "750.50", "50.50", 1, "700", "700"},
		{"down payment equals total", "500", "500", 4, "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remaining, installment, err := ComputeSchedule(
				decimal.RequireFromString(tt.total),
				decimal.RequireFromString(tt.down),
				tt.count,
			)
			require.NoError(t, err)
			assert.True(t, remaining.Equal(decimal.RequireFromString(tt.wantRemaining)), "remaining = %s", remaining)
			assert.True(t, installment.Equal(decimal.RequireFromString(tt.wantInstallment)), "installment = %s", installment)
		})
	}
}

func TestComputeScheduleRejectsInvalidCountBeforeDividing(t *testing.T) {
	_, _, err := ComputeSchedule(decimal.NewFromInt(1000), decimal.Zero, 0)
	assert.ErrorIs(t, err, ErrInvalidInstallmentCount)

	_, _, err = ComputeSchedule(decimal.NewFromInt(1000), decimal.Zero, -1)
	assert.ErrorIs(t, err, ErrInvalidInstallmentCount)
}

func TestScheduleSumsToBalance(t *testing.T) {
	tests := []struct {
		name  string
		total string
		down  string
		count int
	}{
		{"even split", "1200", "200", 10},
		{"remainder on last", "1000", "0", 3},
		{"tiny amounts", "0.10", "0", 3},
		{"awkward fraction", "999.99", "100", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPlan(
				1, "سالم", "0559876543", "2044556677",
				decimal.RequireFromString(tt.total),
				decimal.RequireFromString(tt.down),
				tt.count,
				time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			)
			require.NoError(t, err)

			rows := p.Schedule()
			require.Len(t, rows, tt.count)

			sum := decimal.Zero
			for _, row := range rows {
				sum = sum.Add(row.Amount)
			}
			balance := p.TotalAmount.Sub(p.DownPayment)
			assert.True(t, sum.Equal(balance), "schedule sums to %s, balance is %s", sum, balance)

			// every row but the last carries the rounded amount
			for _, row := range rows[:len(rows)-1] {
				assert.True(t, row.Amount.Equal(p.InstallmentAmount))
			}
		})
	}
}

func TestScheduleDueDatesAreMonthly(t *testing.T) {
	start := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	p, err := NewPlan(1, "سالم", "0559876543", "2044556677",
		decimal.NewFromInt(600), decimal.Zero, 3, start)
	require.NoError(t, err)

	rows := p.Schedule()
	require.Len(t, rows, 3)
	assert.Equal(t, start, rows[0].DueDate)
	for i, row := range rows {
		assert.Equal(t, p.DueDate(i+1), row.DueDate)
	}
}
