package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neshhin/credit-approval-system/internal/domain/model"
)

func TestComputeEMI(t *testing.T) {
	t.Run("zero interest divides principal evenly", func(t *testing.T) {
		emi, err := model.ComputeEMI(decimal.NewFromInt(120000), decimal.Zero, 12)

		require.NoError(t, err)
		assert.Equal(t, "10000.00", emi.StringFixed(2))
	})

	t.Run("standard amortization", func(t *testing.T) {
		emi, err := model.ComputeEMI(decimal.NewFromInt(100000), decimal.NewFromInt(10), 12)

		require.NoError(t, err)
		assert.Equal(t, "8791.59", emi.StringFixed(2))
	})

	t.Run("zero interest with remainder rounds to two places", func(t *testing.T) {
		emi, err := model.ComputeEMI(decimal.NewFromInt(100000), decimal.Zero, 3)

		require.NoError(t, err)
		assert.Equal(t, "33333.33", emi.StringFixed(2))
	})

	t.Run("rejects non-positive tenure", func(t *testing.T) {
		_, err := model.ComputeEMI(decimal.NewFromInt(100000), decimal.NewFromInt(10), 0)
		require.ErrorIs(t, err, model.ErrInvalidTenure)

		_, err = model.ComputeEMI(decimal.NewFromInt(100000), decimal.NewFromInt(10), -6)
		require.ErrorIs(t, err, model.ErrInvalidTenure)
	})

	t.Run("rejects negative principal", func(t *testing.T) {
		_, err := model.ComputeEMI(decimal.NewFromInt(-1), decimal.NewFromInt(10), 12)
		require.ErrorIs(t, err, model.ErrInvalidLoanAmount)
	})

	t.Run("rejects negative rate", func(t *testing.T) {
		_, err := model.ComputeEMI(decimal.NewFromInt(100000), decimal.NewFromInt(-1), 12)
		require.ErrorIs(t, err, model.ErrInvalidInterestRate)
	})
}

func TestRoundToNearestLakh(t *testing.T) {
	cases := []struct {
		name   string
		in     int64
		expect int64
	}{
		{"rounds up past half", 1_980_000, 2_000_000},
		{"rounds down below half", 1_949_999, 1_900_000},
		{"half rounds away from zero", 150_000, 200_000},
		{"exact lakh unchanged", 1_800_000, 1_800_000},
		{"zero stays zero", 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := model.RoundToNearestLakh(decimal.NewFromInt(tc.in))
			assert.True(t, got.Equal(decimal.NewFromInt(tc.expect)),
				"got %s, want %d", got.String(), tc.expect)
		})
	}
}
