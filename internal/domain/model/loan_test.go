package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neshhin/credit-approval-system/internal/domain/model"
)

func TestNewLoan(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("starts active with end date tenure months out", func(t *testing.T) {
		loan, err := model.NewLoan(7, decimal.NewFromInt(100000), decimal.NewFromInt(12), 24, decimal.NewFromInt(4707), now)

		require.NoError(t, err)
		assert.True(t, loan.IsActive())
		assert.Equal(t, 0, loan.EMIsPaidOnTime())
		assert.Equal(t, now, loan.StartDate())
		assert.Equal(t, now.AddDate(0, 24, 0), loan.EndDate())
	})

	t.Run("rejects invalid customer id", func(t *testing.T) {
		_, err := model.NewLoan(0, decimal.NewFromInt(100000), decimal.NewFromInt(12), 24, decimal.NewFromInt(4707), now)
		require.ErrorIs(t, err, model.ErrInvalidCustomerID)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := model.NewLoan(7, decimal.Zero, decimal.NewFromInt(12), 24, decimal.NewFromInt(4707), now)
		require.ErrorIs(t, err, model.ErrInvalidLoanAmount)
	})

	t.Run("rejects negative rate", func(t *testing.T) {
		_, err := model.NewLoan(7, decimal.NewFromInt(100000), decimal.NewFromInt(-1), 24, decimal.NewFromInt(4707), now)
		require.ErrorIs(t, err, model.ErrInvalidInterestRate)
	})

	t.Run("rejects non-positive tenure", func(t *testing.T) {
		_, err := model.NewLoan(7, decimal.NewFromInt(100000), decimal.NewFromInt(12), 0, decimal.NewFromInt(4707), now)
		require.ErrorIs(t, err, model.ErrInvalidTenure)
	})
}

func TestLoan_DerivedValues(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	loan := model.ReconstructLoan(
		11, 7,
		decimal.NewFromInt(120000), decimal.NewFromInt(10),
		12,
		decimal.NewFromInt(10000),
		4,
		start, start.AddDate(0, 12, 0),
		true,
		start, start,
	)

	assert.Equal(t, 8, loan.EMIsLeft())
	assert.True(t, loan.TotalAmountPaid().Equal(decimal.NewFromInt(40000)))
	assert.True(t, loan.RemainingAmount().Equal(decimal.NewFromInt(80000)))
	assert.True(t, loan.StartedIn(2025))
	assert.False(t, loan.StartedIn(2026))
}

func TestLoan_EMIsLeftNeverNegative(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	loan := model.ReconstructLoan(
		11, 7,
		decimal.NewFromInt(120000), decimal.NewFromInt(10),
		12,
		decimal.NewFromInt(10000),
		15, // recorded beyond tenure
		start, start.AddDate(0, 12, 0),
		false,
		start, start,
	)

	assert.Equal(t, 0, loan.EMIsLeft())
}
