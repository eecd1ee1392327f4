package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neshhin/credit-approval-system/internal/domain/model"
)

func TestNewCustomer(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("derives approved limit from salary", func(t *testing.T) {
		customer, err := model.NewCustomer("Asha", "Verma", 32, "9876543210", decimal.NewFromInt(50000), now)

		require.NoError(t, err)
		// 50000 * 36 = 1,800,000, already a whole lakh multiple.
		assert.True(t, customer.ApprovedLimit().Equal(decimal.NewFromInt(1_800_000)))
		assert.True(t, customer.CurrentDebt().IsZero())
		assert.Equal(t, int64(0), customer.ID())
	})

	t.Run("rounds approved limit to nearest lakh", func(t *testing.T) {
		// 55100 * 36 = 1,983,600 which rounds up to 2,000,000.
		customer, err := model.NewCustomer("Asha", "Verma", 32, "9876543210", decimal.NewFromInt(55100), now)

		require.NoError(t, err)
		assert.True(t, customer.ApprovedLimit().Equal(decimal.NewFromInt(2_000_000)))
	})

	t.Run("rejects missing names", func(t *testing.T) {
		_, err := model.NewCustomer("", "Verma", 32, "9876543210", decimal.NewFromInt(50000), now)
		require.ErrorIs(t, err, model.ErrInvalidName)

		_, err = model.NewCustomer("Asha", "", 32, "9876543210", decimal.NewFromInt(50000), now)
		require.ErrorIs(t, err, model.ErrInvalidName)
	})

	t.Run("rejects out-of-range age", func(t *testing.T) {
		_, err := model.NewCustomer("Asha", "Verma", 17, "9876543210", decimal.NewFromInt(50000), now)
		require.ErrorIs(t, err, model.ErrInvalidAge)

		_, err = model.NewCustomer("Asha", "Verma", 101, "9876543210", decimal.NewFromInt(50000), now)
		require.ErrorIs(t, err, model.ErrInvalidAge)
	})

	t.Run("rejects missing phone number", func(t *testing.T) {
		_, err := model.NewCustomer("Asha", "Verma", 32, "", decimal.NewFromInt(50000), now)
		require.ErrorIs(t, err, model.ErrInvalidPhoneNumber)
	})

	t.Run("rejects negative salary", func(t *testing.T) {
		_, err := model.NewCustomer("Asha", "Verma", 32, "9876543210", decimal.NewFromInt(-1), now)
		require.ErrorIs(t, err, model.ErrInvalidSalary)
	})
}

func TestCustomer_WithID(t *testing.T) {
	now := time.Now().UTC()
	customer, err := model.NewCustomer("Asha", "Verma", 32, "9876543210", decimal.NewFromInt(50000), now)
	require.NoError(t, err)

	persisted := customer.WithID(42)

	assert.Equal(t, int64(42), persisted.ID())
	assert.Equal(t, int64(0), customer.ID(), "original copy must not change")
}

func TestCustomer_AccrueDebt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	customer, err := model.NewCustomer("Asha", "Verma", 32, "9876543210", decimal.NewFromInt(50000), now)
	require.NoError(t, err)

	t.Run("adds principal to current debt", func(t *testing.T) {
		later := now.Add(time.Hour)
		next, err := customer.AccrueDebt(decimal.NewFromInt(100000), later)

		require.NoError(t, err)
		assert.True(t, next.CurrentDebt().Equal(decimal.NewFromInt(100000)))
		assert.Equal(t, later, next.UpdatedAt())
		assert.True(t, customer.CurrentDebt().IsZero(), "original copy must not change")
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := customer.AccrueDebt(decimal.Zero, now)
		require.ErrorIs(t, err, model.ErrInvalidDebtAmount)
	})
}
