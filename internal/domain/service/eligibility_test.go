package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neshhin/credit-approval-system/internal/domain/model"
	"github.com/Neshhin/credit-approval-system/internal/domain/service"
)

func newChecker() *service.EligibilityChecker {
	return service.NewEligibilityChecker(service.NewCreditScoreCalculator())
}

func TestEligibilityChecker_Evaluate(t *testing.T) {
	checker := newChecker()

	t.Run("high score approves at the requested rate", func(t *testing.T) {
		customer := testCustomer(50000, 1_800_000) // no history scores 55

		result, err := checker.Evaluate(customer, nil,
			decimal.NewFromInt(100000), decimal.NewFromInt(10), 12, scoreNow)

		require.NoError(t, err)
		assert.True(t, result.Approved)
		assert.Equal(t, 55, result.CreditScore)
		assert.True(t, result.CorrectedRate.Equal(decimal.NewFromInt(10)))
		assert.Equal(t, "8791.59", result.MonthlyInstallment.StringFixed(2))
		assert.Equal(t, service.ReasonApproved, result.Reason)
	})

	t.Run("middle tier raises the rate to the 12 percent floor", func(t *testing.T) {
		customer := testCustomer(50000, 100_000)
		history := []model.Loan{
			// payment 0, count 20, year 5, volume 10: score 35.
			testLoan(11, 150_000, 12, 0, scoreNow.AddDate(-2, 0, 0), false),
		}

		result, err := checker.Evaluate(customer, history,
			decimal.NewFromInt(50000), decimal.NewFromInt(8), 12, scoreNow)

		require.NoError(t, err)
		assert.True(t, result.Approved)
		assert.Equal(t, 35, result.CreditScore)
		assert.True(t, result.RequestedRate.Equal(decimal.NewFromInt(8)))
		assert.True(t, result.CorrectedRate.Equal(decimal.NewFromInt(12)))
		assert.Equal(t, service.ReasonRateCorrected, result.Reason)

		// The installment reflects the corrected rate, not the requested one.
		expected, err := model.ComputeEMI(decimal.NewFromInt(50000), decimal.NewFromInt(12), 12)
		require.NoError(t, err)
		assert.True(t, result.MonthlyInstallment.Equal(expected))
	})

	t.Run("middle tier keeps a rate already above the floor", func(t *testing.T) {
		customer := testCustomer(50000, 100_000)
		history := []model.Loan{
			testLoan(11, 150_000, 12, 0, scoreNow.AddDate(-2, 0, 0), false),
		}

		result, err := checker.Evaluate(customer, history,
			decimal.NewFromInt(50000), decimal.NewFromInt(14), 12, scoreNow)

		require.NoError(t, err)
		assert.True(t, result.Approved)
		assert.True(t, result.CorrectedRate.Equal(decimal.NewFromInt(14)))
		assert.Equal(t, service.ReasonApproved, result.Reason)
	})

	t.Run("score of exactly 50 falls into the corrected tier", func(t *testing.T) {
		customer := testCustomer(50000, 100_000)
		history := []model.Loan{
			// payment 10 (6 of 24), count 20, year 5, volume 15: score 50.
			testLoan(11, 60_000, 24, 6, scoreNow.AddDate(-2, 0, 0), false),
		}

		result, err := checker.Evaluate(customer, history,
			decimal.NewFromInt(50000), decimal.NewFromInt(10), 12, scoreNow)

		require.NoError(t, err)
		assert.Equal(t, 50, result.CreditScore)
		assert.True(t, result.Approved)
		assert.True(t, result.CorrectedRate.Equal(decimal.NewFromInt(12)))
	})

	t.Run("score of exactly 30 falls into the 16 percent tier", func(t *testing.T) {
		customer := testCustomer(50000, 100_000)
		var history []model.Loan
		// payment 0, count 10, year activity 15, volume 5: score 30.
		for i := int64(0); i < 3; i++ {
			history = append(history, testLoan(30+i, 30_000, 12, 0, scoreNow.AddDate(0, -1, 0), false))
		}
		for i := int64(3); i < 7; i++ {
			history = append(history, testLoan(30+i, 30_000, 12, 0, scoreNow.AddDate(-3, 0, 0), false))
		}

		result, err := checker.Evaluate(customer, history,
			decimal.NewFromInt(50000), decimal.NewFromInt(12), 12, scoreNow)

		require.NoError(t, err)
		assert.Equal(t, 30, result.CreditScore)
		assert.True(t, result.Approved)
		assert.True(t, result.CorrectedRate.Equal(decimal.NewFromInt(16)))
		assert.Equal(t, service.ReasonRateCorrected, result.Reason)
	})

	t.Run("low tier raises the rate to the 16 percent floor", func(t *testing.T) {
		customer := testCustomer(50000, 100_000)
		start := scoreNow.AddDate(-3, 0, 0)
		var history []model.Loan
		for i := int64(0); i < 7; i++ {
			// payment 0, count 10, year 5, volume 5: score 20.
			history = append(history, testLoan(20+i, 30_000, 12, 0, start, false))
		}

		result, err := checker.Evaluate(customer, history,
			decimal.NewFromInt(50000), decimal.NewFromInt(12), 12, scoreNow)

		require.NoError(t, err)
		assert.True(t, result.Approved)
		assert.Equal(t, 20, result.CreditScore)
		assert.True(t, result.CorrectedRate.Equal(decimal.NewFromInt(16)))
		assert.Equal(t, service.ReasonRateCorrected, result.Reason)
	})

	t.Run("overextended customer is rejected on score", func(t *testing.T) {
		customer := testCustomer(1_000_000, 100_000)
		history := []model.Loan{
			testLoan(11, 150_000, 12, 12, scoreNow.AddDate(0, -6, 0), true),
		}

		result, err := checker.Evaluate(customer, history,
			decimal.NewFromInt(100000), decimal.NewFromInt(10), 12, scoreNow)

		require.NoError(t, err)
		assert.False(t, result.Approved)
		assert.Equal(t, 0, result.CreditScore)
		assert.Equal(t, service.ReasonLowCreditScore, result.Reason)
		assert.True(t, result.CorrectedRate.Equal(decimal.NewFromInt(10)),
			"rejection echoes the requested rate untouched")
	})

	t.Run("emi burden rejects before any rate correction", func(t *testing.T) {
		customer := testCustomer(20000, 1_800_000)
		history := []model.Loan{
			// monthly repayment 5000 against a 10000 affordability ceiling.
			testLoan(11, 60_000, 12, 6, scoreNow.AddDate(0, -2, 0), true),
		}

		result, err := checker.Evaluate(customer, history,
			decimal.NewFromInt(100000), decimal.NewFromInt(10), 12, scoreNow)

		require.NoError(t, err)
		assert.False(t, result.Approved)
		assert.Equal(t, service.ReasonEMIBurden, result.Reason)
		assert.Equal(t, 80, result.CreditScore, "the score is still reported on a gate rejection")
		assert.True(t, result.CorrectedRate.Equal(decimal.NewFromInt(10)))
		assert.Equal(t, "8791.59", result.MonthlyInstallment.StringFixed(2))
	})

	t.Run("rejects non-positive loan amount", func(t *testing.T) {
		customer := testCustomer(50000, 1_800_000)

		_, err := checker.Evaluate(customer, nil,
			decimal.Zero, decimal.NewFromInt(10), 12, scoreNow)
		require.ErrorIs(t, err, model.ErrInvalidLoanAmount)
	})

	t.Run("rejects non-positive tenure", func(t *testing.T) {
		customer := testCustomer(50000, 1_800_000)

		_, err := checker.Evaluate(customer, nil,
			decimal.NewFromInt(100000), decimal.NewFromInt(10), 0, scoreNow)
		require.ErrorIs(t, err, model.ErrInvalidTenure)
	})

	t.Run("evaluation is repeatable for unchanged inputs", func(t *testing.T) {
		customer := testCustomer(50000, 1_800_000)

		first, err := checker.Evaluate(customer, nil,
			decimal.NewFromInt(100000), decimal.NewFromInt(10), 12, scoreNow)
		require.NoError(t, err)
		second, err := checker.Evaluate(customer, nil,
			decimal.NewFromInt(100000), decimal.NewFromInt(10), 12, scoreNow)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}
