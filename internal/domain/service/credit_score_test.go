package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Neshhin/credit-approval-system/internal/domain/model"
	"github.com/Neshhin/credit-approval-system/internal/domain/service"
)

var scoreNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testCustomer(salary, approvedLimit int64) model.Customer {
	t0 := scoreNow.AddDate(-2, 0, 0)
	return model.ReconstructCustomer(
		1, "Asha", "Verma", 32, "9876543210",
		decimal.NewFromInt(salary), decimal.NewFromInt(approvedLimit), decimal.Zero,
		t0, t0,
	)
}

func testLoan(id int64, amount int64, tenure, paidOnTime int, start time.Time, active bool) model.Loan {
	return model.ReconstructLoan(
		id, 1,
		decimal.NewFromInt(amount), decimal.NewFromInt(10),
		tenure,
		decimal.NewFromInt(amount/int64(tenure)),
		paidOnTime,
		start, start.AddDate(0, tenure, 0),
		active,
		start, start,
	)
}

func TestCreditScoreCalculator_Score(t *testing.T) {
	scorer := service.NewCreditScoreCalculator()

	t.Run("new customer with no history scores 55", func(t *testing.T) {
		customer := testCustomer(50000, 1_800_000)

		// payment history 20, loan count 10, year activity 5, volume 20.
		assert.Equal(t, 55, scorer.Score(customer, nil, scoreNow))
	})

	t.Run("single well-repaid closed loan from a past year scores 85", func(t *testing.T) {
		customer := testCustomer(50000, 1_800_000)
		history := []model.Loan{
			testLoan(11, 30000, 12, 12, scoreNow.AddDate(-1, 0, 0), false),
		}

		// payment history 40, loan count 20, year activity 5, volume 20.
		assert.Equal(t, 85, scorer.Score(customer, history, scoreNow))
	})

	t.Run("well-repaid loan started this year reaches the maximum", func(t *testing.T) {
		customer := testCustomer(50000, 1_800_000)
		history := []model.Loan{
			testLoan(11, 30000, 12, 12, scoreNow.AddDate(0, -2, 0), true),
		}

		// payment history 40, loan count 20, year activity 20, volume 20.
		assert.Equal(t, 100, scorer.Score(customer, history, scoreNow))
	})

	t.Run("active principal above approved limit forces zero", func(t *testing.T) {
		customer := testCustomer(50000, 100_000)
		history := []model.Loan{
			testLoan(11, 80_000, 12, 12, scoreNow.AddDate(0, -1, 0), true),
			testLoan(12, 60_000, 12, 12, scoreNow.AddDate(0, -1, 0), true),
		}

		assert.Equal(t, 0, scorer.Score(customer, history, scoreNow))
	})

	t.Run("closed loans do not count toward overextension", func(t *testing.T) {
		customer := testCustomer(50000, 100_000)
		history := []model.Loan{
			testLoan(11, 500_000, 12, 12, scoreNow.AddDate(-2, 0, 0), false),
		}

		assert.NotEqual(t, 0, scorer.Score(customer, history, scoreNow))
	})

	t.Run("many poorly repaid loans score low", func(t *testing.T) {
		customer := testCustomer(50000, 100_000)
		start := scoreNow.AddDate(-3, 0, 0)
		var history []model.Loan
		for i := int64(0); i < 7; i++ {
			history = append(history, testLoan(20+i, 30_000, 12, 0, start, false))
		}

		// payment history 0, loan count 10, year activity 5, volume 5.
		assert.Equal(t, 20, scorer.Score(customer, history, scoreNow))
	})

	t.Run("partial payment history scales proportionally", func(t *testing.T) {
		customer := testCustomer(50000, 1_800_000)
		history := []model.Loan{
			testLoan(11, 30000, 24, 12, scoreNow.AddDate(-2, 0, 0), false),
		}

		// payment history 20 (12 of 24), loan count 20, year activity 5, volume 20.
		assert.Equal(t, 65, scorer.Score(customer, history, scoreNow))
	})
}
