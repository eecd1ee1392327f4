// Package service holds the pure decision engines: credit scoring and loan
// eligibility.
package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Neshhin/credit-approval-system/internal/domain/model"
)

// CreditScoreCalculator derives an integer credit score in [0,100] from a
// customer's loan history. The component weights form a fixed policy table;
// the approval tiers downstream depend on these exact thresholds.
type CreditScoreCalculator struct{}

// NewCreditScoreCalculator returns a new calculator instance.
func NewCreditScoreCalculator() *CreditScoreCalculator {
	return &CreditScoreCalculator{}
}

// Score computes the credit score for a customer over their full loan
// history (active and closed). When the principal of currently active loans
// exceeds the approved limit the score is 0 regardless of anything else.
//
// Components:
//
//	payment history        0-40  (EMIs paid on time vs total EMIs)
//	number of loans        0-20
//	current-year activity  5-20  (loans started in now's calendar year)
//	volume vs limit        5-20
func (c *CreditScoreCalculator) Score(customer model.Customer, history []model.Loan, now time.Time) int {
	if c.exceedsApprovedLimit(customer, history) {
		return 0
	}

	score := c.scorePaymentHistory(history)
	score += c.scoreLoanCount(len(history))
	score += c.scoreCurrentYearActivity(history, now.Year())
	score += c.scoreLoanVolume(customer, history)

	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// exceedsApprovedLimit is the hard overextension cutoff: principal of active
// loans above the approved limit.
func (c *CreditScoreCalculator) exceedsApprovedLimit(customer model.Customer, history []model.Loan) bool {
	active := decimal.Zero
	for _, loan := range history {
		if loan.IsActive() {
			active = active.Add(loan.LoanAmount())
		}
	}
	return active.GreaterThan(customer.ApprovedLimit())
}

func (c *CreditScoreCalculator) scorePaymentHistory(history []model.Loan) int {
	if len(history) == 0 {
		return 20 // new customer, neutral
	}

	var totalEMIs, paidOnTime int64
	for _, loan := range history {
		totalEMIs += int64(loan.Tenure())
		paidOnTime += int64(loan.EMIsPaidOnTime())
	}
	if totalEMIs == 0 {
		return 20
	}

	ratio := decimal.NewFromInt(paidOnTime).Div(decimal.NewFromInt(totalEMIs))
	return int(ratio.Mul(decimal.NewFromInt(40)).Round(0).IntPart())
}

func (c *CreditScoreCalculator) scoreLoanCount(count int) int {
	switch {
	case count == 0:
		return 10
	case count <= 3:
		return 20
	case count <= 6:
		return 15
	default:
		return 10 // too many loans
	}
}

func (c *CreditScoreCalculator) scoreCurrentYearActivity(history []model.Loan, year int) int {
	count := 0
	for _, loan := range history {
		if loan.StartedIn(year) {
			count++
		}
	}

	switch {
	case count == 0:
		return 5
	case count <= 2:
		return 20
	case count <= 4:
		return 15
	default:
		return 10
	}
}

func (c *CreditScoreCalculator) scoreLoanVolume(customer model.Customer, history []model.Loan) int {
	if customer.ApprovedLimit().IsZero() {
		return 10
	}

	total := decimal.Zero
	for _, loan := range history {
		total = total.Add(loan.LoanAmount())
	}
	ratio := total.Div(customer.ApprovedLimit())

	switch {
	case ratio.LessThan(decimal.NewFromFloat(0.5)):
		return 20
	case ratio.LessThan(decimal.NewFromInt(1)):
		return 15
	case ratio.LessThan(decimal.NewFromInt(2)):
		return 10
	default:
		return 5
	}
}
