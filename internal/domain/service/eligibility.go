package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Neshhin/credit-approval-system/internal/domain/model"
)

// Decision reasons carried on the result and in the create-loan response.
const (
	ReasonApproved       = "approved at the requested rate"
	ReasonRateCorrected  = "approved with interest rate corrected for credit tier"
	ReasonLowCreditScore = "credit score below approval threshold"
	ReasonEMIBurden      = "total EMI burden exceeds half of monthly salary"
)

var (
	halfSalaryRatio = decimal.NewFromFloat(0.5)
	rateFloorMid    = decimal.NewFromInt(12) // 30 < score <= 50
	rateFloorLow    = decimal.NewFromInt(16) // 10 < score <= 30
)

// EligibilityResult is the immutable outcome of a single evaluation.
type EligibilityResult struct {
	Approved           bool
	CreditScore        int
	RequestedRate      decimal.Decimal
	CorrectedRate      decimal.Decimal
	MonthlyInstallment decimal.Decimal
	Tenure             int
	Reason             string
}

// EligibilityChecker decides loan approval and the applied interest rate.
// Evaluate is a pure single-pass function of its inputs: it reads customer
// and loan state, never mutates anything, and is idempotent for unchanged
// inputs.
type EligibilityChecker struct {
	scorer *CreditScoreCalculator
}

// NewEligibilityChecker wires the score calculator.
func NewEligibilityChecker(scorer *CreditScoreCalculator) *EligibilityChecker {
	return &EligibilityChecker{scorer: scorer}
}

// Evaluate runs the decision function:
//
//  1. affordability gate: existing active EMIs plus the new EMI must not
//     exceed half the monthly salary; otherwise reject with the requested
//     rate echoed back untouched
//  2. score tiers: >50 approve as requested; 30<s<=50 approve with a 12%
//     rate floor; 10<s<=30 approve with a 16% rate floor; <=10 reject
//  3. the installment is recomputed at whichever rate applies
//
// Tier boundaries are exclusive below and inclusive above: a score of
// exactly 50 falls into the corrected-rate tier, not the top one.
func (e *EligibilityChecker) Evaluate(
	customer model.Customer,
	history []model.Loan,
	loanAmount, annualRate decimal.Decimal,
	tenureMonths int,
	now time.Time,
) (EligibilityResult, error) {
	if loanAmount.LessThanOrEqual(decimal.Zero) {
		return EligibilityResult{}, model.ErrInvalidLoanAmount
	}

	requestedEMI, err := model.ComputeEMI(loanAmount, annualRate, tenureMonths)
	if err != nil {
		return EligibilityResult{}, err
	}

	score := e.scorer.Score(customer, history, now)

	existingEMIs := decimal.Zero
	for _, loan := range history {
		if loan.IsActive() {
			existingEMIs = existingEMIs.Add(loan.MonthlyRepayment())
		}
	}

	maxAffordable := customer.MonthlySalary().Mul(halfSalaryRatio)
	if existingEMIs.Add(requestedEMI).GreaterThan(maxAffordable) {
		return EligibilityResult{
			Approved:           false,
			CreditScore:        score,
			RequestedRate:      annualRate,
			CorrectedRate:      annualRate,
			MonthlyInstallment: requestedEMI,
			Tenure:             tenureMonths,
			Reason:             ReasonEMIBurden,
		}, nil
	}

	approved := true
	corrected := annualRate
	reason := ReasonApproved

	switch {
	case score > 50:
		// requested rate stands
	case score > 30:
		if corrected.LessThan(rateFloorMid) {
			corrected = rateFloorMid
			reason = ReasonRateCorrected
		}
	case score > 10:
		if corrected.LessThan(rateFloorLow) {
			corrected = rateFloorLow
			reason = ReasonRateCorrected
		}
	default:
		approved = false
		reason = ReasonLowCreditScore
	}

	installment := requestedEMI
	if approved && !corrected.Equal(annualRate) {
		installment, err = model.ComputeEMI(loanAmount, corrected, tenureMonths)
		if err != nil {
			return EligibilityResult{}, err
		}
	}

	return EligibilityResult{
		Approved:           approved,
		CreditScore:        score,
		RequestedRate:      annualRate,
		CorrectedRate:      corrected,
		MonthlyInstallment: installment,
		Tenure:             tenureMonths,
		Reason:             reason,
	}, nil
}
