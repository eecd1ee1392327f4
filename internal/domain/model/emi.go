package model

import (
	"github.com/shopspring/decimal"
)

var (
	one  = decimal.NewFromInt(1)
	lakh = decimal.NewFromInt(100_000)
)

// ComputeEMI returns the fixed monthly installment for a loan using the
// standard amortization formula
//
//	emi = P * r * (1+r)^n / ((1+r)^n - 1)
//
// where r is the monthly rate (annual percent / 12 / 100) and n the tenure in
// months. A zero interest rate degrades to an even split of the principal.
// All arithmetic stays in decimal; the result is rounded to 2 fractional
// digits, ties away from zero.
func ComputeEMI(principal, annualRatePercent decimal.Decimal, tenureMonths int) (decimal.Decimal, error) {
	if tenureMonths <= 0 {
		return decimal.Decimal{}, ErrInvalidTenure
	}
	if principal.IsNegative() {
		return decimal.Decimal{}, ErrInvalidLoanAmount
	}
	if annualRatePercent.IsNegative() {
		return decimal.Decimal{}, ErrInvalidInterestRate
	}

	n := decimal.NewFromInt(int64(tenureMonths))
	if annualRatePercent.IsZero() {
		return principal.Div(n).Round(2), nil
	}

	r := annualRatePercent.Div(decimal.NewFromInt(1200))
	factor := one.Add(r).Pow(n)
	emi := principal.Mul(r).Mul(factor).Div(factor.Sub(one))
	return emi.Round(2), nil
}

// RoundToNearestLakh rounds a currency amount to the nearest multiple of
// 100,000, ties away from zero. Used to derive a customer's approved limit
// from 36x their monthly salary.
func RoundToNearestLakh(amount decimal.Decimal) decimal.Decimal {
	return amount.Div(lakh).Round(0).Mul(lakh)
}
