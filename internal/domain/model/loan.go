package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Loan aggregate root
// ---------------------------------------------------------------------------

// Loan is an immutable aggregate created exactly once at approval time.
// Repayment progress (emis_paid_on_time) is recorded by an external process;
// this service only reads it back. A zero id marks an unpersisted loan.
type Loan struct {
	id               int64
	customerID       int64
	loanAmount       decimal.Decimal
	interestRate     decimal.Decimal
	tenure           int
	monthlyRepayment decimal.Decimal
	emisPaidOnTime   int
	startDate        time.Time
	endDate          time.Time
	isActive         bool
	createdAt        time.Time
	updatedAt        time.Time
}

// NewLoan creates a loan for an approved decision. The interest rate and
// monthly repayment are the corrected values the decision produced. The loan
// starts today, ends tenure months later, and begins active with no EMIs
// paid.
func NewLoan(customerID int64, loanAmount, interestRate decimal.Decimal, tenureMonths int, monthlyRepayment decimal.Decimal, now time.Time) (Loan, error) {
	if customerID <= 0 {
		return Loan{}, ErrInvalidCustomerID
	}
	if loanAmount.LessThanOrEqual(decimal.Zero) {
		return Loan{}, ErrInvalidLoanAmount
	}
	if interestRate.IsNegative() {
		return Loan{}, ErrInvalidInterestRate
	}
	if tenureMonths <= 0 {
		return Loan{}, ErrInvalidTenure
	}

	start := now
	return Loan{
		customerID:       customerID,
		loanAmount:       loanAmount,
		interestRate:     interestRate,
		tenure:           tenureMonths,
		monthlyRepayment: monthlyRepayment,
		emisPaidOnTime:   0,
		startDate:        start,
		endDate:          start.AddDate(0, tenureMonths, 0),
		isActive:         true,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// ReconstructLoan rebuilds a Loan aggregate from persistence.
func ReconstructLoan(
	id, customerID int64,
	loanAmount, interestRate decimal.Decimal,
	tenure int,
	monthlyRepayment decimal.Decimal,
	emisPaidOnTime int,
	startDate, endDate time.Time,
	isActive bool,
	createdAt, updatedAt time.Time,
) Loan {
	return Loan{
		id:               id,
		customerID:       customerID,
		loanAmount:       loanAmount,
		interestRate:     interestRate,
		tenure:           tenure,
		monthlyRepayment: monthlyRepayment,
		emisPaidOnTime:   emisPaidOnTime,
		startDate:        startDate,
		endDate:          endDate,
		isActive:         isActive,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// WithID returns a copy carrying the database-assigned identity.
func (l Loan) WithID(id int64) Loan {
	next := l
	next.id = id
	return next
}

// ---------------------------------------------------------------------------
// Derived values (computed on demand, never persisted)
// ---------------------------------------------------------------------------

// EMIsLeft returns the number of installments still due.
func (l Loan) EMIsLeft() int {
	left := l.tenure - l.emisPaidOnTime
	if left < 0 {
		return 0
	}
	return left
}

// TotalAmountPaid returns the amount repaid so far.
func (l Loan) TotalAmountPaid() decimal.Decimal {
	return l.monthlyRepayment.Mul(decimal.NewFromInt(int64(l.emisPaidOnTime)))
}

// RemainingAmount returns the principal still outstanding against the
// original loan amount.
func (l Loan) RemainingAmount() decimal.Decimal {
	return l.loanAmount.Sub(l.TotalAmountPaid())
}

// StartedIn reports whether the loan started in the given calendar year.
func (l Loan) StartedIn(year int) bool {
	return l.startDate.Year() == year
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (l Loan) ID() int64                         { return l.id }
func (l Loan) CustomerID() int64                 { return l.customerID }
func (l Loan) LoanAmount() decimal.Decimal       { return l.loanAmount }
func (l Loan) InterestRate() decimal.Decimal     { return l.interestRate }
func (l Loan) Tenure() int                       { return l.tenure }
func (l Loan) MonthlyRepayment() decimal.Decimal { return l.monthlyRepayment }
func (l Loan) EMIsPaidOnTime() int               { return l.emisPaidOnTime }
func (l Loan) StartDate() time.Time              { return l.startDate }
func (l Loan) EndDate() time.Time                { return l.endDate }
func (l Loan) IsActive() bool                    { return l.isActive }
func (l Loan) CreatedAt() time.Time              { return l.createdAt }
func (l Loan) UpdatedAt() time.Time              { return l.updatedAt }
