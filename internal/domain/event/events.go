// Package event defines the domain events this service publishes.
package event

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/Neshhin/credit-approval-system/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// CustomerRegistered is raised when a new customer is registered.
type CustomerRegistered struct {
	events.BaseEvent
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	PhoneNumber   string          `json:"phone_number"`
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
	ApprovedLimit decimal.Decimal `json:"approved_limit"`
}

func NewCustomerRegistered(
	customerID int64,
	firstName, lastName, phoneNumber string,
	monthlySalary, approvedLimit decimal.Decimal,
) CustomerRegistered {
	return CustomerRegistered{
		BaseEvent:     events.NewBaseEvent("credit.customer.registered", formatID(customerID), "Customer"),
		FirstName:     firstName,
		LastName:      lastName,
		PhoneNumber:   phoneNumber,
		MonthlySalary: monthlySalary,
		ApprovedLimit: approvedLimit,
	}
}

// LoanApproved is raised when a loan is approved and persisted.
type LoanApproved struct {
	events.BaseEvent
	CustomerID         int64           `json:"customer_id"`
	LoanAmount         decimal.Decimal `json:"loan_amount"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	TenureMonths       int             `json:"tenure_months"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	CreditScore        int             `json:"credit_score"`
}

func NewLoanApproved(
	loanID, customerID int64,
	loanAmount, interestRate decimal.Decimal,
	tenureMonths int,
	monthlyInstallment decimal.Decimal,
	creditScore int,
) LoanApproved {
	return LoanApproved{
		BaseEvent:          events.NewBaseEvent("credit.loan.approved", formatID(loanID), "Loan"),
		CustomerID:         customerID,
		LoanAmount:         loanAmount,
		InterestRate:       interestRate,
		TenureMonths:       tenureMonths,
		MonthlyInstallment: monthlyInstallment,
		CreditScore:        creditScore,
	}
}

// LoanRejected is raised when a create-loan request is declined. A rejection
// is a normal decision, not an error; nothing is persisted for it, so the
// event is keyed by the customer.
type LoanRejected struct {
	events.BaseEvent
	CustomerID  int64           `json:"customer_id"`
	LoanAmount  decimal.Decimal `json:"loan_amount"`
	CreditScore int             `json:"credit_score"`
	Reason      string          `json:"reason"`
}

func NewLoanRejected(
	customerID int64,
	loanAmount decimal.Decimal,
	creditScore int,
	reason string,
) LoanRejected {
	return LoanRejected{
		BaseEvent:   events.NewBaseEvent("credit.loan.rejected", formatID(customerID), "Customer"),
		CustomerID:  customerID,
		LoanAmount:  loanAmount,
		CreditScore: creditScore,
		Reason:      reason,
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
