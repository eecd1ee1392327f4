package usecase

import (
	"context"
	"fmt"

	"github.com/Neshhin/credit-approval-system/internal/application/dto"
	"github.com/Neshhin/credit-approval-system/internal/domain/port"
)

// ViewCustomerLoansUseCase lists a customer's currently active loans with
// derived repayment fields.
type ViewCustomerLoansUseCase struct {
	customers port.CustomerRepository
	loans     port.LoanRepository
}

// NewViewCustomerLoansUseCase wires dependencies.
func NewViewCustomerLoansUseCase(customers port.CustomerRepository, loans port.LoanRepository) *ViewCustomerLoansUseCase {
	return &ViewCustomerLoansUseCase{customers: customers, loans: loans}
}

// Execute lists active loans for the customer. An unknown customer is a
// not-found error, not an empty list.
func (uc *ViewCustomerLoansUseCase) Execute(ctx context.Context, customerID int64) ([]dto.CustomerLoanResponse, error) {
	if _, err := uc.customers.FindByID(ctx, customerID); err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}

	loans, err := uc.loans.FindActiveByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("load active loans: %w", err)
	}

	out := make([]dto.CustomerLoanResponse, 0, len(loans))
	for _, loan := range loans {
		out = append(out, dto.CustomerLoanResponse{
			LoanID:             loan.ID(),
			LoanAmount:         loan.LoanAmount(),
			InterestRate:       loan.InterestRate(),
			MonthlyInstallment: loan.MonthlyRepayment(),
			EMIsLeft:           loan.EMIsLeft(),
			RemainingAmount:    loan.RemainingAmount(),
		})
	}
	return out, nil
}
