package usecase

import (
	"context"
	"fmt"

	"github.com/Neshhin/credit-approval-system/internal/application/dto"
	"github.com/Neshhin/credit-approval-system/internal/domain/port"
)

// ViewLoanUseCase returns the detail view of a single loan, including the
// customer summary and derived repayment fields.
type ViewLoanUseCase struct {
	loans     port.LoanRepository
	customers port.CustomerRepository
}

// NewViewLoanUseCase wires dependencies.
func NewViewLoanUseCase(loans port.LoanRepository, customers port.CustomerRepository) *ViewLoanUseCase {
	return &ViewLoanUseCase{loans: loans, customers: customers}
}

// Execute retrieves the loan and its customer.
func (uc *ViewLoanUseCase) Execute(ctx context.Context, loanID int64) (dto.LoanDetailResponse, error) {
	loan, err := uc.loans.FindByID(ctx, loanID)
	if err != nil {
		return dto.LoanDetailResponse{}, fmt.Errorf("find loan: %w", err)
	}

	customer, err := uc.customers.FindByID(ctx, loan.CustomerID())
	if err != nil {
		return dto.LoanDetailResponse{}, fmt.Errorf("find customer: %w", err)
	}

	return dto.LoanDetailResponse{
		LoanID: loan.ID(),
		Customer: dto.CustomerSummary{
			ID:          customer.ID(),
			FirstName:   customer.FirstName(),
			LastName:    customer.LastName(),
			PhoneNumber: customer.PhoneNumber(),
			Age:         customer.Age(),
		},
		LoanAmount:         loan.LoanAmount(),
		InterestRate:       loan.InterestRate(),
		MonthlyInstallment: loan.MonthlyRepayment(),
		Tenure:             loan.Tenure(),
		EMIsLeft:           loan.EMIsLeft(),
		RemainingAmount:    loan.RemainingAmount(),
	}, nil
}
