package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Neshhin/credit-approval-system/internal/application/dto"
	"github.com/Neshhin/credit-approval-system/internal/domain/port"
	"github.com/Neshhin/credit-approval-system/internal/domain/service"
)

// CheckEligibilityUseCase evaluates a proposed loan without persisting
// anything. Safe to call repeatedly; it reads a snapshot of the customer's
// loan history with no locking.
type CheckEligibilityUseCase struct {
	customers port.CustomerRepository
	loans     port.LoanRepository
	checker   *service.EligibilityChecker
}

// NewCheckEligibilityUseCase wires dependencies.
func NewCheckEligibilityUseCase(
	customers port.CustomerRepository,
	loans port.LoanRepository,
	checker *service.EligibilityChecker,
) *CheckEligibilityUseCase {
	return &CheckEligibilityUseCase{customers: customers, loans: loans, checker: checker}
}

// Execute runs the decision engine for the requested loan.
func (uc *CheckEligibilityUseCase) Execute(ctx context.Context, req dto.LoanRequest) (dto.EligibilityResponse, error) {
	customer, err := uc.customers.FindByID(ctx, req.CustomerID)
	if err != nil {
		return dto.EligibilityResponse{}, fmt.Errorf("find customer: %w", err)
	}

	history, err := uc.loans.FindByCustomerID(ctx, req.CustomerID)
	if err != nil {
		return dto.EligibilityResponse{}, fmt.Errorf("load loan history: %w", err)
	}

	result, err := uc.checker.Evaluate(customer, history, req.LoanAmount, req.InterestRate, req.Tenure, time.Now().UTC())
	if err != nil {
		return dto.EligibilityResponse{}, fmt.Errorf("evaluate eligibility: %w", err)
	}

	return dto.EligibilityResponse{
		CustomerID:            customer.ID(),
		Approval:              result.Approved,
		InterestRate:          result.RequestedRate,
		CorrectedInterestRate: result.CorrectedRate,
		Tenure:                result.Tenure,
		MonthlyInstallment:    result.MonthlyInstallment,
		CreditScore:           result.CreditScore,
	}, nil
}
