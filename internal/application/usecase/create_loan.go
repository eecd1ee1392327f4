package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Neshhin/credit-approval-system/internal/application/dto"
	"github.com/Neshhin/credit-approval-system/internal/domain/event"
	"github.com/Neshhin/credit-approval-system/internal/domain/model"
	"github.com/Neshhin/credit-approval-system/internal/domain/port"
	"github.com/Neshhin/credit-approval-system/internal/domain/service"
)

// CreateLoanUseCase evaluates a proposed loan and, when approved, persists it
// at the corrected rate and accrues the customer's debt. The write side goes
// through LoanRepository.CreateApproved, which commits the loan insert and
// the debt update atomically and serialized per customer; concurrent
// approvals for the same customer cannot both commit against the same
// pre-update debt.
type CreateLoanUseCase struct {
	customers port.CustomerRepository
	loans     port.LoanRepository
	checker   *service.EligibilityChecker
	publisher port.EventPublisher
}

// NewCreateLoanUseCase wires dependencies.
func NewCreateLoanUseCase(
	customers port.CustomerRepository,
	loans port.LoanRepository,
	checker *service.EligibilityChecker,
	publisher port.EventPublisher,
) *CreateLoanUseCase {
	return &CreateLoanUseCase{customers: customers, loans: loans, checker: checker, publisher: publisher}
}

// Execute decides the loan and persists it when approved. A rejection is a
// successful outcome: the response carries a nil loan id, the reason, and the
// installment computed at the requested rate, with nothing persisted.
func (uc *CreateLoanUseCase) Execute(ctx context.Context, req dto.LoanRequest) (dto.CreateLoanResponse, error) {
	now := time.Now().UTC()

	customer, err := uc.customers.FindByID(ctx, req.CustomerID)
	if err != nil {
		return dto.CreateLoanResponse{}, fmt.Errorf("find customer: %w", err)
	}

	history, err := uc.loans.FindByCustomerID(ctx, req.CustomerID)
	if err != nil {
		return dto.CreateLoanResponse{}, fmt.Errorf("load loan history: %w", err)
	}

	result, err := uc.checker.Evaluate(customer, history, req.LoanAmount, req.InterestRate, req.Tenure, now)
	if err != nil {
		return dto.CreateLoanResponse{}, fmt.Errorf("evaluate eligibility: %w", err)
	}

	if !result.Approved {
		rejected := event.NewLoanRejected(customer.ID(), req.LoanAmount, result.CreditScore, result.Reason)
		if err := uc.publisher.Publish(ctx, rejected); err != nil {
			return dto.CreateLoanResponse{}, fmt.Errorf("publish events: %w", err)
		}
		return dto.CreateLoanResponse{
			LoanID:             nil,
			CustomerID:         customer.ID(),
			LoanApproved:       false,
			Message:            "loan not approved: " + result.Reason,
			MonthlyInstallment: result.MonthlyInstallment,
		}, nil
	}

	loan, err := model.NewLoan(customer.ID(), req.LoanAmount, result.CorrectedRate, result.Tenure, result.MonthlyInstallment, now)
	if err != nil {
		return dto.CreateLoanResponse{}, fmt.Errorf("create loan: %w", err)
	}

	loan, err = uc.loans.CreateApproved(ctx, loan)
	if err != nil {
		return dto.CreateLoanResponse{}, fmt.Errorf("save loan: %w", err)
	}

	approved := event.NewLoanApproved(
		loan.ID(), loan.CustomerID(), loan.LoanAmount(), loan.InterestRate(),
		loan.Tenure(), loan.MonthlyRepayment(), result.CreditScore,
	)
	if err := uc.publisher.Publish(ctx, approved); err != nil {
		return dto.CreateLoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	loanID := loan.ID()
	return dto.CreateLoanResponse{
		LoanID:             &loanID,
		CustomerID:         loan.CustomerID(),
		LoanApproved:       true,
		Message:            "loan approved",
		MonthlyInstallment: loan.MonthlyRepayment(),
	}, nil
}
