package grpc

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Neshhin/credit-approval-system/internal/application/dto"
	"github.com/Neshhin/credit-approval-system/internal/application/usecase"
	"github.com/Neshhin/credit-approval-system/internal/domain/model"
	"github.com/Neshhin/credit-approval-system/internal/domain/port"
)

// CreditHandler exposes the credit approval operations over gRPC.
type CreditHandler struct {
	UnimplementedCreditServiceServer

	registerCustomer  *usecase.RegisterCustomerUseCase
	checkEligibility  *usecase.CheckEligibilityUseCase
	createLoan        *usecase.CreateLoanUseCase
	viewLoan          *usecase.ViewLoanUseCase
	viewCustomerLoans *usecase.ViewCustomerLoansUseCase
}

// NewCreditHandler creates a new handler with all use-case dependencies.
func NewCreditHandler(
	registerCustomer *usecase.RegisterCustomerUseCase,
	checkEligibility *usecase.CheckEligibilityUseCase,
	createLoan *usecase.CreateLoanUseCase,
	viewLoan *usecase.ViewLoanUseCase,
	viewCustomerLoans *usecase.ViewCustomerLoansUseCase,
) *CreditHandler {
	return &CreditHandler{
		registerCustomer:  registerCustomer,
		checkEligibility:  checkEligibility,
		createLoan:        createLoan,
		viewLoan:          viewLoan,
		viewCustomerLoans: viewCustomerLoans,
	}
}

// RegisterCustomer handles new customer registration.
func (h *CreditHandler) RegisterCustomer(ctx context.Context, req *RegisterCustomerRequest) (*RegisterCustomerResponse, error) {
	income, err := decimal.NewFromString(req.MonthlyIncome)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid monthly_income: %v", err)
	}

	resp, err := h.registerCustomer.Execute(ctx, dto.RegisterCustomerRequest{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Age:           req.Age,
		PhoneNumber:   req.PhoneNumber,
		MonthlyIncome: income,
	})
	if err != nil {
		return nil, statusFromError(err)
	}

	return &RegisterCustomerResponse{
		CustomerID:    resp.CustomerID,
		Name:          resp.Name,
		Age:           resp.Age,
		PhoneNumber:   resp.PhoneNumber,
		MonthlyIncome: resp.MonthlyIncome.StringFixed(2),
		ApprovedLimit: resp.ApprovedLimit.StringFixed(2),
	}, nil
}

// CheckEligibility evaluates a loan proposal without creating a loan.
func (h *CreditHandler) CheckEligibility(ctx context.Context, req *CheckEligibilityRequest) (*CheckEligibilityResponse, error) {
	loanReq, err := parseLoanRequest(req.CustomerID, req.LoanAmount, req.InterestRate, req.Tenure)
	if err != nil {
		return nil, err
	}

	resp, err := h.checkEligibility.Execute(ctx, loanReq)
	if err != nil {
		return nil, statusFromError(err)
	}

	return &CheckEligibilityResponse{
		CustomerID:            resp.CustomerID,
		Approval:              resp.Approval,
		InterestRate:          resp.InterestRate.String(),
		CorrectedInterestRate: resp.CorrectedInterestRate.String(),
		Tenure:                resp.Tenure,
		MonthlyInstallment:    resp.MonthlyInstallment.StringFixed(2),
		CreditScore:           resp.CreditScore,
	}, nil
}

// CreateLoan evaluates a loan proposal and persists it when approved.
func (h *CreditHandler) CreateLoan(ctx context.Context, req *CreateLoanRequest) (*CreateLoanResponse, error) {
	loanReq, err := parseLoanRequest(req.CustomerID, req.LoanAmount, req.InterestRate, req.Tenure)
	if err != nil {
		return nil, err
	}

	resp, err := h.createLoan.Execute(ctx, loanReq)
	if err != nil {
		return nil, statusFromError(err)
	}

	return &CreateLoanResponse{
		LoanID:             resp.LoanID,
		CustomerID:         resp.CustomerID,
		LoanApproved:       resp.LoanApproved,
		Message:            resp.Message,
		MonthlyInstallment: resp.MonthlyInstallment.StringFixed(2),
	}, nil
}

// GetLoan retrieves a single loan with its customer details.
func (h *CreditHandler) GetLoan(ctx context.Context, req *GetLoanRequest) (*GetLoanResponse, error) {
	resp, err := h.viewLoan.Execute(ctx, req.LoanID)
	if err != nil {
		return nil, statusFromError(err)
	}

	return &GetLoanResponse{
		LoanID: resp.LoanID,
		Customer: CustomerSummary{
			ID:          resp.Customer.ID,
			FirstName:   resp.Customer.FirstName,
			LastName:    resp.Customer.LastName,
			PhoneNumber: resp.Customer.PhoneNumber,
			Age:         resp.Customer.Age,
		},
		LoanAmount:         resp.LoanAmount.StringFixed(2),
		InterestRate:       resp.InterestRate.String(),
		MonthlyInstallment: resp.MonthlyInstallment.StringFixed(2),
		Tenure:             resp.Tenure,
		EMIsLeft:           resp.EMIsLeft,
		RemainingAmount:    resp.RemainingAmount.StringFixed(2),
	}, nil
}

// ListCustomerLoans retrieves a customer's active loans.
func (h *CreditHandler) ListCustomerLoans(ctx context.Context, req *ListCustomerLoansRequest) (*ListCustomerLoansResponse, error) {
	loans, err := h.viewCustomerLoans.Execute(ctx, req.CustomerID)
	if err != nil {
		return nil, statusFromError(err)
	}

	out := make([]CustomerLoan, 0, len(loans))
	for _, loan := range loans {
		out = append(out, CustomerLoan{
			LoanID:             loan.LoanID,
			LoanAmount:         loan.LoanAmount.StringFixed(2),
			InterestRate:       loan.InterestRate.String(),
			MonthlyInstallment: loan.MonthlyInstallment.StringFixed(2),
			EMIsLeft:           loan.EMIsLeft,
			RemainingAmount:    loan.RemainingAmount.StringFixed(2),
		})
	}

	return &ListCustomerLoansResponse{
		CustomerID: req.CustomerID,
		Loans:      out,
	}, nil
}

func parseLoanRequest(customerID int64, amount, rate string, tenure int) (dto.LoanRequest, error) {
	loanAmount, err := decimal.NewFromString(amount)
	if err != nil {
		return dto.LoanRequest{}, status.Errorf(codes.InvalidArgument, "invalid loan_amount: %v", err)
	}
	interestRate, err := decimal.NewFromString(rate)
	if err != nil {
		return dto.LoanRequest{}, status.Errorf(codes.InvalidArgument, "invalid interest_rate: %v", err)
	}

	return dto.LoanRequest{
		CustomerID:   customerID,
		LoanAmount:   loanAmount,
		InterestRate: interestRate,
		Tenure:       tenure,
	}, nil
}

// statusFromError maps domain errors onto gRPC status codes.
func statusFromError(err error) error {
	switch {
	case errors.Is(err, port.ErrCustomerNotFound),
		errors.Is(err, port.ErrLoanNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, port.ErrDuplicatePhoneNumber):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, model.ErrInvalidTenure),
		errors.Is(err, model.ErrInvalidLoanAmount),
		errors.Is(err, model.ErrInvalidInterestRate),
		errors.Is(err, model.ErrInvalidSalary),
		errors.Is(err, model.ErrInvalidAge),
		errors.Is(err, model.ErrInvalidName),
		errors.Is(err, model.ErrInvalidPhoneNumber),
		errors.Is(err, model.ErrInvalidCustomerID):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
