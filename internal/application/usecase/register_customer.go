// Package usecase orchestrates the domain engines, repositories and event
// publishing, one use case per externally visible operation.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Neshhin/credit-approval-system/internal/application/dto"
	"github.com/Neshhin/credit-approval-system/internal/domain/event"
	"github.com/Neshhin/credit-approval-system/internal/domain/model"
	"github.com/Neshhin/credit-approval-system/internal/domain/port"
)

// RegisterCustomerUseCase creates a customer with a salary-derived approved
// limit.
type RegisterCustomerUseCase struct {
	customers port.CustomerRepository
	publisher port.EventPublisher
}

// NewRegisterCustomerUseCase wires dependencies.
func NewRegisterCustomerUseCase(customers port.CustomerRepository, publisher port.EventPublisher) *RegisterCustomerUseCase {
	return &RegisterCustomerUseCase{customers: customers, publisher: publisher}
}

// Execute registers a new customer and publishes the registration event.
func (uc *RegisterCustomerUseCase) Execute(ctx context.Context, req dto.RegisterCustomerRequest) (dto.CustomerResponse, error) {
	now := time.Now().UTC()

	customer, err := model.NewCustomer(req.FirstName, req.LastName, req.Age, req.PhoneNumber, req.MonthlyIncome, now)
	if err != nil {
		return dto.CustomerResponse{}, fmt.Errorf("create customer: %w", err)
	}

	customer, err = uc.customers.Create(ctx, customer)
	if err != nil {
		return dto.CustomerResponse{}, fmt.Errorf("save customer: %w", err)
	}

	registered := event.NewCustomerRegistered(
		customer.ID(), customer.FirstName(), customer.LastName(),
		customer.PhoneNumber(), customer.MonthlySalary(), customer.ApprovedLimit(),
	)
	if err := uc.publisher.Publish(ctx, registered); err != nil {
		return dto.CustomerResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.CustomerResponse{
		CustomerID:    customer.ID(),
		Name:          customer.FirstName() + " " + customer.LastName(),
		Age:           customer.Age(),
		PhoneNumber:   customer.PhoneNumber(),
		MonthlyIncome: customer.MonthlySalary(),
		ApprovedLimit: customer.ApprovedLimit(),
	}, nil
}
