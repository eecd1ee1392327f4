package usecase_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Neshhin/credit-approval-system/internal/domain/event"
	"github.com/Neshhin/credit-approval-system/internal/domain/model"
	"github.com/Neshhin/credit-approval-system/internal/domain/port"
)

// --- Mock implementations ---

type mockCustomerRepository struct {
	createFunc     func(ctx context.Context, customer model.Customer) (model.Customer, error)
	findByIDFunc   func(ctx context.Context, id int64) (model.Customer, error)
	savedCustomers []model.Customer
}

func (m *mockCustomerRepository) Create(ctx context.Context, customer model.Customer) (model.Customer, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, customer)
	}
	persisted := customer.WithID(int64(len(m.savedCustomers) + 1))
	m.savedCustomers = append(m.savedCustomers, persisted)
	return persisted, nil
}

func (m *mockCustomerRepository) FindByID(ctx context.Context, id int64) (model.Customer, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Customer{}, port.ErrCustomerNotFound
}

type mockLoanRepository struct {
	createApprovedFunc func(ctx context.Context, loan model.Loan) (model.Loan, error)
	findByIDFunc       func(ctx context.Context, id int64) (model.Loan, error)
	historyFunc        func(ctx context.Context, customerID int64) ([]model.Loan, error)
	activeFunc         func(ctx context.Context, customerID int64) ([]model.Loan, error)
	savedLoans         []model.Loan
}

func (m *mockLoanRepository) CreateApproved(ctx context.Context, loan model.Loan) (model.Loan, error) {
	if m.createApprovedFunc != nil {
		return m.createApprovedFunc(ctx, loan)
	}
	persisted := loan.WithID(int64(len(m.savedLoans) + 1))
	m.savedLoans = append(m.savedLoans, persisted)
	return persisted, nil
}

func (m *mockLoanRepository) FindByID(ctx context.Context, id int64) (model.Loan, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Loan{}, port.ErrLoanNotFound
}

func (m *mockLoanRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]model.Loan, error) {
	if m.historyFunc != nil {
		return m.historyFunc(ctx, customerID)
	}
	return nil, nil
}

func (m *mockLoanRepository) FindActiveByCustomerID(ctx context.Context, customerID int64) ([]model.Loan, error) {
	if m.activeFunc != nil {
		return m.activeFunc(ctx, customerID)
	}
	return nil, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

// --- Shared fixtures ---

func existingCustomer(id, salary, approvedLimit int64) model.Customer {
	t0 := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	return model.ReconstructCustomer(
		id, "Asha", "Verma", 32, "9876543210",
		decimal.NewFromInt(salary), decimal.NewFromInt(approvedLimit), decimal.Zero,
		t0, t0,
	)
}

func existingLoan(id, customerID, amount int64, tenure, paidOnTime int, start time.Time, active bool) model.Loan {
	return model.ReconstructLoan(
		id, customerID,
		decimal.NewFromInt(amount), decimal.NewFromInt(10),
		tenure,
		decimal.NewFromInt(amount/int64(tenure)),
		paidOnTime,
		start, start.AddDate(0, tenure, 0),
		active,
		start, start,
	)
}
