// Package port declares the driven-adapter interfaces the engine depends on.
package port

import (
	"context"
	"errors"

	"github.com/Neshhin/credit-approval-system/internal/domain/event"
	"github.com/Neshhin/credit-approval-system/internal/domain/model"
)

// Not-found sentinels. These are request errors, distinct from business
// rejections (which are successful decisions with Approved=false).
var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrLoanNotFound     = errors.New("loan not found")

	// ErrDuplicatePhoneNumber reports a registration against a phone number
	// that already belongs to another customer.
	ErrDuplicatePhoneNumber = errors.New("phone number already registered")
)

// CustomerRepository persists and retrieves customers.
type CustomerRepository interface {
	// Create inserts a new customer and returns it with the assigned id.
	Create(ctx context.Context, customer model.Customer) (model.Customer, error)
	FindByID(ctx context.Context, id int64) (model.Customer, error)
}

// LoanRepository persists and retrieves loans.
type LoanRepository interface {
	// CreateApproved persists an approved loan and accrues the customer's
	// current debt by the principal in one atomic scope, serialized per
	// customer. It returns the loan with the assigned id.
	CreateApproved(ctx context.Context, loan model.Loan) (model.Loan, error)
	FindByID(ctx context.Context, id int64) (model.Loan, error)
	FindByCustomerID(ctx context.Context, customerID int64) ([]model.Loan, error)
	FindActiveByCustomerID(ctx context.Context, customerID int64) ([]model.Loan, error)
}

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
