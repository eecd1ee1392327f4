package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neshhin/credit-approval-system/internal/application/dto"
	"github.com/Neshhin/credit-approval-system/internal/application/usecase"
	"github.com/Neshhin/credit-approval-system/internal/domain/event"
	"github.com/Neshhin/credit-approval-system/internal/domain/model"
)

func validRegisterRequest() dto.RegisterCustomerRequest {
	return dto.RegisterCustomerRequest{
		FirstName:     "Asha",
		LastName:      "Verma",
		Age:           32,
		PhoneNumber:   "9876543210",
		MonthlyIncome: decimal.NewFromInt(50000),
	}
}

func TestRegisterCustomer_Execute(t *testing.T) {
	t.Run("registers a customer with a derived approved limit", func(t *testing.T) {
		customers := &mockCustomerRepository{}
		publisher := &mockEventPublisher{}
		uc := usecase.NewRegisterCustomerUseCase(customers, publisher)

		resp, err := uc.Execute(context.Background(), validRegisterRequest())

		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.CustomerID)
		assert.Equal(t, "Asha Verma", resp.Name)
		assert.True(t, resp.ApprovedLimit.Equal(decimal.NewFromInt(1_800_000)))

		require.Len(t, customers.savedCustomers, 1)
		require.Len(t, publisher.publishedEvents, 1)
		registered, ok := publisher.publishedEvents[0].(event.CustomerRegistered)
		require.True(t, ok)
		assert.Equal(t, "credit.customer.registered", registered.EventType())
		assert.Equal(t, "1", registered.AggregateID())
	})

	t.Run("fails with invalid customer data", func(t *testing.T) {
		customers := &mockCustomerRepository{}
		publisher := &mockEventPublisher{}
		uc := usecase.NewRegisterCustomerUseCase(customers, publisher)

		req := validRegisterRequest()
		req.Age = 12
		_, err := uc.Execute(context.Background(), req)

		require.ErrorIs(t, err, model.ErrInvalidAge)
		assert.Empty(t, customers.savedCustomers)
		assert.Empty(t, publisher.publishedEvents)
	})

	t.Run("fails when repository create fails", func(t *testing.T) {
		customers := &mockCustomerRepository{
			createFunc: func(_ context.Context, _ model.Customer) (model.Customer, error) {
				return model.Customer{}, fmt.Errorf("database unavailable")
			},
		}
		publisher := &mockEventPublisher{}
		uc := usecase.NewRegisterCustomerUseCase(customers, publisher)

		_, err := uc.Execute(context.Background(), validRegisterRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "save customer")
	})

	t.Run("fails when event publishing fails", func(t *testing.T) {
		customers := &mockCustomerRepository{}
		publisher := &mockEventPublisher{
			publishFunc: func(_ context.Context, _ ...event.DomainEvent) error {
				return fmt.Errorf("kafka unavailable")
			},
		}
		uc := usecase.NewRegisterCustomerUseCase(customers, publisher)

		_, err := uc.Execute(context.Background(), validRegisterRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "publish events")
	})
}
