// Package postgres implements the domain repository ports on pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Neshhin/credit-approval-system/internal/domain/model"
	"github.com/Neshhin/credit-approval-system/internal/domain/port"
)

// scannable is satisfied by both pgx.Row and pgx.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// CustomerRepo persists Customer aggregates in PostgreSQL.
type CustomerRepo struct {
	pool *pgxpool.Pool
}

func NewCustomerRepo(pool *pgxpool.Pool) *CustomerRepo {
	return &CustomerRepo{pool: pool}
}

const customerColumns = `customer_id, first_name, last_name, age, phone_number,
	monthly_salary, approved_limit, current_debt, created_at, updated_at`

// Create inserts the customer and returns a copy carrying the database
// assigned identity.
func (r *CustomerRepo) Create(ctx context.Context, customer model.Customer) (model.Customer, error) {
	const query = `
		INSERT INTO customers (
			first_name, last_name, age, phone_number,
			monthly_salary, approved_limit, current_debt,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING customer_id`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		customer.FirstName(),
		customer.LastName(),
		customer.Age(),
		customer.PhoneNumber(),
		customer.MonthlySalary(),
		customer.ApprovedLimit(),
		customer.CurrentDebt(),
		customer.CreatedAt(),
		customer.UpdatedAt(),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			// phone_number carries the only unique constraint a fresh
			// insert can hit, since ids are generated by the database.
			return model.Customer{}, port.ErrDuplicatePhoneNumber
		}
		return model.Customer{}, fmt.Errorf("insert customer: %w", err)
	}

	return customer.WithID(id), nil
}

// FindByID loads a customer by identity.
func (r *CustomerRepo) FindByID(ctx context.Context, id int64) (model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1`

	customer, err := scanCustomer(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Customer{}, port.ErrCustomerNotFound
		}
		return model.Customer{}, fmt.Errorf("find customer %d: %w", id, err)
	}
	return customer, nil
}

func scanCustomer(s scannable) (model.Customer, error) {
	var (
		id            int64
		firstName     string
		lastName      string
		age           int
		phoneNumber   string
		monthlySalary decimal.Decimal
		approvedLimit decimal.Decimal
		currentDebt   decimal.Decimal
		createdAt     time.Time
		updatedAt     time.Time
	)
	if err := s.Scan(
		&id, &firstName, &lastName, &age, &phoneNumber,
		&monthlySalary, &approvedLimit, &currentDebt,
		&createdAt, &updatedAt,
	); err != nil {
		return model.Customer{}, err
	}

	return model.ReconstructCustomer(
		id, firstName, lastName, age, phoneNumber,
		monthlySalary, approvedLimit, currentDebt,
		createdAt, updatedAt,
	), nil
}

// uniqueViolation is the Postgres error code for unique_violation.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
