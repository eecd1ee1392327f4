package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Neshhin/credit-approval-system/internal/domain/model"
	"github.com/Neshhin/credit-approval-system/internal/domain/port"
	pgshared "github.com/Neshhin/credit-approval-system/pkg/postgres"
)

// LoanRepo persists Loan aggregates in PostgreSQL.
type LoanRepo struct {
	pool *pgxpool.Pool
}

func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

const loanColumns = `loan_id, customer_id, loan_amount, interest_rate, tenure,
	monthly_repayment, emis_paid_on_time, start_date, end_date, is_active,
	created_at, updated_at`

// CreateApproved inserts an approved loan and raises the customer's current
// debt by the principal in a single transaction. The customer row is locked
// for the duration so concurrent approvals serialize on the debt update.
func (r *LoanRepo) CreateApproved(ctx context.Context, loan model.Loan) (model.Loan, error) {
	var persisted model.Loan

	err := pgshared.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var currentDebt decimal.Decimal
		err := tx.QueryRow(ctx,
			`SELECT current_debt FROM customers WHERE customer_id = $1 FOR UPDATE`,
			loan.CustomerID(),
		).Scan(&currentDebt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return port.ErrCustomerNotFound
			}
			return fmt.Errorf("lock customer %d: %w", loan.CustomerID(), err)
		}

		const insert = `
			INSERT INTO loans (
				customer_id, loan_amount, interest_rate, tenure,
				monthly_repayment, emis_paid_on_time,
				start_date, end_date, is_active,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING loan_id`

		var id int64
		err = tx.QueryRow(ctx, insert,
			loan.CustomerID(),
			loan.LoanAmount(),
			loan.InterestRate(),
			loan.Tenure(),
			loan.MonthlyRepayment(),
			loan.EMIsPaidOnTime(),
			loan.StartDate(),
			loan.EndDate(),
			loan.IsActive(),
			loan.CreatedAt(),
			loan.UpdatedAt(),
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert loan: %w", err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE customers
			 SET current_debt = current_debt + $1, updated_at = $2
			 WHERE customer_id = $3`,
			loan.LoanAmount(), loan.UpdatedAt(), loan.CustomerID(),
		)
		if err != nil {
			return fmt.Errorf("update customer debt: %w", err)
		}

		persisted = loan.WithID(id)
		return nil
	})
	if err != nil {
		return model.Loan{}, err
	}

	return persisted, nil
}

// FindByID loads a loan by identity.
func (r *LoanRepo) FindByID(ctx context.Context, id int64) (model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1`

	loan, err := scanLoan(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Loan{}, port.ErrLoanNotFound
		}
		return model.Loan{}, fmt.Errorf("find loan %d: %w", id, err)
	}
	return loan, nil
}

// FindByCustomerID returns the customer's full loan history, oldest first.
func (r *LoanRepo) FindByCustomerID(ctx context.Context, customerID int64) ([]model.Loan, error) {
	query := `SELECT ` + loanColumns + `
		FROM loans WHERE customer_id = $1 ORDER BY start_date, loan_id`

	return r.queryLoans(ctx, query, customerID)
}

// FindActiveByCustomerID returns only the customer's running loans.
func (r *LoanRepo) FindActiveByCustomerID(ctx context.Context, customerID int64) ([]model.Loan, error) {
	query := `SELECT ` + loanColumns + `
		FROM loans WHERE customer_id = $1 AND is_active ORDER BY start_date, loan_id`

	return r.queryLoans(ctx, query, customerID)
}

// DeactivateExpired marks loans whose end date has passed as inactive and
// returns how many rows changed.
func (r *LoanRepo) DeactivateExpired(ctx context.Context, asOf time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE loans SET is_active = FALSE, updated_at = $1
		 WHERE is_active AND end_date < $1`,
		asOf,
	)
	if err != nil {
		return 0, fmt.Errorf("deactivate expired loans: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *LoanRepo) queryLoans(ctx context.Context, query string, args ...any) ([]model.Loan, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var loans []model.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate loans: %w", err)
	}
	return loans, nil
}

func scanLoan(s scannable) (model.Loan, error) {
	var (
		id               int64
		customerID       int64
		loanAmount       decimal.Decimal
		interestRate     decimal.Decimal
		tenure           int
		monthlyRepayment decimal.Decimal
		emisPaidOnTime   int
		startDate        time.Time
		endDate          time.Time
		isActive         bool
		createdAt        time.Time
		updatedAt        time.Time
	)
	if err := s.Scan(
		&id, &customerID, &loanAmount, &interestRate, &tenure,
		&monthlyRepayment, &emisPaidOnTime, &startDate, &endDate, &isActive,
		&createdAt, &updatedAt,
	); err != nil {
		return model.Loan{}, err
	}

	return model.ReconstructLoan(
		id, customerID, loanAmount, interestRate, tenure,
		monthlyRepayment, emisPaidOnTime, startDate, endDate, isActive,
		createdAt, updatedAt,
	), nil
}
