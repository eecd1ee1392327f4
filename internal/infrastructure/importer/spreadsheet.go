// Package importer loads historical customer and loan data from xlsx
// workbooks into PostgreSQL.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ImportStats summarizes one import run.
type ImportStats struct {
	Created int
	Skipped int
}

// SpreadsheetImporter imports seed data. Imports are idempotent: rows whose
// id already exists are skipped, so re-running on the same workbook is safe.
type SpreadsheetImporter struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewSpreadsheetImporter(pool *pgxpool.Pool, logger *slog.Logger) *SpreadsheetImporter {
	return &SpreadsheetImporter{pool: pool, logger: logger}
}

// customerRow mirrors one row of the customer workbook.
type customerRow struct {
	CustomerID    int64
	FirstName     string
	LastName      string
	PhoneNumber   string
	MonthlySalary decimal.Decimal
	ApprovedLimit decimal.Decimal
	CurrentDebt   decimal.Decimal
}

// loanRow mirrors one row of the loan workbook.
type loanRow struct {
	CustomerID       int64
	LoanID           int64
	LoanAmount       decimal.Decimal
	Tenure           int
	InterestRate     decimal.Decimal
	MonthlyRepayment decimal.Decimal
	EMIsPaidOnTime   int
	StartDate        time.Time
	EndDate          time.Time
}

// ImportCustomers reads the customer workbook and inserts each row.
func (i *SpreadsheetImporter) ImportCustomers(ctx context.Context, path string) (ImportStats, error) {
	rows, err := readRows(path)
	if err != nil {
		return ImportStats{}, err
	}

	var stats ImportStats
	now := time.Now().UTC()
	for idx, row := range rows {
		customer, err := parseCustomerRow(row)
		if err != nil {
			i.logger.WarnContext(ctx, "skipping customer row",
				slog.Int("row", idx+2), slog.String("error", err.Error()))
			stats.Skipped++
			continue
		}

		tag, err := i.pool.Exec(ctx,
			`INSERT INTO customers (
				customer_id, first_name, last_name, age, phone_number,
				monthly_salary, approved_limit, current_debt,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
			ON CONFLICT (customer_id) DO NOTHING`,
			customer.CustomerID, customer.FirstName, customer.LastName,
			defaultImportAge, customer.PhoneNumber,
			customer.MonthlySalary, customer.ApprovedLimit, customer.CurrentDebt,
			now,
		)
		if err != nil {
			return stats, fmt.Errorf("insert customer %d: %w", customer.CustomerID, err)
		}
		if tag.RowsAffected() == 0 {
			stats.Skipped++
		} else {
			stats.Created++
		}
	}

	i.logger.InfoContext(ctx, "customer import finished",
		slog.Int("created", stats.Created), slog.Int("skipped", stats.Skipped))
	return stats, nil
}

// ImportLoans reads the loan workbook and inserts each row. Rows referencing
// an unknown customer are skipped with a warning rather than failing the run.
func (i *SpreadsheetImporter) ImportLoans(ctx context.Context, path string) (ImportStats, error) {
	rows, err := readRows(path)
	if err != nil {
		return ImportStats{}, err
	}

	var stats ImportStats
	now := time.Now().UTC()
	for idx, row := range rows {
		loan, err := parseLoanRow(row, now)
		if err != nil {
			i.logger.WarnContext(ctx, "skipping loan row",
				slog.Int("row", idx+2), slog.String("error", err.Error()))
			stats.Skipped++
			continue
		}

		var exists bool
		err = i.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM customers WHERE customer_id = $1)`,
			loan.CustomerID,
		).Scan(&exists)
		if err != nil {
			return stats, fmt.Errorf("check customer %d: %w", loan.CustomerID, err)
		}
		if !exists {
			i.logger.WarnContext(ctx, "skipping loan for unknown customer",
				slog.Int64("loan_id", loan.LoanID),
				slog.Int64("customer_id", loan.CustomerID))
			stats.Skipped++
			continue
		}

		tag, err := i.pool.Exec(ctx,
			`INSERT INTO loans (
				loan_id, customer_id, loan_amount, interest_rate, tenure,
				monthly_repayment, emis_paid_on_time,
				start_date, end_date, is_active,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
			ON CONFLICT (loan_id) DO NOTHING`,
			loan.LoanID, loan.CustomerID, loan.LoanAmount, loan.InterestRate,
			loan.Tenure, loan.MonthlyRepayment, loan.EMIsPaidOnTime,
			loan.StartDate, loan.EndDate, loan.EndDate.After(now),
			now,
		)
		if err != nil {
			return stats, fmt.Errorf("insert loan %d: %w", loan.LoanID, err)
		}
		if tag.RowsAffected() == 0 {
			stats.Skipped++
		} else {
			stats.Created++
		}
	}

	i.logger.InfoContext(ctx, "loan import finished",
		slog.Int("created", stats.Created), slog.Int("skipped", stats.Skipped))
	return stats, nil
}

// ResetSequences advances the identity sequences past the highest imported
// id so later registrations do not collide with imported rows.
func (i *SpreadsheetImporter) ResetSequences(ctx context.Context) error {
	statements := []string{
		`SELECT setval(pg_get_serial_sequence('customers', 'customer_id'),
			GREATEST((SELECT COALESCE(MAX(customer_id), 0) FROM customers), 1))`,
		`SELECT setval(pg_get_serial_sequence('loans', 'loan_id'),
			GREATEST((SELECT COALESCE(MAX(loan_id), 0) FROM loans), 1))`,
	}
	for _, stmt := range statements {
		if _, err := i.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("reset sequence: %w", err)
		}
	}
	return nil
}

// Historical workbooks carry no age column; registration enforces age, the
// import backfills a placeholder.
const defaultImportAge = 30

func readRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read workbook %s: %w", path, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil // drop header row
}

func parseCustomerRow(row []string) (customerRow, error) {
	if len(row) < 7 {
		return customerRow{}, fmt.Errorf("expected 7 columns, got %d", len(row))
	}

	id, err := strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64)
	if err != nil {
		return customerRow{}, fmt.Errorf("customer_id: %w", err)
	}
	salary, err := parseAmount(row[4])
	if err != nil {
		return customerRow{}, fmt.Errorf("monthly_salary: %w", err)
	}
	limit, err := parseAmount(row[5])
	if err != nil {
		return customerRow{}, fmt.Errorf("approved_limit: %w", err)
	}
	debt, err := parseAmount(row[6])
	if err != nil {
		return customerRow{}, fmt.Errorf("current_debt: %w", err)
	}

	return customerRow{
		CustomerID:    id,
		FirstName:     strings.TrimSpace(row[1]),
		LastName:      strings.TrimSpace(row[2]),
		PhoneNumber:   strings.TrimSpace(row[3]),
		MonthlySalary: salary,
		ApprovedLimit: limit,
		CurrentDebt:   debt,
	}, nil
}

func parseLoanRow(row []string, now time.Time) (loanRow, error) {
	if len(row) < 9 {
		return loanRow{}, fmt.Errorf("expected 9 columns, got %d", len(row))
	}

	customerID, err := strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64)
	if err != nil {
		return loanRow{}, fmt.Errorf("customer_id: %w", err)
	}
	loanID, err := strconv.ParseInt(strings.TrimSpace(row[1]), 10, 64)
	if err != nil {
		return loanRow{}, fmt.Errorf("loan_id: %w", err)
	}
	amount, err := parseAmount(row[2])
	if err != nil {
		return loanRow{}, fmt.Errorf("loan_amount: %w", err)
	}
	tenure, err := strconv.Atoi(strings.TrimSpace(row[3]))
	if err != nil {
		return loanRow{}, fmt.Errorf("tenure: %w", err)
	}
	rate, err := parseAmount(row[4])
	if err != nil {
		return loanRow{}, fmt.Errorf("interest_rate: %w", err)
	}
	repayment, err := parseAmount(row[5])
	if err != nil {
		return loanRow{}, fmt.Errorf("monthly_repayment: %w", err)
	}
	emisPaid, err := strconv.Atoi(strings.TrimSpace(row[6]))
	if err != nil {
		return loanRow{}, fmt.Errorf("emis_paid_on_time: %w", err)
	}
	start, err := parseDate(row[7])
	if err != nil {
		return loanRow{}, fmt.Errorf("start_date: %w", err)
	}
	end, err := parseDate(row[8])
	if err != nil {
		return loanRow{}, fmt.Errorf("end_date: %w", err)
	}

	return loanRow{
		CustomerID:       customerID,
		LoanID:           loanID,
		LoanAmount:       amount,
		Tenure:           tenure,
		InterestRate:     rate,
		MonthlyRepayment: repayment,
		EMIsPaidOnTime:   emisPaid,
		StartDate:        start,
		EndDate:          end,
	}, nil
}

func parseAmount(cell string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(cell))
}

// parseDate accepts the date layouts excelize renders depending on cell
// formatting.
func parseDate(cell string) (time.Time, error) {
	cell = strings.TrimSpace(cell)
	layouts := []string{
		"2006-01-02",
		"2006-01-02 15:04:05",
		"01-02-06",
		"1/2/2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", cell)
}
