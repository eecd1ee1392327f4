package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Customer aggregate root
// ---------------------------------------------------------------------------

// Customer is an immutable aggregate. Mutations return a new copy. The
// database assigns the identity on insert; a zero id marks an unpersisted
// customer.
type Customer struct {
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
}

// NewCustomer creates a customer at registration time. The approved credit
// limit is derived as 36x the monthly salary, rounded to the nearest lakh,
// and the starting debt is zero.
func NewCustomer(firstName, lastName string, age int, phoneNumber string, monthlySalary decimal.Decimal, now time.Time) (Customer, error) {
	if firstName == "" || lastName == "" {
		return Customer{}, ErrInvalidName
	}
	if age < 18 || age > 100 {
		return Customer{}, ErrInvalidAge
	}
	if phoneNumber == "" {
		return Customer{}, ErrInvalidPhoneNumber
	}
	if monthlySalary.IsNegative() {
		return Customer{}, ErrInvalidSalary
	}

	return Customer{
		firstName:     firstName,
		lastName:      lastName,
		age:           age,
		phoneNumber:   phoneNumber,
		monthlySalary: monthlySalary,
		approvedLimit: RoundToNearestLakh(monthlySalary.Mul(decimal.NewFromInt(36))),
		currentDebt:   decimal.Zero,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructCustomer rebuilds a Customer aggregate from persistence.
func ReconstructCustomer(
	id int64,
	firstName, lastName string,
	age int,
	phoneNumber string,
	monthlySalary, approvedLimit, currentDebt decimal.Decimal,
	createdAt, updatedAt time.Time,
) Customer {
	return Customer{
		id:            id,
		firstName:     firstName,
		lastName:      lastName,
		age:           age,
		phoneNumber:   phoneNumber,
		monthlySalary: monthlySalary,
		approvedLimit: approvedLimit,
		currentDebt:   currentDebt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// WithID returns a copy carrying the database-assigned identity.
func (c Customer) WithID(id int64) Customer {
	next := c
	next.id = id
	return next
}

// AccrueDebt returns a copy with the current debt increased by the approved
// loan principal.
func (c Customer) AccrueDebt(amount decimal.Decimal, now time.Time) (Customer, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return c, ErrInvalidDebtAmount
	}
	next := c
	next.currentDebt = c.currentDebt.Add(amount)
	next.updatedAt = now
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (c Customer) ID() int64                      { return c.id }
func (c Customer) FirstName() string              { return c.firstName }
func (c Customer) LastName() string               { return c.lastName }
func (c Customer) Age() int                       { return c.age }
func (c Customer) PhoneNumber() string            { return c.phoneNumber }
func (c Customer) MonthlySalary() decimal.Decimal { return c.monthlySalary }
func (c Customer) ApprovedLimit() decimal.Decimal { return c.approvedLimit }
func (c Customer) CurrentDebt() decimal.Decimal   { return c.currentDebt }
func (c Customer) CreatedAt() time.Time           { return c.createdAt }
func (c Customer) UpdatedAt() time.Time           { return c.updatedAt }
