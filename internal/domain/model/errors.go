package model

import "errors"

// Validation errors for malformed or out-of-range inputs. They are surfaced
// to transport as invalid-argument failures, never silently coerced. A
// credit-based rejection is not an error; it is a normal decision with
// Approved set to false.
var (
	ErrInvalidTenure       = errors.New("tenure must be a positive number of months")
	ErrInvalidLoanAmount   = errors.New("loan amount must be positive")
	ErrInvalidInterestRate = errors.New("interest rate cannot be negative")
	ErrInvalidSalary       = errors.New("monthly salary cannot be negative")
	ErrInvalidAge          = errors.New("age must be between 18 and 100")
	ErrInvalidName         = errors.New("first and last name are required")
	ErrInvalidPhoneNumber  = errors.New("phone number is required")
	ErrInvalidDebtAmount   = errors.New("debt accrual amount must be positive")
	ErrInvalidCustomerID   = errors.New("customer id must be positive")
)
