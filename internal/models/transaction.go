package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/apperrors"
)

// DateFormat is the external representation of transaction dates.
const DateFormat = "02-01-2006" // DD-MM-YYYY

// Transaction represents one credit-card expenditure event.
type Transaction struct {
	ID      int64
	Date    time.Time
	Details string
	Amount  decimal.Decimal
	Remarks string
}

// ParseDate parses a DD-MM-YYYY date string.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &apperrors.ValidationError{
			Field:  "date",
			Reason: "must be in DD-MM-YYYY format",
		}
	}
	return d, nil
}

// ParseAmount parses a decimal amount string. Amounts must be positive and
// are rounded to two decimal places before storage.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, &apperrors.ValidationError{
			Field:  "amount",
			Reason: "must be a decimal number",
		}
	}
	return validateAmount(amount)
}

func validateAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, &apperrors.ValidationError{
			Field:  "amount",
			Reason: "must be greater than zero",
		}
	}
	return amount.Round(2), nil
}

// ParseDetails trims the transaction description and rejects empty input.
func ParseDetails(s string) (string, error) {
	details := strings.TrimSpace(s)
	if details == "" {
		return "", &apperrors.ValidationError{
			Field:  "details",
			Reason: "must not be empty",
		}
	}
	return details, nil
}

// NewTransaction validates raw user input and builds an unsaved Transaction.
// Remarks are optional and default to an empty string.
func NewTransaction(dateStr, details, amountStr, remarks string) (*Transaction, error) {
	date, err := ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	details, err = ParseDetails(details)
	if err != nil {
		return nil, err
	}

	amount, err := ParseAmount(amountStr)
	if err != nil {
		return nil, err
	}

	return &Transaction{
		Date:    date,
		Details: details,
		Amount:  amount,
		Remarks: strings.TrimSpace(remarks),
	}, nil
}

// TransactionPatch carries a partial update: nil fields keep their stored
// value. An explicit patch object instead of per-field attribute access.
type TransactionPatch struct {
	Date    *time.Time
	Details *string
	Amount  *decimal.Decimal
	Remarks *string
}

// IsZero reports whether the patch changes nothing.
func (p TransactionPatch) IsZero() bool {
	return p.Date == nil && p.Details == nil && p.Amount == nil && p.Remarks == nil
}

// Validate re-checks every set field with the same rules as NewTransaction
// and normalizes it in place.
func (p *TransactionPatch) Validate() error {
	if p.Details != nil {
		details, err := ParseDetails(*p.Details)
		if err != nil {
			return err
		}
		p.Details = &details
	}
	if p.Amount != nil {
		amount, err := validateAmount(*p.Amount)
		if err != nil {
			return err
		}
		p.Amount = &amount
	}
	if p.Remarks != nil {
		remarks := strings.TrimSpace(*p.Remarks)
		p.Remarks = &remarks
	}
	return nil
}
