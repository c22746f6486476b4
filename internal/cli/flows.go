package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/models"
	"expensetracker/internal/selection"
)

func (m *Menu) insertFlow(ctx context.Context) {
	date, ok := m.promptValidated("Enter transaction date (DD-MM-YYYY): ", func(s string) error {
		_, err := models.ParseDate(s)
		return err
	})
	if !ok {
		return
	}

	details, ok := m.promptValidated("Enter transaction details: ", func(s string) error {
		_, err := models.ParseDetails(s)
		return err
	})
	if !ok {
		return
	}

	amount, ok := m.promptValidated("Enter amount: ", func(s string) error {
		_, err := models.ParseAmount(s)
		return err
	})
	if !ok {
		return
	}

	remarks, ok := m.prompt("Enter remarks (optional): ")
	if !ok {
		return
	}

	if _, err := m.store.Insert(ctx, date, details, amount, remarks); err != nil {
		m.reportError(err)
		return
	}
	fmt.Fprintln(m.out, "Transaction recorded successfully.")
}

func (m *Menu) listFlow(ctx context.Context) {
	transactions, total, err := m.store.ListAll(ctx)
	if err != nil {
		m.reportError(err)
		return
	}
	m.renderer.ListingWithTotal(transactions, total)
}

// selectTransaction lists the current snapshot, reads a serial number, and
// resolves it to an identifier. The mapping is rebuilt from a fresh listing
// on every call so a stale serial can never reach the store.
func (m *Menu) selectTransaction(ctx context.Context, title string) (int64, *models.Transaction, bool) {
	transactions, _, err := m.store.ListAll(ctx)
	if err != nil {
		m.reportError(err)
		return 0, nil, false
	}
	if len(transactions) == 0 {
		fmt.Fprintln(m.out, "No transactions found.")
		return 0, nil, false
	}

	m.renderer.SelectionListing(title, transactions)
	mapping := selection.NewMapping(transactions)

	input, ok := m.prompt("Enter serial number: ")
	if !ok {
		return 0, nil, false
	}
	serial, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		fmt.Fprintln(m.out, "Invalid input. Please enter a number.")
		return 0, nil, false
	}

	id, ok := mapping.Resolve(serial)
	if !ok {
		fmt.Fprintln(m.out, "Invalid transaction selection.")
		return 0, nil, false
	}

	tx, err := m.store.GetByID(ctx, id)
	if err != nil {
		m.reportError(err)
		return 0, nil, false
	}
	return id, tx, true
}

func (m *Menu) deleteFlow(ctx context.Context) {
	id, tx, ok := m.selectTransaction(ctx, "Select Transaction to Delete")
	if !ok {
		return
	}

	m.renderer.Single("Transaction to be deleted", *tx)
	if !m.confirm("Are you sure you want to delete this transaction? (y/N): ") {
		fmt.Fprintln(m.out, "Deletion cancelled.")
		return
	}

	if err := m.store.Delete(ctx, id); err != nil {
		m.reportError(err)
		return
	}
	fmt.Fprintln(m.out, "Transaction deleted successfully.")
}

func (m *Menu) updateFlow(ctx context.Context) {
	id, tx, ok := m.selectTransaction(ctx, "Select Transaction to Update")
	if !ok {
		return
	}

	m.renderer.Single("Transaction to be updated", *tx)
	fmt.Fprintln(m.out, "Leave a field blank to keep its current value.")

	patch, ok := m.readPatch()
	if !ok {
		return
	}
	if patch.IsZero() {
		fmt.Fprintln(m.out, "Nothing to update.")
		return
	}

	if !m.confirm("Apply these changes? (y/N): ") {
		fmt.Fprintln(m.out, "Update cancelled.")
		return
	}

	if err := m.store.Update(ctx, id, patch); err != nil {
		m.reportError(err)
		return
	}
	fmt.Fprintln(m.out, "Transaction updated successfully.")
}

func (m *Menu) readPatch() (models.TransactionPatch, bool) {
	var patch models.TransactionPatch

	date, ok := m.promptOptionalDate("New date (DD-MM-YYYY): ")
	if !ok {
		return patch, false
	}
	patch.Date = date

	details, ok := m.prompt("New transaction details: ")
	if !ok {
		return patch, false
	}
	if trimmed := strings.TrimSpace(details); trimmed != "" {
		patch.Details = &trimmed
	}

	amount, ok := m.promptOptionalAmount("New amount: ")
	if !ok {
		return patch, false
	}
	patch.Amount = amount

	remarks, ok := m.prompt("New remarks: ")
	if !ok {
		return patch, false
	}
	if trimmed := strings.TrimSpace(remarks); trimmed != "" {
		patch.Remarks = &trimmed
	}

	return patch, true
}

// promptOptionalDate re-prompts until the input is blank (keep the current
// value) or parses as a date.
func (m *Menu) promptOptionalDate(label string) (*time.Time, bool) {
	for {
		value, ok := m.prompt(label)
		if !ok {
			return nil, false
		}
		if strings.TrimSpace(value) == "" {
			return nil, true
		}
		parsed, err := models.ParseDate(value)
		if err != nil {
			m.reportError(err)
			continue
		}
		return &parsed, true
	}
}

// promptOptionalAmount re-prompts until the input is blank (keep the current
// value) or parses as a positive amount.
func (m *Menu) promptOptionalAmount(label string) (*decimal.Decimal, bool) {
	for {
		value, ok := m.prompt(label)
		if !ok {
			return nil, false
		}
		if strings.TrimSpace(value) == "" {
			return nil, true
		}
		parsed, err := models.ParseAmount(value)
		if err != nil {
			m.reportError(err)
			continue
		}
		return &parsed, true
	}
}
