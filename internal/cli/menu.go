// Package cli drives the interactive menu. Every flow validates its input,
// reports failures as plain messages, and returns control to the menu; a data
// error never terminates the process.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"expensetracker/internal/apperrors"
	"expensetracker/internal/display"
	"expensetracker/internal/models"
)

// TransactionStore is the persistence gateway the menu operates against.
type TransactionStore interface {
	Insert(ctx context.Context, date, details, amount, remarks string) (int64, error)
	ListAll(ctx context.Context) ([]models.Transaction, decimal.Decimal, error)
	GetByID(ctx context.Context, id int64) (*models.Transaction, error)
	Update(ctx context.Context, id int64, patch models.TransactionPatch) error
	Delete(ctx context.Context, id int64) error
}

type Menu struct {
	store    TransactionStore
	renderer *display.Renderer
	in       *bufio.Scanner
	out      io.Writer
}

func NewMenu(store TransactionStore, renderer *display.Renderer, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		store:    store,
		renderer: renderer,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// Run loops over the menu until the user exits, input ends, or the context
// is cancelled.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.printOptions()
		option, ok := m.readLine()
		if !ok {
			return nil
		}

		switch strings.TrimSpace(option) {
		case "1":
			m.insertFlow(ctx)
		case "2":
			m.listFlow(ctx)
		case "3":
			m.deleteFlow(ctx)
		case "4":
			m.updateFlow(ctx)
		case "5":
			fmt.Fprintln(m.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid option. Please try again.")
		}
	}
}

func (m *Menu) printOptions() {
	fmt.Fprintln(m.out, strings.Repeat("*", 50))
	fmt.Fprintln(m.out, "1. Press 1 to insert transaction details")
	fmt.Fprintln(m.out, "2. Press 2 to see all transactions and total expenditure")
	fmt.Fprintln(m.out, "3. Press 3 to delete a transaction")
	fmt.Fprintln(m.out, "4. Press 4 to update a transaction")
	fmt.Fprintln(m.out, "5. Press 5 to exit")
	fmt.Fprint(m.out, "Enter your option: ")
}

func (m *Menu) readLine() (string, bool) {
	if !m.in.Scan() {
		return "", false
	}
	return m.in.Text(), true
}

func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	return m.readLine()
}

// promptValidated re-prompts until the input passes validation or input ends.
func (m *Menu) promptValidated(label string, validate func(string) error) (string, bool) {
	for {
		value, ok := m.prompt(label)
		if !ok {
			return "", false
		}
		if err := validate(value); err != nil {
			m.reportError(err)
			continue
		}
		return value, true
	}
}

func (m *Menu) confirm(label string) bool {
	answer, ok := m.prompt(label)
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (m *Menu) reportError(err error) {
	var validation *apperrors.ValidationError
	switch {
	case errors.As(err, &validation):
		fmt.Fprintf(m.out, "Invalid %s: %s.\n", validation.Field, validation.Reason)
	case errors.Is(err, apperrors.ErrNotFound):
		fmt.Fprintln(m.out, "Transaction not found. It may have already been deleted.")
	default:
		fmt.Fprintf(m.out, "Something went wrong: %v\n", err)
	}
}
