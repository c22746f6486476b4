// Package display renders transaction listings as terminal tables. Tables
// are built as markdown and styled through glamour; when no styled renderer
// is available (dumb terminals, piped output) the raw markdown is printed
// as-is.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"

	"expensetracker/internal/models"
)

const displayDateFormat = "02-Jan-2006"

type Renderer struct {
	out  io.Writer
	term *glamour.TermRenderer
}

func New(out io.Writer) *Renderer {
	term, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		term = nil
	}
	return &Renderer{out: out, term: term}
}

// ListingWithTotal renders all transactions plus the total expenditure line.
func (r *Renderer) ListingWithTotal(transactions []models.Transaction, total decimal.Decimal) {
	if len(transactions) == 0 {
		fmt.Fprintln(r.out, "No transactions found.")
		return
	}

	var b strings.Builder
	b.WriteString("# Credit Card Transactions\n\n")
	b.WriteString(MarkdownTable(transactions))
	fmt.Fprintf(&b, "\n**Total Expenditure: %s**\n", FormatAmount(total))

	r.render(b.String())
}

// SelectionListing renders transactions with their serial numbers and an
// instruction to pick one.
func (r *Renderer) SelectionListing(title string, transactions []models.Transaction) {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	b.WriteString(MarkdownTable(transactions))
	fmt.Fprintf(&b, "\nSelect a transaction by entering its serial number (1-%d).\n", len(transactions))

	r.render(b.String())
}

// Single renders one transaction, used for confirmation screens.
func (r *Renderer) Single(title string, tx models.Transaction) {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	b.WriteString(MarkdownTable([]models.Transaction{tx}))

	r.render(b.String())
}

func (r *Renderer) render(markdown string) {
	if r.term != nil {
		if styled, err := r.term.Render(markdown); err == nil {
			fmt.Fprint(r.out, styled)
			return
		}
	}
	fmt.Fprint(r.out, markdown)
}

// MarkdownTable builds the transaction table with a 1-based serial column in
// listing order.
func MarkdownTable(transactions []models.Transaction) string {
	var b strings.Builder
	b.WriteString("| Sl No. | Date | Transaction Details | Amount | Remarks |\n")
	b.WriteString("|---|---|---|---:|---|\n")

	for i, tx := range transactions {
		remarks := tx.Remarks
		if remarks == "" {
			remarks = "-"
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n",
			i+1,
			tx.Date.Format(displayDateFormat),
			escapeCell(tx.Details),
			FormatAmount(tx.Amount),
			escapeCell(remarks),
		)
	}

	return b.String()
}

// FormatAmount renders a two-decimal amount as Indian rupees, e.g. ₹1,234.56.
func FormatAmount(amount decimal.Decimal) string {
	return money.New(amount.Shift(2).IntPart(), money.INR).Display()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
