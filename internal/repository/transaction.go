package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"expensetracker/internal/apperrors"
	"expensetracker/internal/database"
	"expensetracker/internal/models"
)

// TransactionRepository is the single point of access to the transactions
// table. Inputs are validated before any pool access, and every storage
// failure is classified before it reaches the caller.
type TransactionRepository struct {
	db *database.DB
}

func NewTransactionRepository(db *database.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Insert validates the raw user input and persists a new transaction,
// returning its assigned identifier. Validation failures never touch the
// store.
func (r *TransactionRepository) Insert(ctx context.Context, dateStr, details, amountStr, remarks string) (int64, error) {
	tx, err := models.NewTransaction(dateStr, details, amountStr, remarks)
	if err != nil {
		return 0, err
	}

	err = r.db.Pool.QueryRow(ctx,
		`INSERT INTO transactions (date, transaction_details, amount, remarks)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		tx.Date, tx.Details, tx.Amount.StringFixed(2), tx.Remarks,
	).Scan(&tx.ID)
	if err != nil {
		return 0, &apperrors.PersistenceError{Op: "insert transaction", Err: err}
	}

	return tx.ID, nil
}

// ListAll returns every transaction in insertion order together with the
// exact decimal sum of all amounts. An empty store yields an empty slice and
// a zero total, not an error.
func (r *TransactionRepository) ListAll(ctx context.Context) ([]models.Transaction, decimal.Decimal, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, date, transaction_details, amount::text, remarks
		 FROM transactions
		 ORDER BY id`,
	)
	if err != nil {
		return nil, decimal.Zero, &apperrors.PersistenceError{Op: "list transactions", Err: err}
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, decimal.Zero, &apperrors.PersistenceError{Op: "list transactions", Err: err}
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, decimal.Zero, &apperrors.PersistenceError{Op: "list transactions", Err: err}
	}

	return transactions, Total(transactions), nil
}

// GetByID fetches a single transaction, reporting ErrNotFound when the
// identifier does not exist.
func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*models.Transaction, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT id, date, transaction_details, amount::text, remarks
		 FROM transactions
		 WHERE id = $1`,
		id,
	)

	tx, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, &apperrors.PersistenceError{Op: "get transaction", Err: err}
	}
	return &tx, nil
}

// Update applies a partial field update to exactly one transaction. The
// single UPDATE statement makes the change atomic: all set fields apply or
// none do.
func (r *TransactionRepository) Update(ctx context.Context, id int64, patch models.TransactionPatch) error {
	if patch.IsZero() {
		return &apperrors.ValidationError{Field: "update", Reason: "no fields to change"}
	}
	if err := patch.Validate(); err != nil {
		return err
	}

	set, args := buildUpdateSet(patch)
	args = append(args, id)

	tag, err := r.db.Pool.Exec(ctx,
		fmt.Sprintf("UPDATE transactions SET %s WHERE id = $%d", set, len(args)),
		args...,
	)
	if err != nil {
		return &apperrors.PersistenceError{Op: "update transaction", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes exactly one transaction. Deleting an identifier that no
// longer exists reports ErrNotFound every time, never a silent success.
func (r *TransactionRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, "DELETE FROM transactions WHERE id = $1", id)
	if err != nil {
		return &apperrors.PersistenceError{Op: "delete transaction", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Total sums transaction amounts with decimal arithmetic, so 10.10 + 20.20 +
// 5.00 is exactly 35.30.
func Total(transactions []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range transactions {
		total = total.Add(tx.Amount)
	}
	return total
}

func buildUpdateSet(patch models.TransactionPatch) (string, []any) {
	var set []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Date != nil {
		add("date", *patch.Date)
	}
	if patch.Details != nil {
		add("transaction_details", *patch.Details)
	}
	if patch.Amount != nil {
		add("amount", patch.Amount.StringFixed(2))
	}
	if patch.Remarks != nil {
		add("remarks", *patch.Remarks)
	}

	return strings.Join(set, ", "), args
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var tx models.Transaction
	var amount string
	if err := row.Scan(&tx.ID, &tx.Date, &tx.Details, &amount, &tx.Remarks); err != nil {
		return models.Transaction{}, err
	}

	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid stored amount %q: %w", amount, err)
	}
	tx.Amount = parsed
	return tx, nil
}
