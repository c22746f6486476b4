package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensetracker/internal/apperrors"
	"expensetracker/internal/display"
	"expensetracker/internal/models"
)

// fakeStore is an in-memory TransactionStore for driving the menu flows.
type fakeStore struct {
	transactions []models.Transaction
	nextID       int64

	inserted []models.Transaction
	deleted  []int64
	updated  map[int64]models.TransactionPatch
}

func newFakeStore(transactions ...models.Transaction) *fakeStore {
	s := &fakeStore{
		transactions: transactions,
		nextID:       100,
		updated:      make(map[int64]models.TransactionPatch),
	}
	return s
}

func (s *fakeStore) Insert(_ context.Context, date, details, amount, remarks string) (int64, error) {
	tx, err := models.NewTransaction(date, details, amount, remarks)
	if err != nil {
		return 0, err
	}
	s.nextID++
	tx.ID = s.nextID
	s.transactions = append(s.transactions, *tx)
	s.inserted = append(s.inserted, *tx)
	return tx.ID, nil
}

func (s *fakeStore) ListAll(context.Context) ([]models.Transaction, decimal.Decimal, error) {
	total := decimal.Zero
	for _, tx := range s.transactions {
		total = total.Add(tx.Amount)
	}
	return append([]models.Transaction(nil), s.transactions...), total, nil
}

func (s *fakeStore) GetByID(_ context.Context, id int64) (*models.Transaction, error) {
	for _, tx := range s.transactions {
		if tx.ID == id {
			tx := tx
			return &tx, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *fakeStore) Update(_ context.Context, id int64, patch models.TransactionPatch) error {
	for i, tx := range s.transactions {
		if tx.ID == id {
			if patch.Details != nil {
				tx.Details = *patch.Details
			}
			if patch.Amount != nil {
				tx.Amount = *patch.Amount
			}
			if patch.Date != nil {
				tx.Date = *patch.Date
			}
			if patch.Remarks != nil {
				tx.Remarks = *patch.Remarks
			}
			s.transactions[i] = tx
			s.updated[id] = patch
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (s *fakeStore) Delete(_ context.Context, id int64) error {
	for i, tx := range s.transactions {
		if tx.ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			s.deleted = append(s.deleted, id)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func seedTransactions() []models.Transaction {
	return []models.Transaction{
		{
			ID:      11,
			Date:    time.Date(2025, time.July, 6, 0, 0, 0, 0, time.UTC),
			Details: "Groceries",
			Amount:  decimal.RequireFromString("10.10"),
		},
		{
			ID:      14,
			Date:    time.Date(2025, time.July, 7, 0, 0, 0, 0, time.UTC),
			Details: "Fuel",
			Amount:  decimal.RequireFromString("20.20"),
		},
	}
}

// runMenu feeds the scripted input to a fresh menu and returns its output.
// Input ends after the script, which exits the loop.
func runMenu(t *testing.T, store TransactionStore, input string) string {
	t.Helper()
	var out bytes.Buffer
	menu := NewMenu(store, display.New(&out), strings.NewReader(input), &out)
	require.NoError(t, menu.Run(context.Background()))
	return out.String()
}

func TestInsertFlowRecordsExactValues(t *testing.T) {
	store := newFakeStore()
	out := runMenu(t, store, "1\n06-07-2025\nGroceries\n1250.50\nweekly shop\n")

	require.Len(t, store.inserted, 1)
	tx := store.inserted[0]
	assert.Equal(t, time.Date(2025, time.July, 6, 0, 0, 0, 0, time.UTC), tx.Date)
	assert.Equal(t, "Groceries", tx.Details)
	assert.Equal(t, "1250.50", tx.Amount.StringFixed(2))
	assert.Equal(t, "weekly shop", tx.Remarks)
	assert.Contains(t, out, "Transaction recorded successfully.")
}

func TestInsertFlowRepromptsOnBadDate(t *testing.T) {
	store := newFakeStore()
	out := runMenu(t, store, "1\n2025-07-06\n06-07-2025\nGroceries\n10\n\n")

	assert.Contains(t, out, "Invalid date: must be in DD-MM-YYYY format.")
	require.Len(t, store.inserted, 1)
	assert.Equal(t, "", store.inserted[0].Remarks)
}

func TestInsertFlowRejectsNonPositiveAmounts(t *testing.T) {
	store := newFakeStore()
	out := runMenu(t, store, "1\n06-07-2025\nGroceries\n-5.00\n0.00\n10\n\n")

	assert.Equal(t, 2, strings.Count(out, "Invalid amount: must be greater than zero."))
	require.Len(t, store.inserted, 1)
	assert.Equal(t, "10.00", store.inserted[0].Amount.StringFixed(2))
}

func TestDeleteFlowAppliesToSelectedSerial(t *testing.T) {
	store := newFakeStore(seedTransactions()...)
	out := runMenu(t, store, "3\n2\ny\n")

	// serial 2 is the second row of the listing, id 14
	assert.Equal(t, []int64{14}, store.deleted)
	assert.Contains(t, out, "Transaction deleted successfully.")
}

func TestDeleteFlowCancellationLeavesStoreUnchanged(t *testing.T) {
	store := newFakeStore(seedTransactions()...)
	before, beforeTotal, err := store.ListAll(context.Background())
	require.NoError(t, err)

	out := runMenu(t, store, "3\n1\nn\n")

	after, afterTotal, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.True(t, beforeTotal.Equal(afterTotal))
	assert.Empty(t, store.deleted)
	assert.Contains(t, out, "Deletion cancelled.")
}

func TestDeleteFlowInvalidSerials(t *testing.T) {
	for _, serial := range []string{"0", "3", "-1"} {
		store := newFakeStore(seedTransactions()...)
		out := runMenu(t, store, "3\n"+serial+"\n")

		assert.Contains(t, out, "Invalid transaction selection.")
		assert.Empty(t, store.deleted)
	}
}

func TestDeleteFlowNonNumericSerial(t *testing.T) {
	store := newFakeStore(seedTransactions()...)
	out := runMenu(t, store, "3\nfirst\n")

	assert.Contains(t, out, "Invalid input. Please enter a number.")
	assert.Empty(t, store.deleted)
}

func TestDeleteFlowEmptyStore(t *testing.T) {
	store := newFakeStore()
	out := runMenu(t, store, "3\n")

	assert.Contains(t, out, "No transactions found.")
}

func TestUpdateFlowAppliesPatch(t *testing.T) {
	store := newFakeStore(seedTransactions()...)
	// serial 1, keep date, change details and amount, keep remarks
	out := runMenu(t, store, "4\n1\n\nDining out\n42.42\n\ny\n")

	patch, ok := store.updated[11]
	require.True(t, ok)
	assert.Nil(t, patch.Date)
	require.NotNil(t, patch.Details)
	assert.Equal(t, "Dining out", *patch.Details)
	require.NotNil(t, patch.Amount)
	assert.Equal(t, "42.42", patch.Amount.StringFixed(2))
	assert.Nil(t, patch.Remarks)
	assert.Contains(t, out, "Transaction updated successfully.")
}

func TestUpdateFlowCancellation(t *testing.T) {
	store := newFakeStore(seedTransactions()...)
	before, _, err := store.ListAll(context.Background())
	require.NoError(t, err)

	out := runMenu(t, store, "4\n1\n\nDining out\n\n\nn\n")

	after, _, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Empty(t, store.updated)
	assert.Contains(t, out, "Update cancelled.")
}

func TestUpdateFlowAllBlankIsNoop(t *testing.T) {
	store := newFakeStore(seedTransactions()...)
	out := runMenu(t, store, "4\n1\n\n\n\n\n")

	assert.Empty(t, store.updated)
	assert.Contains(t, out, "Nothing to update.")
}

func TestListFlowShowsTotal(t *testing.T) {
	store := newFakeStore(seedTransactions()...)
	out := runMenu(t, store, "2\n")

	assert.Contains(t, out, "Total Expenditure")
	assert.Contains(t, out, "30.30")
}

func TestInvalidMenuOption(t *testing.T) {
	store := newFakeStore()
	out := runMenu(t, store, "9\n")

	assert.Contains(t, out, "Invalid option. Please try again.")
}

func TestExitOption(t *testing.T) {
	store := newFakeStore()
	out := runMenu(t, store, "5\n")

	assert.Contains(t, out, "Goodbye!")
}

func TestMenuStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	menu := NewMenu(newFakeStore(), display.New(&out), strings.NewReader("2\n"), &out)
	err := menu.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// staleGetStore simulates a record vanishing between the listing and the
// confirmation fetch.
type staleGetStore struct {
	*fakeStore
}

func (s *staleGetStore) GetByID(context.Context, int64) (*models.Transaction, error) {
	return nil, apperrors.ErrNotFound
}

// staleDeleteStore simulates a record vanishing between the confirmation
// fetch and the delete itself.
type staleDeleteStore struct {
	*fakeStore
}

func (s *staleDeleteStore) Delete(context.Context, int64) error {
	return apperrors.ErrNotFound
}

func TestDeleteFlowStaleSerialReportsNotFound(t *testing.T) {
	store := &staleGetStore{fakeStore: newFakeStore(seedTransactions()...)}
	out := runMenu(t, store, "3\n1\n")

	assert.Contains(t, out, "Transaction not found. It may have already been deleted.")
	assert.Empty(t, store.deleted)
	// control returns to the menu after the error
	assert.Equal(t, 2, strings.Count(out, "Enter your option: "))
}

func TestDeleteFlowNotFoundAfterConfirmation(t *testing.T) {
	store := &staleDeleteStore{fakeStore: newFakeStore(seedTransactions()...)}
	out := runMenu(t, store, "3\n1\ny\n")

	assert.Contains(t, out, "Transaction not found. It may have already been deleted.")
	assert.NotContains(t, out, "Transaction deleted successfully.")
	assert.Equal(t, 2, strings.Count(out, "Enter your option: "))
}

func TestUpdateFlowRepromptsOnBadOptionalFields(t *testing.T) {
	store := newFakeStore(seedTransactions()...)
	// bad date then blank (keep), bad amount then a valid one
	out := runMenu(t, store, "4\n1\n07/08/2025\n\nDining out\nabc\n42.42\n\ny\n")

	assert.Contains(t, out, "Invalid date: must be in DD-MM-YYYY format.")
	assert.Contains(t, out, "Invalid amount: must be a decimal number.")

	patch, ok := store.updated[11]
	require.True(t, ok)
	assert.Nil(t, patch.Date)
	require.NotNil(t, patch.Amount)
	assert.Equal(t, "42.42", patch.Amount.StringFixed(2))
}
