package database

import (
	"testing"
	"time"

	"backoffice/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionCreate(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewTransactionRepository(db)
	inst := createTestInstitution(t, db, "Txn Bank")
	account := createTestAccount(t, db, inst.ID, "TB-1001")

	t.Run("Defaults status and date", func(t *testing.T) {
		created, err := repo.Create(&models.Transaction{
			AccountID:       account.ID,
			TransactionType: models.TransactionTypeDeposit,
			Amount:          decimal.RequireFromString("100.25"),
		})
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.Equal(t, models.TransactionStatusCompleted, created.Status)
		assert.Equal(t, time.Now().Format("2006-01-02"), created.TransactionDate)
		assert.Equal(t, "TB-1001", created.AccountNumber)
		assert.True(t, created.Amount.Equal(decimal.RequireFromString("100.25")))
	})

	t.Run("Amount round-trips without drift", func(t *testing.T) {
		created, err := repo.Create(&models.Transaction{
			AccountID:       account.ID,
			TransactionType: models.TransactionTypeDeposit,
			Amount:          decimal.RequireFromString("0.1"),
		})
		require.NoError(t, err)

		got, err := repo.GetByID(created.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "0.1", got.Amount.String())
	})

	t.Run("Zero snapshot is stored, absent stays null", func(t *testing.T) {
		zero := decimal.Zero
		created, err := repo.Create(&models.Transaction{
			AccountID:       account.ID,
			TransactionType: models.TransactionTypeWithdrawal,
			Amount:          decimal.RequireFromString("100.25"),
			BalanceAfter:    &zero,
		})
		require.NoError(t, err)

		got, err := repo.GetByID(created.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.NotNil(t, got.BalanceAfter)
		assert.True(t, got.BalanceAfter.IsZero())

		noSnapshot, err := repo.Create(&models.Transaction{
			AccountID:       account.ID,
			TransactionType: models.TransactionTypeDeposit,
			Amount:          decimal.RequireFromString("10"),
		})
		require.NoError(t, err)
		assert.Nil(t, noSnapshot.BalanceAfter)
	})

	t.Run("Update changes description and status", func(t *testing.T) {
		created, err := repo.Create(&models.Transaction{
			AccountID:       account.ID,
			TransactionType: models.TransactionTypeWithdrawal,
			Amount:          decimal.RequireFromString("50"),
			Status:          models.TransactionStatusPending,
		})
		require.NoError(t, err)

		description := "cash withdrawal at branch"
		status := "completed"
		updated, err := repo.Update(created.ID, &models.UpdateTransactionRequest{
			Description: &description,
			Status:      &status,
		})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, description, updated.Description)
		assert.Equal(t, models.TransactionStatusCompleted, updated.Status)
	})

	t.Run("Delete removes the row", func(t *testing.T) {
		created, err := repo.Create(&models.Transaction{
			AccountID:       account.ID,
			TransactionType: models.TransactionTypeFee,
			Amount:          decimal.RequireFromString("5"),
		})
		require.NoError(t, err)

		require.NoError(t, repo.Delete(created.ID))

		missing, err := repo.GetByID(created.ID)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}

func TestAccountBalanceDerivation(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewTransactionRepository(db)
	inst := createTestInstitution(t, db, "Balance Bank")
	account := createTestAccount(t, db, inst.ID, "BB-2001")

	add := func(txType models.TransactionType, amount string, status models.TransactionStatus) {
		t.Helper()
		_, err := repo.Create(&models.Transaction{
			AccountID:       account.ID,
			TransactionType: txType,
			Amount:          decimal.RequireFromString(amount),
			Status:          status,
		})
		require.NoError(t, err)
	}

	add(models.TransactionTypeDeposit, "1000.10", models.TransactionStatusCompleted)
	add(models.TransactionTypeInterest, "0.20", models.TransactionStatusCompleted)
	add(models.TransactionTypeWithdrawal, "300.05", models.TransactionStatusCompleted)
	add(models.TransactionTypePenalty, "10.15", models.TransactionStatusCompleted)
	// Non-completed rows must never move the balance.
	add(models.TransactionTypeDeposit, "5000", models.TransactionStatusPending)
	add(models.TransactionTypeWithdrawal, "5000", models.TransactionStatusFailed)
	// Transfers, fees and maturities are recorded but not netted.
	add(models.TransactionTypeFee, "25", models.TransactionStatusCompleted)
	add(models.TransactionTypeTransfer, "100", models.TransactionStatusCompleted)

	t.Run("Balance nets deposits and interest against withdrawals and penalties", func(t *testing.T) {
		balance, err := repo.GetAccountBalance(account.ID)
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.RequireFromString("690.10")),
			"got %s", balance.String())
	})

	t.Run("Empty account derives zero", func(t *testing.T) {
		empty := createTestAccount(t, db, inst.ID, "BB-2002")

		balance, err := repo.GetAccountBalance(empty.ID)
		require.NoError(t, err)
		assert.True(t, balance.IsZero())
	})

	t.Run("Summary aggregates completed rows per type", func(t *testing.T) {
		summary, err := repo.GetTransactionSummary(account.ID)
		require.NoError(t, err)
		require.NotNil(t, summary)

		assert.Equal(t, account.ID, summary.AccountID)
		assert.True(t, summary.TotalsByType["deposit"].Equal(decimal.RequireFromString("1000.10")))
		assert.True(t, summary.TotalsByType["fee"].Equal(decimal.RequireFromString("25")))
		assert.True(t, summary.Balance.Equal(decimal.RequireFromString("690.10")))

		// The pending deposit must not leak into the completed totals.
		assert.Equal(t, 1, summary.CountsByType["deposit"])
	})
}

func TestTransactionFilters(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewTransactionRepository(db)
	inst := createTestInstitution(t, db, "Filter Bank")
	first := createTestAccount(t, db, inst.ID, "FB-3001")
	second := createTestAccount(t, db, inst.ID, "FB-3002")

	_, err := repo.Create(&models.Transaction{
		AccountID:       first.ID,
		TransactionType: models.TransactionTypeDeposit,
		Amount:          decimal.RequireFromString("100"),
		TransactionDate: "2026-01-15",
	})
	require.NoError(t, err)

	_, err = repo.Create(&models.Transaction{
		AccountID:       second.ID,
		TransactionType: models.TransactionTypeWithdrawal,
		Amount:          decimal.RequireFromString("40"),
		TransactionDate: "2026-03-20",
		Status:          models.TransactionStatusPending,
	})
	require.NoError(t, err)

	t.Run("By account", func(t *testing.T) {
		txns, err := repo.FindByAccountID(first.ID)
		require.NoError(t, err)
		require.Len(t, txns, 1)
		assert.Equal(t, "FB-3001", txns[0].AccountNumber)
	})

	t.Run("By date range", func(t *testing.T) {
		txns, err := repo.FindByDateRange("2026-01-01", "2026-01-31")
		require.NoError(t, err)
		require.Len(t, txns, 1)
		assert.Equal(t, models.TransactionTypeDeposit, txns[0].TransactionType)
	})

	t.Run("By type", func(t *testing.T) {
		txns, err := repo.FindByType(models.TransactionTypeWithdrawal)
		require.NoError(t, err)
		assert.Len(t, txns, 1)
	})

	t.Run("By status", func(t *testing.T) {
		txns, err := repo.FindByStatus(models.TransactionStatusPending)
		require.NoError(t, err)
		assert.Len(t, txns, 1)
	})

	t.Run("Newest first ordering", func(t *testing.T) {
		txns, err := repo.FindWithAccountDetails()
		require.NoError(t, err)
		require.Len(t, txns, 2)
		assert.Equal(t, "2026-03-20", txns[0].TransactionDate)
	})
}
