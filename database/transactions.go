package database

import (
	"backoffice/models"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionSelect = `
	SELECT t.id, t.account_id, t.transaction_type, t.amount, t.balance_after,
	       t.transaction_date, t.description, t.reference_number, t.status,
	       t.created_at, acc.account_number
	FROM transactions t
	JOIN accounts acc ON acc.id = t.account_id`

func scanTransaction(scanner interface {
	Scan(dest ...interface{}) error
}) (*models.Transaction, error) {
	var t models.Transaction
	var amount string
	var balanceAfter, txDate, description, reference sql.NullString

	err := scanner.Scan(&t.ID, &t.AccountID, &t.TransactionType, &amount, &balanceAfter,
		&txDate, &description, &reference, &t.Status, &t.CreatedAt, &t.AccountNumber)
	if err != nil {
		return nil, err
	}

	t.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount %q: %w", amount, err)
	}
	if balanceAfter.Valid && balanceAfter.String != "" {
		ba, err := decimal.NewFromString(balanceAfter.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse balance_after %q: %w", balanceAfter.String, err)
		}
		t.BalanceAfter = &ba
	}
	t.TransactionDate = txDate.String
	t.Description = description.String
	t.ReferenceNumber = reference.String
	return &t, nil
}

func (r *TransactionRepository) Create(t *models.Transaction) (*models.Transaction, error) {
	status := t.Status
	if status == "" {
		status = models.TransactionStatusCompleted
	}
	txDate := t.TransactionDate
	if txDate == "" {
		txDate = time.Now().Format("2006-01-02")
	}

	// Zero is a legal snapshot value; only a nil pointer stores NULL.
	var balanceAfter interface{}
	if t.BalanceAfter != nil {
		balanceAfter = t.BalanceAfter.String()
	}

	result, err := r.db.Exec(`
		INSERT INTO transactions (account_id, transaction_type, amount, balance_after,
			transaction_date, description, reference_number, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, t.AccountID, t.TransactionType, t.Amount.String(), balanceAfter,
		txDate, nullString(t.Description), nullString(t.ReferenceNumber), status)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

func (r *TransactionRepository) GetByID(id int64) (*models.Transaction, error) {
	t, err := scanTransaction(r.db.QueryRow(transactionSelect+" WHERE t.id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TransactionRepository) GetAll(filters models.TransactionFilters) ([]models.Transaction, error) {
	var conditions []string
	var args []interface{}

	if filters.AccountID > 0 {
		conditions = append(conditions, "t.account_id = ?")
		args = append(args, filters.AccountID)
	}
	if filters.Type != "" {
		conditions = append(conditions, "t.transaction_type = ?")
		args = append(args, filters.Type)
	}
	if filters.Status != "" {
		conditions = append(conditions, "t.status = ?")
		args = append(args, filters.Status)
	}
	if filters.From != "" {
		conditions = append(conditions, "t.transaction_date >= ?")
		args = append(args, filters.From)
	}
	if filters.To != "" {
		conditions = append(conditions, "t.transaction_date <= ?")
		args = append(args, filters.To)
	}

	query := transactionSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY t.transaction_date DESC, t.id DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *t)
	}

	return transactions, rows.Err()
}

func (r *TransactionRepository) FindByAccountID(accountID int64) ([]models.Transaction, error) {
	return r.GetAll(models.TransactionFilters{AccountID: accountID})
}

func (r *TransactionRepository) FindByDateRange(from, to string) ([]models.Transaction, error) {
	return r.GetAll(models.TransactionFilters{From: from, To: to})
}

func (r *TransactionRepository) FindByType(transactionType models.TransactionType) ([]models.Transaction, error) {
	return r.GetAll(models.TransactionFilters{Type: string(transactionType)})
}

func (r *TransactionRepository) FindByStatus(status models.TransactionStatus) ([]models.Transaction, error) {
	return r.GetAll(models.TransactionFilters{Status: string(status)})
}

// FindWithAccountDetails is the account-enriched listing; the account number
// is already joined into every read, so this is GetAll without filters.
func (r *TransactionRepository) FindWithAccountDetails() ([]models.Transaction, error) {
	return r.GetAll(models.TransactionFilters{})
}

func (r *TransactionRepository) Update(id int64, req *models.UpdateTransactionRequest) (*models.Transaction, error) {
	var sets []string
	var args []interface{}

	if req.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *req.Description)
	}
	if req.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *req.Status)
	}

	if len(sets) == 0 {
		return r.GetByID(id)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE transactions SET %s WHERE id = ?", strings.Join(sets, ", "))
	if _, err := r.db.Exec(query, args...); err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

func (r *TransactionRepository) Delete(id int64) error {
	_, err := r.db.Exec("DELETE FROM transactions WHERE id = ?", id)
	return err
}

// GetAccountBalance derives the balance from completed transactions only:
// deposits and interest add, withdrawals and penalties subtract. Pending,
// failed and cancelled rows never affect the result.
func (r *TransactionRepository) GetAccountBalance(accountID int64) (decimal.Decimal, error) {
	rows, err := r.db.Query(`
		SELECT transaction_type, amount
		FROM transactions
		WHERE account_id = ? AND status = 'completed'
	`, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	defer rows.Close()

	balance := decimal.Zero
	for rows.Next() {
		var txType models.TransactionType
		var amountStr string
		if err := rows.Scan(&txType, &amountStr); err != nil {
			return decimal.Zero, err
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to parse amount %q: %w", amountStr, err)
		}

		switch txType {
		case models.TransactionTypeDeposit, models.TransactionTypeInterest:
			balance = balance.Add(amount)
		case models.TransactionTypeWithdrawal, models.TransactionTypePenalty:
			balance = balance.Sub(amount)
		}
	}

	return balance, rows.Err()
}

// GetTransactionSummary aggregates completed transactions per type alongside
// the derived balance.
func (r *TransactionRepository) GetTransactionSummary(accountID int64) (*models.TransactionSummary, error) {
	// Amounts are stored as decimal strings; summing happens here rather than
	// in SQL to keep exact arithmetic.
	rows, err := r.db.Query(`
		SELECT transaction_type, amount
		FROM transactions
		WHERE account_id = ? AND status = 'completed'
	`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := &models.TransactionSummary{
		AccountID:    accountID,
		TotalsByType: make(map[string]decimal.Decimal),
		CountsByType: make(map[string]int),
	}

	for rows.Next() {
		var txType string
		var amountStr string
		if err := rows.Scan(&txType, &amountStr); err != nil {
			return nil, err
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount %q: %w", amountStr, err)
		}
		summary.TotalsByType[txType] = summary.TotalsByType[txType].Add(amount)
		summary.CountsByType[txType]++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	balance, err := r.GetAccountBalance(accountID)
	if err != nil {
		return nil, err
	}
	summary.Balance = balance

	return summary, nil
}
