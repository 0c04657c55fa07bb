package database

import (
	"backoffice/models"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type AccountRepository struct {
	db *DB
}

func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountSelect = `
	SELECT acc.id, acc.account_number, acc.account_type, acc.account_ownership_type,
	       acc.balance, acc.interest_rate, acc.maturity_date, acc.institution_id,
	       acc.deletion_status, acc.created_at, acc.updated_at,
	       i.institution_name, i.institution_type
	FROM accounts acc
	JOIN institutions i ON i.id = acc.institution_id`

func scanAccount(scanner interface {
	Scan(dest ...interface{}) error
}) (*models.Account, error) {
	var a models.Account
	var balance string
	var interestRate sql.NullFloat64
	var maturityDate sql.NullString

	err := scanner.Scan(&a.ID, &a.AccountNumber, &a.AccountType, &a.AccountOwnershipType,
		&balance, &interestRate, &maturityDate, &a.InstitutionID,
		&a.DeletionStatus, &a.CreatedAt, &a.UpdatedAt,
		&a.InstitutionName, &a.InstitutionType)
	if err != nil {
		return nil, err
	}

	a.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance %q: %w", balance, err)
	}
	if interestRate.Valid {
		a.InterestRate = &interestRate.Float64
	}
	a.MaturityDate = maturityDate.String
	return &a, nil
}

func (r *AccountRepository) GetAll(filters models.AccountFilters) ([]models.Account, error) {
	var conditions []string
	var args []interface{}

	if !filters.IncludeDeleted {
		conditions = append(conditions, "acc.deletion_status = 'active'")
	}
	if filters.AccountType != "" {
		conditions = append(conditions, "acc.account_type = ?")
		args = append(args, filters.AccountType)
	}
	if filters.InstitutionType != "" {
		conditions = append(conditions, "i.institution_type = ?")
		args = append(args, filters.InstitutionType)
	}
	if filters.Search != "" {
		conditions = append(conditions, "(acc.account_number LIKE ? OR i.institution_name LIKE ?)")
		pattern := "%" + filters.Search + "%"
		args = append(args, pattern, pattern)
	}

	query := accountSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY acc.account_number"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]models.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}

	return accounts, rows.Err()
}

func (r *AccountRepository) GetByID(id int64, includeDeleted bool) (*models.Account, error) {
	query := accountSelect + " WHERE acc.id = ?"
	if !includeDeleted {
		query += " AND acc.deletion_status = 'active'"
	}

	a, err := scanAccount(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	holders, err := r.holdersForAccount(id)
	if err != nil {
		return nil, err
	}
	a.Holders = holders

	return a, nil
}

func (r *AccountRepository) holdersForAccount(accountID int64) ([]models.AccountHolder, error) {
	rows, err := r.db.Query(`
		SELECT ah.id, ah.account_id, ah.client_id, ah.holder_type, ah.share_percentage,
		       ah.created_at, c.first_name || ' ' || c.last_name
		FROM account_holders ah
		JOIN clients c ON c.id = ah.client_id
		WHERE ah.account_id = ?
		ORDER BY ah.holder_type
	`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holders := make([]models.AccountHolder, 0)
	for rows.Next() {
		var h models.AccountHolder
		var share sql.NullFloat64
		if err := rows.Scan(&h.ID, &h.AccountID, &h.ClientID, &h.HolderType,
			&share, &h.CreatedAt, &h.ClientName); err != nil {
			return nil, err
		}
		if share.Valid {
			h.SharePercentage = &share.Float64
		}
		holders = append(holders, h)
	}

	return holders, rows.Err()
}

func (r *AccountRepository) GetByAccountNumber(accountNumber string) (*models.Account, error) {
	a, err := scanAccount(r.db.QueryRow(accountSelect+" WHERE acc.account_number = ?", accountNumber))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create pre-checks account number uniqueness so callers get a typed conflict
// error instead of a raw constraint violation. The schema's UNIQUE column
// still backstops the check-then-write race.
func (r *AccountRepository) Create(a *models.Account) (*models.Account, error) {
	existing, err := r.GetByAccountNumber(a.AccountNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateAccountNumber
	}

	ownership := a.AccountOwnershipType
	if ownership == "" {
		ownership = "individual"
	}

	now := time.Now()
	result, err := r.db.Exec(`
		INSERT INTO accounts (account_number, account_type, account_ownership_type,
			balance, interest_rate, maturity_date, institution_id,
			deletion_status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 'active', ?, ?)
	`, a.AccountNumber, a.AccountType, ownership,
		a.Balance.String(), nullFloat(a.InterestRate), nullString(a.MaturityDate),
		a.InstitutionID, now, now)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetByID(id, false)
}

func (r *AccountRepository) Update(id int64, req *models.UpdateAccountRequest) (*models.Account, error) {
	var sets []string
	var args []interface{}

	if req.AccountNumber != nil {
		existing, err := r.GetByAccountNumber(*req.AccountNumber)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrDuplicateAccountNumber
		}
		sets = append(sets, "account_number = ?")
		args = append(args, *req.AccountNumber)
	}
	if req.AccountType != nil {
		sets = append(sets, "account_type = ?")
		args = append(args, *req.AccountType)
	}
	if req.AccountOwnershipType != nil {
		sets = append(sets, "account_ownership_type = ?")
		args = append(args, *req.AccountOwnershipType)
	}
	if req.Balance != nil {
		balance, err := decimal.NewFromString(*req.Balance)
		if err != nil {
			return nil, fmt.Errorf("invalid balance %q: %w", *req.Balance, err)
		}
		sets = append(sets, "balance = ?")
		args = append(args, balance.String())
	}
	if req.InterestRate != nil {
		sets = append(sets, "interest_rate = ?")
		args = append(args, *req.InterestRate)
	}
	if req.MaturityDate != nil {
		sets = append(sets, "maturity_date = ?")
		args = append(args, *req.MaturityDate)
	}
	if req.InstitutionID != nil {
		sets = append(sets, "institution_id = ?")
		args = append(args, *req.InstitutionID)
	}

	if len(sets) == 0 {
		return r.GetByID(id, false)
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now(), id)

	query := fmt.Sprintf("UPDATE accounts SET %s WHERE id = ?", strings.Join(sets, ", "))
	if _, err := r.db.Exec(query, args...); err != nil {
		return nil, err
	}

	return r.GetByID(id, false)
}

func (r *AccountRepository) SoftDelete(id int64) error {
	_, err := r.db.Exec(`
		UPDATE accounts
		SET deletion_status = 'soft_deleted', updated_at = ?
		WHERE id = ?
	`, time.Now(), id)
	return err
}

func (r *AccountRepository) HardDelete(id int64) error {
	_, err := r.db.Exec("DELETE FROM accounts WHERE id = ?", id)
	return err
}

func (r *AccountRepository) Restore(id int64) error {
	_, err := r.db.Exec(`
		UPDATE accounts
		SET deletion_status = 'active', updated_at = ?
		WHERE id = ?
	`, time.Now(), id)
	return err
}

func (r *AccountRepository) GetByAccountType(accountType models.AccountType) ([]models.Account, error) {
	return r.GetAll(models.AccountFilters{AccountType: string(accountType)})
}

func (r *AccountRepository) GetByInstitutionType(institutionType models.InstitutionType) ([]models.Account, error) {
	return r.GetAll(models.AccountFilters{InstitutionType: string(institutionType)})
}

func (r *AccountRepository) Search(term string) ([]models.Account, error) {
	return r.GetAll(models.AccountFilters{Search: term})
}

func (r *AccountRepository) Count(includeDeleted bool) (int, error) {
	query := "SELECT COUNT(*) FROM accounts"
	if !includeDeleted {
		query += " WHERE deletion_status = 'active'"
	}

	var count int
	if err := r.db.QueryRow(query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// SetBalance overwrites the stored balance column. Used when a completed
// transaction carries a balance_after snapshot.
func (r *AccountRepository) SetBalance(id int64, balance decimal.Decimal) error {
	_, err := r.db.Exec(`
		UPDATE accounts SET balance = ?, updated_at = ? WHERE id = ?
	`, balance.String(), time.Now(), id)
	return err
}

// nullFloat stores NULL only for an absent value; zero is stored as-is.
func nullFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}
