package database

import (
	"backoffice/models"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

type AccountHolderRepository struct {
	db *DB
}

func NewAccountHolderRepository(db *DB) *AccountHolderRepository {
	return &AccountHolderRepository{db: db}
}

// Add links a client to an account with a typed role. The (account, client)
// pair is pre-checked so duplicates surface as ErrDuplicateHolder; the schema's
// UNIQUE(account_id, client_id) backstops the race.
func (r *AccountHolderRepository) Add(accountID, clientID int64, holderType models.HolderType, sharePercentage *float64) (*models.AccountHolder, error) {
	exists, err := r.IsHolder(accountID, clientID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateHolder
	}

	result, err := r.db.Exec(`
		INSERT INTO account_holders (account_id, client_id, holder_type, share_percentage)
		VALUES (?, ?, ?, ?)
	`, accountID, clientID, holderType, nullFloat(sharePercentage))
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

func (r *AccountHolderRepository) GetByID(id int64) (*models.AccountHolder, error) {
	var h models.AccountHolder
	var share sql.NullFloat64

	err := r.db.QueryRow(`
		SELECT ah.id, ah.account_id, ah.client_id, ah.holder_type, ah.share_percentage,
		       ah.created_at, c.first_name || ' ' || c.last_name
		FROM account_holders ah
		JOIN clients c ON c.id = ah.client_id
		WHERE ah.id = ?
	`, id).Scan(&h.ID, &h.AccountID, &h.ClientID, &h.HolderType, &share, &h.CreatedAt, &h.ClientName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if share.Valid {
		h.SharePercentage = &share.Float64
	}
	return &h, nil
}

func (r *AccountHolderRepository) IsHolder(accountID, clientID int64) (bool, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM account_holders WHERE account_id = ? AND client_id = ?
	`, accountID, clientID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AccountHolderRepository) Remove(accountID, clientID int64) error {
	_, err := r.db.Exec(`
		DELETE FROM account_holders WHERE account_id = ? AND client_id = ?
	`, accountID, clientID)
	return err
}

func (r *AccountHolderRepository) GetByAccountID(accountID int64) ([]models.AccountHolder, error) {
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

	return collectHolders(rows)
}

func (r *AccountHolderRepository) GetByClientID(clientID int64) ([]models.AccountHolder, error) {
	rows, err := r.db.Query(`
		SELECT ah.id, ah.account_id, ah.client_id, ah.holder_type, ah.share_percentage,
		       ah.created_at, c.first_name || ' ' || c.last_name
		FROM account_holders ah
		JOIN clients c ON c.id = ah.client_id
		WHERE ah.client_id = ?
		ORDER BY ah.account_id
	`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectHolders(rows)
}

func collectHolders(rows *sql.Rows) ([]models.AccountHolder, error) {
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

// FindClientAccountsWithDetails returns every active account the client holds,
// enriched with the institution and the client's role on the account.
func (r *AccountHolderRepository) FindClientAccountsWithDetails(clientID int64) ([]models.ClientAccountDetail, error) {
	rows, err := r.db.Query(`
		SELECT acc.id, acc.account_number, acc.account_type, acc.account_ownership_type,
		       acc.balance, acc.interest_rate, acc.maturity_date, acc.institution_id,
		       acc.deletion_status, acc.created_at, acc.updated_at,
		       i.institution_name, i.institution_type,
		       ah.holder_type, ah.share_percentage
		FROM account_holders ah
		JOIN accounts acc ON acc.id = ah.account_id
		JOIN institutions i ON i.id = acc.institution_id
		WHERE ah.client_id = ? AND acc.deletion_status = 'active'
		ORDER BY acc.account_number
	`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]models.ClientAccountDetail, 0)
	for rows.Next() {
		var d models.ClientAccountDetail
		var balance string
		var interestRate, share sql.NullFloat64
		var maturityDate sql.NullString

		err := rows.Scan(&d.ID, &d.AccountNumber, &d.AccountType, &d.AccountOwnershipType,
			&balance, &interestRate, &maturityDate, &d.InstitutionID,
			&d.DeletionStatus, &d.CreatedAt, &d.UpdatedAt,
			&d.InstitutionName, &d.InstitutionType,
			&d.HolderType, &share)
		if err != nil {
			return nil, err
		}

		d.Balance, err = decimal.NewFromString(balance)
		if err != nil {
			return nil, fmt.Errorf("failed to parse balance %q: %w", balance, err)
		}
		if interestRate.Valid {
			d.InterestRate = &interestRate.Float64
		}
		d.MaturityDate = maturityDate.String
		if share.Valid {
			d.SharePercentage = &share.Float64
		}
		details = append(details, d)
	}

	return details, rows.Err()
}

// FindAccountHoldersWithDetails returns the holders of an active account with
// client names resolved.
func (r *AccountHolderRepository) FindAccountHoldersWithDetails(accountID int64) ([]models.AccountHolder, error) {
	rows, err := r.db.Query(`
		SELECT ah.id, ah.account_id, ah.client_id, ah.holder_type, ah.share_percentage,
		       ah.created_at, c.first_name || ' ' || c.last_name
		FROM account_holders ah
		JOIN accounts acc ON acc.id = ah.account_id
		JOIN clients c ON c.id = ah.client_id
		WHERE ah.account_id = ? AND acc.deletion_status = 'active'
		ORDER BY ah.holder_type
	`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectHolders(rows)
}

func (r *AccountHolderRepository) UpdateHolder(accountID, clientID int64, holderType models.HolderType, sharePercentage *float64) error {
	_, err := r.db.Exec(`
		UPDATE account_holders
		SET holder_type = ?, share_percentage = ?
		WHERE account_id = ? AND client_id = ?
	`, holderType, nullFloat(sharePercentage), accountID, clientID)
	return err
}
