package database

import (
	"backoffice/models"
	"database/sql"
	"time"
)

type AddressRepository struct {
	db *DB
}

func NewAddressRepository(db *DB) *AddressRepository {
	return &AddressRepository{db: db}
}

const addressColumns = `id, address_line1, address_line2, address_line3,
	state, district, pincode, country, created_at, updated_at`

func scanAddress(scanner interface {
	Scan(dest ...interface{}) error
}) (*models.Address, error) {
	var a models.Address
	var line2, line3, state, district sql.NullString

	err := scanner.Scan(&a.ID, &a.AddressLine1, &line2, &line3,
		&state, &district, &a.Pincode, &a.Country, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}

	a.AddressLine2 = line2.String
	a.AddressLine3 = line3.String
	a.State = state.String
	a.District = district.String
	return &a, nil
}

func (r *AddressRepository) GetAll() ([]models.Address, error) {
	rows, err := r.db.Query("SELECT " + addressColumns + " FROM addresses ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	addresses := make([]models.Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, *a)
	}

	return addresses, rows.Err()
}

func (r *AddressRepository) GetByID(id int64) (*models.Address, error) {
	a, err := scanAddress(r.db.QueryRow("SELECT "+addressColumns+" FROM addresses WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AddressRepository) Create(a *models.Address) (*models.Address, error) {
	country := a.Country
	if country == "" {
		country = "India"
	}

	now := time.Now()
	result, err := r.db.Exec(`
		INSERT INTO addresses (address_line1, address_line2, address_line3,
			state, district, pincode, country, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.AddressLine1, nullString(a.AddressLine2), nullString(a.AddressLine3),
		nullString(a.State), nullString(a.District), a.Pincode, country, now, now)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

func (r *AddressRepository) Update(id int64, a *models.Address) (*models.Address, error) {
	_, err := r.db.Exec(`
		UPDATE addresses SET
			address_line1 = ?,
			address_line2 = ?,
			address_line3 = ?,
			state = ?,
			district = ?,
			pincode = ?,
			country = ?,
			updated_at = ?
		WHERE id = ?
	`, a.AddressLine1, nullString(a.AddressLine2), nullString(a.AddressLine3),
		nullString(a.State), nullString(a.District), a.Pincode, a.Country, time.Now(), id)
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

// Delete removes the address; referencing clients, institutions and shops fall
// back to a NULL address_id via the schema's ON DELETE SET NULL.
func (r *AddressRepository) Delete(id int64) error {
	_, err := r.db.Exec("DELETE FROM addresses WHERE id = ?", id)
	return err
}
