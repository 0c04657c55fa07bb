package database

import (
	"backoffice/models"
	"database/sql"
	"time"
)

type InstitutionRepository struct {
	db *DB
}

func NewInstitutionRepository(db *DB) *InstitutionRepository {
	return &InstitutionRepository{db: db}
}

const institutionColumns = `id, institution_type, institution_name, branch_code,
	ifsc_code, address_id, created_at, updated_at`

func scanInstitution(scanner interface {
	Scan(dest ...interface{}) error
}) (*models.Institution, error) {
	var inst models.Institution
	var branchCode, ifscCode sql.NullString
	var addressID sql.NullInt64

	err := scanner.Scan(&inst.ID, &inst.InstitutionType, &inst.InstitutionName,
		&branchCode, &ifscCode, &addressID, &inst.CreatedAt, &inst.UpdatedAt)
	if err != nil {
		return nil, err
	}

	inst.BranchCode = branchCode.String
	inst.IFSCCode = ifscCode.String
	if addressID.Valid {
		inst.AddressID = &addressID.Int64
	}
	return &inst, nil
}

func (r *InstitutionRepository) GetAll() ([]models.Institution, error) {
	rows, err := r.db.Query("SELECT " + institutionColumns + " FROM institutions ORDER BY institution_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	institutions := make([]models.Institution, 0)
	for rows.Next() {
		inst, err := scanInstitution(rows)
		if err != nil {
			return nil, err
		}
		institutions = append(institutions, *inst)
	}

	return institutions, rows.Err()
}

func (r *InstitutionRepository) GetByID(id int64) (*models.Institution, error) {
	inst, err := scanInstitution(r.db.QueryRow(
		"SELECT "+institutionColumns+" FROM institutions WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return inst, nil
}

func (r *InstitutionRepository) GetByType(institutionType models.InstitutionType) ([]models.Institution, error) {
	rows, err := r.db.Query(`
		SELECT `+institutionColumns+`
		FROM institutions
		WHERE institution_type = ?
		ORDER BY institution_name
	`, institutionType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	institutions := make([]models.Institution, 0)
	for rows.Next() {
		inst, err := scanInstitution(rows)
		if err != nil {
			return nil, err
		}
		institutions = append(institutions, *inst)
	}

	return institutions, rows.Err()
}

func (r *InstitutionRepository) Create(inst *models.Institution) (*models.Institution, error) {
	now := time.Now()
	result, err := r.db.Exec(`
		INSERT INTO institutions (institution_type, institution_name, branch_code,
			ifsc_code, address_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, inst.InstitutionType, inst.InstitutionName, nullString(inst.BranchCode),
		nullString(inst.IFSCCode), inst.AddressID, now, now)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

func (r *InstitutionRepository) Update(id int64, inst *models.Institution) (*models.Institution, error) {
	_, err := r.db.Exec(`
		UPDATE institutions SET
			institution_type = ?,
			institution_name = ?,
			branch_code = ?,
			ifsc_code = ?,
			address_id = ?,
			updated_at = ?
		WHERE id = ?
	`, inst.InstitutionType, inst.InstitutionName, nullString(inst.BranchCode),
		nullString(inst.IFSCCode), inst.AddressID, time.Now(), id)
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

// Delete fails with a FK error while accounts still reference the institution
// (ON DELETE RESTRICT).
func (r *InstitutionRepository) Delete(id int64) error {
	_, err := r.db.Exec("DELETE FROM institutions WHERE id = ?", id)
	return err
}
