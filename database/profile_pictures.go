package database

import (
	"backoffice/models"
	"database/sql"
)

type ProfilePictureRepository struct {
	db *DB
}

func NewProfilePictureRepository(db *DB) *ProfilePictureRepository {
	return &ProfilePictureRepository{db: db}
}

const profilePictureColumns = `id, entity_type, entity_id, file_name,
	original_name, file_path, file_size, mime_type, is_active, uploaded_at`

func scanProfilePicture(scanner interface {
	Scan(dest ...interface{}) error
}) (*models.ProfilePicture, error) {
	var p models.ProfilePicture
	err := scanner.Scan(&p.ID, &p.EntityType, &p.EntityID, &p.FileName,
		&p.OriginalName, &p.FilePath, &p.FileSize, &p.MimeType, &p.IsActive, &p.UploadedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SetForEntity deactivates any current picture for the entity and inserts the
// new one inside a single transaction, so an entity never has two active
// pictures.
func (r *ProfilePictureRepository) SetForEntity(p *models.ProfilePicture) (*models.ProfilePicture, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE profile_pictures
		SET is_active = 0
		WHERE entity_type = ? AND entity_id = ? AND is_active = 1
	`, p.EntityType, p.EntityID)
	if err != nil {
		return nil, err
	}

	result, err := tx.Exec(`
		INSERT INTO profile_pictures (entity_type, entity_id, file_name,
			original_name, file_path, file_size, mime_type, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1)
	`, p.EntityType, p.EntityID, p.FileName, p.OriginalName,
		p.FilePath, p.FileSize, p.MimeType)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

func (r *ProfilePictureRepository) GetByID(id int64) (*models.ProfilePicture, error) {
	p, err := scanProfilePicture(r.db.QueryRow(
		"SELECT "+profilePictureColumns+" FROM profile_pictures WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProfilePictureRepository) GetActiveForEntity(entityType string, entityID int64) (*models.ProfilePicture, error) {
	p, err := scanProfilePicture(r.db.QueryRow(`
		SELECT `+profilePictureColumns+`
		FROM profile_pictures
		WHERE entity_type = ? AND entity_id = ? AND is_active = 1
	`, entityType, entityID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProfilePictureRepository) Deactivate(id int64) error {
	_, err := r.db.Exec("UPDATE profile_pictures SET is_active = 0 WHERE id = ?", id)
	return err
}
