package database

import (
	"backoffice/models"
	"database/sql"
	"time"
)

type DocumentRepository struct {
	db *DB
}

func NewDocumentRepository(db *DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

const documentColumns = `id, entity_type, entity_id, document_type, file_name,
	original_name, file_path, file_size, mime_type,
	is_verified, verified_by, verified_at, is_active, uploaded_at`

func scanDocument(scanner interface {
	Scan(dest ...interface{}) error
}) (*models.Document, error) {
	var d models.Document
	var documentType, verifiedBy sql.NullString
	var verifiedAt sql.NullTime

	err := scanner.Scan(&d.ID, &d.EntityType, &d.EntityID, &documentType, &d.FileName,
		&d.OriginalName, &d.FilePath, &d.FileSize, &d.MimeType,
		&d.IsVerified, &verifiedBy, &verifiedAt, &d.IsActive, &d.UploadedAt)
	if err != nil {
		return nil, err
	}

	d.DocumentType = documentType.String
	d.VerifiedBy = verifiedBy.String
	if verifiedAt.Valid {
		d.VerifiedAt = &verifiedAt.Time
	}
	return &d, nil
}

func (r *DocumentRepository) Create(d *models.Document) (*models.Document, error) {
	result, err := r.db.Exec(`
		INSERT INTO documents (entity_type, entity_id, document_type, file_name,
			original_name, file_path, file_size, mime_type, is_verified, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, 1)
	`, d.EntityType, d.EntityID, nullString(d.DocumentType), d.FileName,
		d.OriginalName, d.FilePath, d.FileSize, d.MimeType)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

func (r *DocumentRepository) GetByID(id int64) (*models.Document, error) {
	d, err := scanDocument(r.db.QueryRow(
		"SELECT "+documentColumns+" FROM documents WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DocumentRepository) GetByEntity(entityType string, entityID int64) ([]models.Document, error) {
	rows, err := r.db.Query(`
		SELECT `+documentColumns+`
		FROM documents
		WHERE entity_type = ? AND entity_id = ? AND is_active = 1
		ORDER BY uploaded_at DESC
	`, entityType, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	documents := make([]models.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		documents = append(documents, *d)
	}

	return documents, rows.Err()
}

func (r *DocumentRepository) Verify(id int64, verifiedBy string) (*models.Document, error) {
	_, err := r.db.Exec(`
		UPDATE documents
		SET is_verified = 1, verified_by = ?, verified_at = ?
		WHERE id = ?
	`, verifiedBy, time.Now(), id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

// Deactivate soft-deletes the document via the is_active flag; the file on
// disk is left in place.
func (r *DocumentRepository) Deactivate(id int64) error {
	_, err := r.db.Exec("UPDATE documents SET is_active = 0 WHERE id = ?", id)
	return err
}

func (r *DocumentRepository) Delete(id int64) error {
	_, err := r.db.Exec("DELETE FROM documents WHERE id = ?", id)
	return err
}
