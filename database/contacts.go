package database

import (
	"backoffice/models"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type ContactRepository struct {
	db *DB
}

func NewContactRepository(db *DB) *ContactRepository {
	return &ContactRepository{db: db}
}

const contactColumns = "id, client_id, type, contact_priority, contact_details, created_at, updated_at"

func scanContact(scanner interface {
	Scan(dest ...interface{}) error
}) (*models.Contact, error) {
	var c models.Contact
	var priority sql.NullString

	err := scanner.Scan(&c.ID, &c.ClientID, &c.Type, &priority,
		&c.ContactDetails, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	c.ContactPriority = priority.String
	return &c, nil
}

func (r *ContactRepository) GetByClientID(clientID int64) ([]models.Contact, error) {
	rows, err := r.db.Query(`
		SELECT `+contactColumns+`
		FROM contacts
		WHERE client_id = ?
		ORDER BY type, contact_priority
	`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := make([]models.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *c)
	}

	return contacts, rows.Err()
}

func (r *ContactRepository) GetByID(id int64) (*models.Contact, error) {
	c, err := scanContact(r.db.QueryRow(`
		SELECT `+contactColumns+` FROM contacts WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ContactRepository) GetByTypeAndClient(clientID int64, contactType models.ContactType) ([]models.Contact, error) {
	rows, err := r.db.Query(`
		SELECT `+contactColumns+`
		FROM contacts
		WHERE client_id = ? AND type = ?
		ORDER BY contact_priority
	`, clientID, contactType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := make([]models.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *c)
	}

	return contacts, rows.Err()
}

func (r *ContactRepository) GetPrimaryContact(clientID int64, contactType models.ContactType) (*models.Contact, error) {
	c, err := scanContact(r.db.QueryRow(`
		SELECT `+contactColumns+`
		FROM contacts
		WHERE client_id = ? AND type = ? AND contact_priority = 'primary'
	`, clientID, contactType))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ContactRepository) Create(c *models.Contact) (*models.Contact, error) {
	now := time.Now()
	result, err := r.db.Exec(`
		INSERT INTO contacts (client_id, type, contact_priority, contact_details, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.ClientID, c.Type, nullString(c.ContactPriority), c.ContactDetails, now, now)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

// CreateMultiple inserts each contact independently in order. The batch is
// deliberately not atomic: a failed insert stops the loop and reports how far
// it got, leaving earlier inserts in place.
func (r *ContactRepository) CreateMultiple(clientID int64, reqs []models.CreateContactRequest) ([]models.Contact, error) {
	created := make([]models.Contact, 0, len(reqs))
	for i, req := range reqs {
		c, err := r.Create(&models.Contact{
			ClientID:        clientID,
			Type:            models.ContactType(req.Type),
			ContactPriority: req.ContactPriority,
			ContactDetails:  req.ContactDetails,
		})
		if err != nil {
			return created, fmt.Errorf("contact %d of %d failed: %w", i+1, len(reqs), err)
		}
		created = append(created, *c)
	}
	return created, nil
}

func (r *ContactRepository) Update(id int64, req *models.UpdateContactRequest) (*models.Contact, error) {
	var sets []string
	var args []interface{}

	if req.Type != nil {
		sets = append(sets, "type = ?")
		args = append(args, *req.Type)
	}
	if req.ContactPriority != nil {
		sets = append(sets, "contact_priority = ?")
		args = append(args, *req.ContactPriority)
	}
	if req.ContactDetails != nil {
		sets = append(sets, "contact_details = ?")
		args = append(args, *req.ContactDetails)
	}

	if len(sets) == 0 {
		return r.GetByID(id)
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now(), id)

	query := fmt.Sprintf("UPDATE contacts SET %s WHERE id = ?", strings.Join(sets, ", "))
	if _, err := r.db.Exec(query, args...); err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

func (r *ContactRepository) Delete(id int64) error {
	_, err := r.db.Exec("DELETE FROM contacts WHERE id = ?", id)
	return err
}

func (r *ContactRepository) DeleteByClientID(clientID int64) error {
	_, err := r.db.Exec("DELETE FROM contacts WHERE client_id = ?", clientID)
	return err
}

// SetPrimary promotes the given contact to primary for its (client, type) pair.
// Demotion of the current primary and promotion of the target happen inside one
// transaction so no reader ever observes zero or two primaries.
func (r *ContactRepository) SetPrimary(id int64) (*models.Contact, error) {
	target, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now()
	_, err = tx.Exec(`
		UPDATE contacts
		SET contact_priority = 'secondary', updated_at = ?
		WHERE client_id = ? AND type = ? AND contact_priority = 'primary'
	`, now, target.ClientID, target.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to demote existing primary: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE contacts
		SET contact_priority = 'primary', updated_at = ?
		WHERE id = ?
	`, now, id)
	if err != nil {
		return nil, fmt.Errorf("failed to promote contact: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.GetByID(id)
}
