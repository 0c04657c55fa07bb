package database

import (
	"backoffice/models"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type ClientRepository struct {
	db *DB
}

func NewClientRepository(db *DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// clientSelect is the denormalized read: address join plus two contact
// self-joins restricted to the primary email/phone rows.
const clientSelect = `
	SELECT c.id, c.title, c.first_name, c.middle_name, c.last_name,
	       c.date_of_birth, c.gender, c.occupation, c.kyc_number,
	       c.pan_number, c.aadhaar_number, c.address_id,
	       c.linked_client_id, c.linked_client_relationship,
	       c.status, c.deletion_status, c.created_at, c.updated_at,
	       a.address_line1, a.address_line2, a.address_line3,
	       a.state, a.district, a.pincode, a.country,
	       pe.contact_details, pp.contact_details
	FROM clients c
	LEFT JOIN addresses a ON a.id = c.address_id
	LEFT JOIN contacts pe ON pe.client_id = c.id
		AND pe.type = 'email' AND pe.contact_priority = 'primary'
	LEFT JOIN contacts pp ON pp.client_id = c.id
		AND pp.type = 'phone' AND pp.contact_priority = 'primary'`

func scanClient(scanner interface {
	Scan(dest ...interface{}) error
}) (*models.Client, error) {
	var c models.Client
	var title, middleName, dob, gender, occupation sql.NullString
	var kyc, pan, aadhaar, linkedRel sql.NullString
	var addressID, linkedClientID sql.NullInt64
	var line1, line2, line3, state, district, pincode, country sql.NullString
	var email, phone sql.NullString

	err := scanner.Scan(
		&c.ID, &title, &c.FirstName, &middleName, &c.LastName,
		&dob, &gender, &occupation, &kyc,
		&pan, &aadhaar, &addressID,
		&linkedClientID, &linkedRel,
		&c.Status, &c.DeletionStatus, &c.CreatedAt, &c.UpdatedAt,
		&line1, &line2, &line3,
		&state, &district, &pincode, &country,
		&email, &phone,
	)
	if err != nil {
		return nil, err
	}

	c.Title = title.String
	c.MiddleName = middleName.String
	c.DateOfBirth = dob.String
	c.Gender = gender.String
	c.Occupation = occupation.String
	c.KYCNumber = kyc.String
	c.PANNumber = pan.String
	c.AadhaarNumber = aadhaar.String
	c.LinkedClientRelationship = linkedRel.String
	c.Email = email.String
	c.Phone = phone.String

	if addressID.Valid {
		c.AddressID = &addressID.Int64
		c.Address = &models.Address{
			ID:           addressID.Int64,
			AddressLine1: line1.String,
			AddressLine2: line2.String,
			AddressLine3: line3.String,
			State:        state.String,
			District:     district.String,
			Pincode:      pincode.String,
			Country:      country.String,
		}
	}
	if linkedClientID.Valid {
		c.LinkedClientID = &linkedClientID.Int64
	}

	return &c, nil
}

func (r *ClientRepository) GetAll(filters models.ClientFilters) ([]models.Client, error) {
	var conditions []string
	var args []interface{}

	if !filters.IncludeDeleted {
		conditions = append(conditions, "c.deletion_status = 'active'")
	}
	if filters.Status != "" {
		conditions = append(conditions, "c.status = ?")
		args = append(args, filters.Status)
	}
	if filters.State != "" {
		conditions = append(conditions, "a.state = ?")
		args = append(args, filters.State)
	}
	if filters.District != "" {
		conditions = append(conditions, "a.district = ?")
		args = append(args, filters.District)
	}
	if filters.Search != "" {
		conditions = append(conditions,
			"(c.first_name LIKE ? OR c.last_name LIKE ? OR c.kyc_number LIKE ? OR c.pan_number LIKE ?)")
		pattern := "%" + filters.Search + "%"
		args = append(args, pattern, pattern, pattern, pattern)
	}

	query := clientSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY c.last_name, c.first_name"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]models.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachContacts(clients); err != nil {
		return nil, err
	}

	return clients, nil
}

// attachContacts batch-fetches the full contact list for every client in one
// query and groups it by client id. The primary email/phone are already joined
// in; this surfaces the unbounded list without an N+1 round trip per client.
func (r *ClientRepository) attachContacts(clients []models.Client) error {
	if len(clients) == 0 {
		return nil
	}

	placeholders := make([]string, len(clients))
	args := make([]interface{}, len(clients))
	for i, c := range clients {
		placeholders[i] = "?"
		args[i] = c.ID
	}

	rows, err := r.db.Query(`
		SELECT id, client_id, type, contact_priority, contact_details, created_at, updated_at
		FROM contacts
		WHERE client_id IN (`+strings.Join(placeholders, ",")+`)
		ORDER BY client_id, type, contact_priority
	`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	byClient := make(map[int64][]models.Contact)
	for rows.Next() {
		var contact models.Contact
		var priority sql.NullString
		if err := rows.Scan(&contact.ID, &contact.ClientID, &contact.Type,
			&priority, &contact.ContactDetails, &contact.CreatedAt, &contact.UpdatedAt); err != nil {
			return err
		}
		contact.ContactPriority = priority.String
		byClient[contact.ClientID] = append(byClient[contact.ClientID], contact)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range clients {
		clients[i].Contacts = byClient[clients[i].ID]
	}

	return nil
}

func (r *ClientRepository) GetByID(id int64, includeDeleted bool) (*models.Client, error) {
	query := clientSelect + " WHERE c.id = ?"
	if !includeDeleted {
		query += " AND c.deletion_status = 'active'"
	}

	c, err := scanClient(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	clients := []models.Client{*c}
	if err := r.attachContacts(clients); err != nil {
		return nil, err
	}
	c = &clients[0]

	linked, err := r.resolveLinkedClients(c)
	if err != nil {
		return nil, err
	}
	c.AllLinkedClients = linked

	return c, nil
}

// resolveLinkedClients merges both directions of the client relationship: the
// forward link stored on this row and reverse links stored on other active
// clients that point back here. The relationship metadata lives only on the
// referencing row but is visible from either side.
func (r *ClientRepository) resolveLinkedClients(c *models.Client) ([]models.LinkedClient, error) {
	linked := make([]models.LinkedClient, 0)

	if c.LinkedClientID != nil {
		var name string
		err := r.db.QueryRow(`
			SELECT first_name || ' ' || last_name
			FROM clients
			WHERE id = ? AND deletion_status = 'active'
		`, *c.LinkedClientID).Scan(&name)
		if err != nil && err != sql.ErrNoRows {
			return nil, err
		}
		if err == nil {
			c.LinkedClientName = name
			linked = append(linked, models.LinkedClient{
				ClientID:         *c.LinkedClientID,
				Name:             name,
				RelationshipType: c.LinkedClientRelationship,
			})
		}
	}

	rows, err := r.db.Query(`
		SELECT id, first_name || ' ' || last_name, linked_client_relationship
		FROM clients
		WHERE linked_client_id = ? AND deletion_status = 'active'
	`, c.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var lc models.LinkedClient
		var rel sql.NullString
		if err := rows.Scan(&lc.ClientID, &lc.Name, &rel); err != nil {
			return nil, err
		}
		lc.RelationshipType = rel.String
		linked = append(linked, lc)
	}

	return linked, rows.Err()
}

func (r *ClientRepository) Create(c *models.Client) (*models.Client, error) {
	now := time.Now()
	result, err := r.db.Exec(`
		INSERT INTO clients (title, first_name, middle_name, last_name,
			date_of_birth, gender, occupation, kyc_number, pan_number, aadhaar_number,
			address_id, linked_client_id, linked_client_relationship,
			status, deletion_status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'active', ?, ?)
	`,
		nullString(c.Title), c.FirstName, nullString(c.MiddleName), c.LastName,
		nullString(c.DateOfBirth), nullString(c.Gender), nullString(c.Occupation),
		nullString(c.KYCNumber), nullString(c.PANNumber), nullString(c.AadhaarNumber),
		c.AddressID, c.LinkedClientID, nullString(c.LinkedClientRelationship),
		string(statusOrDefault(c.Status)), now, now,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetByID(id, false)
}

func statusOrDefault(s models.ClientStatus) models.ClientStatus {
	if s == "" {
		return models.ClientStatusPending
	}
	return s
}

// Update mutates only the allow-listed columns carried by the request; any
// other field in the incoming payload is ignored, not an error.
func (r *ClientRepository) Update(id int64, req *models.UpdateClientRequest) (*models.Client, error) {
	var sets []string
	var args []interface{}

	set := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if req.Title != nil {
		set("title", *req.Title)
	}
	if req.FirstName != nil {
		set("first_name", *req.FirstName)
	}
	if req.MiddleName != nil {
		set("middle_name", *req.MiddleName)
	}
	if req.LastName != nil {
		set("last_name", *req.LastName)
	}
	if req.DateOfBirth != nil {
		set("date_of_birth", *req.DateOfBirth)
	}
	if req.Gender != nil {
		set("gender", *req.Gender)
	}
	if req.Occupation != nil {
		set("occupation", *req.Occupation)
	}
	if req.KYCNumber != nil {
		set("kyc_number", *req.KYCNumber)
	}
	if req.PANNumber != nil {
		set("pan_number", *req.PANNumber)
	}
	if req.AadhaarNumber != nil {
		set("aadhaar_number", *req.AadhaarNumber)
	}
	if req.AddressID != nil {
		set("address_id", *req.AddressID)
	}
	if req.LinkedClientID != nil {
		set("linked_client_id", *req.LinkedClientID)
	}
	if req.LinkedClientRelationship != nil {
		set("linked_client_relationship", *req.LinkedClientRelationship)
	}
	if req.Status != nil {
		set("status", *req.Status)
	}

	if len(sets) == 0 {
		return r.GetByID(id, false)
	}

	set("updated_at", time.Now())
	args = append(args, id)

	query := fmt.Sprintf("UPDATE clients SET %s WHERE id = ?", strings.Join(sets, ", "))
	if _, err := r.db.Exec(query, args...); err != nil {
		return nil, err
	}

	return r.GetByID(id, false)
}

// SoftDelete flips deletion_status; idempotent and recoverable via Restore.
func (r *ClientRepository) SoftDelete(id int64) error {
	_, err := r.db.Exec(`
		UPDATE clients
		SET deletion_status = 'soft_deleted', updated_at = ?
		WHERE id = ?
	`, time.Now(), id)
	return err
}

// HardDelete permanently removes the row. FK cascades drop contacts and
// holder rows; address and reverse links fall back to SET NULL.
func (r *ClientRepository) HardDelete(id int64) error {
	_, err := r.db.Exec("DELETE FROM clients WHERE id = ?", id)
	return err
}

func (r *ClientRepository) Restore(id int64) error {
	_, err := r.db.Exec(`
		UPDATE clients
		SET deletion_status = 'active', updated_at = ?
		WHERE id = ?
	`, time.Now(), id)
	return err
}

func (r *ClientRepository) Count(includeDeleted bool) (int, error) {
	query := "SELECT COUNT(*) FROM clients"
	if !includeDeleted {
		query += " WHERE deletion_status = 'active'"
	}

	var count int
	if err := r.db.QueryRow(query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ClientRepository) GetByStatus(status models.ClientStatus) ([]models.Client, error) {
	return r.GetAll(models.ClientFilters{Status: string(status)})
}

func (r *ClientRepository) Search(term string) ([]models.Client, error) {
	return r.GetAll(models.ClientFilters{Search: term})
}

// GetByLinkedClientID returns active clients whose stored link points at the
// given client (reverse-link discovery).
func (r *ClientRepository) GetByLinkedClientID(linkedClientID int64) ([]models.Client, error) {
	rows, err := r.db.Query(clientSelect+`
		WHERE c.linked_client_id = ? AND c.deletion_status = 'active'
		ORDER BY c.last_name, c.first_name
	`, linkedClientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]models.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *c)
	}

	return clients, rows.Err()
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
