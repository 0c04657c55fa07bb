package database

import (
	"backoffice/models"
	"database/sql"
)

type ShopClientRepository struct {
	db *DB
}

func NewShopClientRepository(db *DB) *ShopClientRepository {
	return &ShopClientRepository{db: db}
}

// Associate links a client to a shop. The pair is pre-checked so a duplicate
// association surfaces as ErrDuplicateAssociation; UNIQUE(shop_id, client_id)
// backstops the race.
func (r *ShopClientRepository) Associate(shopID, clientID int64, relationshipType string) (*models.ShopClient, error) {
	associated, err := r.IsClientAssociatedWithShop(shopID, clientID)
	if err != nil {
		return nil, err
	}
	if associated {
		return nil, ErrDuplicateAssociation
	}

	result, err := r.db.Exec(`
		INSERT INTO shop_clients (shop_id, client_id, relationship_type)
		VALUES (?, ?, ?)
	`, shopID, clientID, relationshipType)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

func (r *ShopClientRepository) GetByID(id int64) (*models.ShopClient, error) {
	var sc models.ShopClient
	err := r.db.QueryRow(`
		SELECT sc.id, sc.shop_id, sc.client_id, sc.relationship_type, sc.created_at,
		       s.shop_name, c.first_name || ' ' || c.last_name
		FROM shop_clients sc
		JOIN shops s ON s.id = sc.shop_id
		JOIN clients c ON c.id = sc.client_id
		WHERE sc.id = ?
	`, id).Scan(&sc.ID, &sc.ShopID, &sc.ClientID, &sc.RelationshipType, &sc.CreatedAt,
		&sc.ShopName, &sc.ClientName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func (r *ShopClientRepository) IsClientAssociatedWithShop(shopID, clientID int64) (bool, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM shop_clients WHERE shop_id = ? AND client_id = ?
	`, shopID, clientID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ShopClientRepository) Dissociate(shopID, clientID int64) error {
	_, err := r.db.Exec(`
		DELETE FROM shop_clients WHERE shop_id = ? AND client_id = ?
	`, shopID, clientID)
	return err
}

func (r *ShopClientRepository) GetClientsByShopID(shopID int64) ([]models.ShopClient, error) {
	rows, err := r.db.Query(`
		SELECT sc.id, sc.shop_id, sc.client_id, sc.relationship_type, sc.created_at,
		       s.shop_name, c.first_name || ' ' || c.last_name
		FROM shop_clients sc
		JOIN shops s ON s.id = sc.shop_id
		JOIN clients c ON c.id = sc.client_id
		WHERE sc.shop_id = ? AND c.deletion_status = 'active'
		ORDER BY c.last_name, c.first_name
	`, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectShopClients(rows)
}

func (r *ShopClientRepository) GetShopsByClientID(clientID int64) ([]models.ShopClient, error) {
	rows, err := r.db.Query(`
		SELECT sc.id, sc.shop_id, sc.client_id, sc.relationship_type, sc.created_at,
		       s.shop_name, c.first_name || ' ' || c.last_name
		FROM shop_clients sc
		JOIN shops s ON s.id = sc.shop_id
		JOIN clients c ON c.id = sc.client_id
		WHERE sc.client_id = ? AND s.deletion_status = 'active'
		ORDER BY s.shop_name
	`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectShopClients(rows)
}

func collectShopClients(rows *sql.Rows) ([]models.ShopClient, error) {
	associations := make([]models.ShopClient, 0)
	for rows.Next() {
		var sc models.ShopClient
		if err := rows.Scan(&sc.ID, &sc.ShopID, &sc.ClientID, &sc.RelationshipType,
			&sc.CreatedAt, &sc.ShopName, &sc.ClientName); err != nil {
			return nil, err
		}
		associations = append(associations, sc)
	}
	return associations, rows.Err()
}
