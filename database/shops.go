package database

import (
	"backoffice/models"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type ShopRepository struct {
	db *DB
}

func NewShopRepository(db *DB) *ShopRepository {
	return &ShopRepository{db: db}
}

const shopSelect = `
	SELECT s.id, s.shop_name, s.shop_type, s.category, s.owner_id, s.address_id,
	       s.deletion_status, s.created_at, s.updated_at,
	       c.first_name || ' ' || c.last_name,
	       a.address_line1, a.address_line2, a.address_line3,
	       a.state, a.district, a.pincode, a.country
	FROM shops s
	JOIN clients c ON c.id = s.owner_id
	LEFT JOIN addresses a ON a.id = s.address_id`

func scanShop(scanner interface {
	Scan(dest ...interface{}) error
}) (*models.Shop, error) {
	var s models.Shop
	var shopType, category sql.NullString
	var addressID sql.NullInt64
	var line1, line2, line3, state, district, pincode, country sql.NullString

	err := scanner.Scan(&s.ID, &s.ShopName, &shopType, &category, &s.OwnerID, &addressID,
		&s.DeletionStatus, &s.CreatedAt, &s.UpdatedAt,
		&s.OwnerName,
		&line1, &line2, &line3, &state, &district, &pincode, &country)
	if err != nil {
		return nil, err
	}

	s.ShopType = shopType.String
	s.Category = category.String
	if addressID.Valid {
		s.AddressID = &addressID.Int64
		s.Address = &models.Address{
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
	return &s, nil
}

func (r *ShopRepository) GetAll(filters models.ShopFilters) ([]models.Shop, error) {
	var conditions []string
	var args []interface{}

	if !filters.IncludeDeleted {
		conditions = append(conditions, "s.deletion_status = 'active'")
	}
	if filters.Category != "" {
		conditions = append(conditions, "s.category = ?")
		args = append(args, filters.Category)
	}
	if filters.OwnerID > 0 {
		conditions = append(conditions, "s.owner_id = ?")
		args = append(args, filters.OwnerID)
	}
	if filters.Search != "" {
		conditions = append(conditions, "(s.shop_name LIKE ? OR c.first_name LIKE ? OR c.last_name LIKE ?)")
		pattern := "%" + filters.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}

	query := shopSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY s.shop_name"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shops := make([]models.Shop, 0)
	for rows.Next() {
		s, err := scanShop(rows)
		if err != nil {
			return nil, err
		}
		shops = append(shops, *s)
	}

	return shops, rows.Err()
}

func (r *ShopRepository) GetByID(id int64, includeDeleted bool) (*models.Shop, error) {
	query := shopSelect + " WHERE s.id = ?"
	if !includeDeleted {
		query += " AND s.deletion_status = 'active'"
	}

	s, err := scanShop(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *ShopRepository) GetByOwnerID(ownerID int64) ([]models.Shop, error) {
	return r.GetAll(models.ShopFilters{OwnerID: ownerID})
}

func (r *ShopRepository) Create(s *models.Shop) (*models.Shop, error) {
	now := time.Now()
	result, err := r.db.Exec(`
		INSERT INTO shops (shop_name, shop_type, category, owner_id, address_id,
			deletion_status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 'active', ?, ?)
	`, s.ShopName, nullString(s.ShopType), nullString(s.Category),
		s.OwnerID, s.AddressID, now, now)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetByID(id, false)
}

func (r *ShopRepository) Update(id int64, req *models.UpdateShopRequest) (*models.Shop, error) {
	var sets []string
	var args []interface{}

	if req.ShopName != nil {
		sets = append(sets, "shop_name = ?")
		args = append(args, *req.ShopName)
	}
	if req.ShopType != nil {
		sets = append(sets, "shop_type = ?")
		args = append(args, *req.ShopType)
	}
	if req.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *req.Category)
	}
	if req.AddressID != nil {
		sets = append(sets, "address_id = ?")
		args = append(args, *req.AddressID)
	}

	if len(sets) == 0 {
		return r.GetByID(id, false)
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now(), id)

	query := fmt.Sprintf("UPDATE shops SET %s WHERE id = ?", strings.Join(sets, ", "))
	if _, err := r.db.Exec(query, args...); err != nil {
		return nil, err
	}

	return r.GetByID(id, false)
}

func (r *ShopRepository) SoftDelete(id int64) error {
	_, err := r.db.Exec(`
		UPDATE shops
		SET deletion_status = 'soft_deleted', updated_at = ?
		WHERE id = ?
	`, time.Now(), id)
	return err
}

func (r *ShopRepository) HardDelete(id int64) error {
	_, err := r.db.Exec("DELETE FROM shops WHERE id = ?", id)
	return err
}

func (r *ShopRepository) Restore(id int64) error {
	_, err := r.db.Exec(`
		UPDATE shops
		SET deletion_status = 'active', updated_at = ?
		WHERE id = ?
	`, time.Now(), id)
	return err
}
