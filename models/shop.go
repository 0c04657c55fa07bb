package models

import "time"

type Shop struct {
	ID             int64          `json:"id"`
	ShopName       string         `json:"shop_name"`
	ShopType       string         `json:"shop_type,omitempty"`
	Category       string         `json:"category,omitempty"`
	OwnerID        int64          `json:"owner_id"`
	AddressID      *int64         `json:"address_id,omitempty"`
	DeletionStatus DeletionStatus `json:"deletion_status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`

	OwnerName string   `json:"owner_name,omitempty"`
	Address   *Address `json:"address,omitempty"`
}

type ShopClient struct {
	ID               int64     `json:"id"`
	ShopID           int64     `json:"shop_id"`
	ClientID         int64     `json:"client_id"`
	RelationshipType string    `json:"relationship_type"`
	CreatedAt        time.Time `json:"created_at"`

	ShopName   string `json:"shop_name,omitempty"`
	ClientName string `json:"client_name,omitempty"`
}

type ShopFilters struct {
	Category       string
	Search         string
	OwnerID        int64
	IncludeDeleted bool
}

type CreateShopRequest struct {
	ShopName  string                `json:"shop_name" validate:"required,max=200"`
	ShopType  string                `json:"shop_type"`
	Category  string                `json:"category"`
	OwnerID   int64                 `json:"owner_id" validate:"required,gt=0"`
	AddressID *int64                `json:"address_id"`
	Address   *CreateAddressRequest `json:"address" validate:"omitempty"`
}

type UpdateShopRequest struct {
	ShopName  *string `json:"shop_name" validate:"omitempty,max=200"`
	ShopType  *string `json:"shop_type"`
	Category  *string `json:"category"`
	AddressID *int64  `json:"address_id"`
}

type AssociateShopClientRequest struct {
	ShopID           int64  `json:"shop_id" validate:"required,gt=0"`
	ClientID         int64  `json:"client_id" validate:"required,gt=0"`
	RelationshipType string `json:"relationship_type" validate:"required,oneof=customer supplier partner"`
}
