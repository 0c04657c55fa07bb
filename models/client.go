package models

import "time"

// DeletionStatus tracks row lifecycle. Hard-deleted rows are removed outright,
// so the only persisted values are "active" and "soft_deleted".
type DeletionStatus string

const (
	DeletionStatusActive      DeletionStatus = "active"
	DeletionStatusSoftDeleted DeletionStatus = "soft_deleted"
)

type ClientStatus string

const (
	ClientStatusInviteNow ClientStatus = "invite_now"
	ClientStatusPending   ClientStatus = "pending"
	ClientStatusActive    ClientStatus = "active"
	ClientStatusSuspended ClientStatus = "suspended"
	ClientStatusDeleted   ClientStatus = "deleted"
)

type Client struct {
	ID                        int64          `json:"id"`
	Title                     string         `json:"title,omitempty"`
	FirstName                 string         `json:"first_name"`
	MiddleName                string         `json:"middle_name,omitempty"`
	LastName                  string         `json:"last_name"`
	DateOfBirth               string         `json:"date_of_birth,omitempty"`
	Gender                    string         `json:"gender,omitempty"`
	Occupation                string         `json:"occupation,omitempty"`
	KYCNumber                 string         `json:"kyc_number,omitempty"`
	PANNumber                 string         `json:"pan_number,omitempty"`
	AadhaarNumber             string         `json:"aadhaar_number,omitempty"`
	AddressID                 *int64         `json:"address_id,omitempty"`
	LinkedClientID            *int64         `json:"linked_client_id,omitempty"`
	LinkedClientRelationship  string         `json:"linked_client_relationship,omitempty"`
	Status                    ClientStatus   `json:"status"`
	DeletionStatus            DeletionStatus `json:"deletion_status"`
	CreatedAt                 time.Time      `json:"created_at"`
	UpdatedAt                 time.Time      `json:"updated_at"`

	// Denormalized fields populated by joined reads.
	Address          *Address       `json:"address,omitempty"`
	Email            string         `json:"email,omitempty"`
	Phone            string         `json:"phone,omitempty"`
	Contacts         []Contact      `json:"contacts,omitempty"`
	LinkedClientName string         `json:"linked_client_name,omitempty"`
	AllLinkedClients []LinkedClient `json:"all_linked_clients,omitempty"`
}

// LinkedClient is one side of a client relationship. The relationship row is
// stored once, on the referencing client; reads surface it from both sides.
type LinkedClient struct {
	ClientID         int64  `json:"client_id"`
	Name             string `json:"name"`
	RelationshipType string `json:"relationship_type"`
}

type ContactType string

const (
	ContactTypeEmail ContactType = "email"
	ContactTypePhone ContactType = "phone"
)

type ContactPriority string

const (
	ContactPriorityPrimary   ContactPriority = "primary"
	ContactPrioritySecondary ContactPriority = "secondary"
)

type Contact struct {
	ID              int64       `json:"id"`
	ClientID        int64       `json:"client_id"`
	Type            ContactType `json:"type"`
	ContactPriority string      `json:"contact_priority,omitempty"`
	ContactDetails  string      `json:"contact_details"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type Address struct {
	ID           int64     `json:"id"`
	AddressLine1 string    `json:"address_line1"`
	AddressLine2 string    `json:"address_line2,omitempty"`
	AddressLine3 string    `json:"address_line3,omitempty"`
	State        string    `json:"state,omitempty"`
	District     string    `json:"district,omitempty"`
	Pincode      string    `json:"pincode"`
	Country      string    `json:"country"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ClientFilters narrows ClientRepository.GetAll.
type ClientFilters struct {
	Status         string
	Search         string
	State          string
	District       string
	IncludeDeleted bool
}

type CreateClientRequest struct {
	Title                    string                 `json:"title"`
	FirstName                string                 `json:"first_name" validate:"required,max=100"`
	MiddleName               string                 `json:"middle_name"`
	LastName                 string                 `json:"last_name" validate:"required,max=100"`
	DateOfBirth              string                 `json:"date_of_birth"`
	Gender                   string                 `json:"gender" validate:"omitempty,oneof=male female other"`
	Occupation               string                 `json:"occupation"`
	KYCNumber                string                 `json:"kyc_number"`
	PANNumber                string                 `json:"pan_number" validate:"omitempty,pan"`
	AadhaarNumber            string                 `json:"aadhaar_number" validate:"omitempty,aadhaar"`
	LinkedClientID           *int64                 `json:"linked_client_id"`
	LinkedClientRelationship string                 `json:"linked_client_relationship" validate:"omitempty,oneof=spouse parent child sibling business_partner guarantor other"`
	Status                   string                 `json:"status" validate:"omitempty,oneof=invite_now pending active suspended deleted"`
	Address                  *CreateAddressRequest  `json:"address" validate:"omitempty"`
	Contacts                 []CreateContactRequest `json:"contacts" validate:"omitempty,dive"`
}

type UpdateClientRequest struct {
	Title                    *string `json:"title"`
	FirstName                *string `json:"first_name" validate:"omitempty,max=100"`
	MiddleName               *string `json:"middle_name"`
	LastName                 *string `json:"last_name" validate:"omitempty,max=100"`
	DateOfBirth              *string `json:"date_of_birth"`
	Gender                   *string `json:"gender" validate:"omitempty,oneof=male female other"`
	Occupation               *string `json:"occupation"`
	KYCNumber                *string `json:"kyc_number"`
	PANNumber                *string `json:"pan_number" validate:"omitempty,pan"`
	AadhaarNumber            *string `json:"aadhaar_number" validate:"omitempty,aadhaar"`
	AddressID                *int64  `json:"address_id"`
	LinkedClientID           *int64  `json:"linked_client_id"`
	LinkedClientRelationship *string `json:"linked_client_relationship" validate:"omitempty,oneof=spouse parent child sibling business_partner guarantor other"`
	Status                   *string `json:"status" validate:"omitempty,oneof=invite_now pending active suspended deleted"`
}

type CreateAddressRequest struct {
	AddressLine1 string `json:"address_line1" validate:"required"`
	AddressLine2 string `json:"address_line2"`
	AddressLine3 string `json:"address_line3"`
	State        string `json:"state"`
	District     string `json:"district"`
	Pincode      string `json:"pincode" validate:"required,pincode"`
	Country      string `json:"country"`
}

type CreateContactRequest struct {
	ClientID        int64  `json:"client_id"`
	Type            string `json:"type" validate:"required,oneof=email phone"`
	ContactPriority string `json:"contact_priority" validate:"omitempty,oneof=primary secondary"`
	ContactDetails  string `json:"contact_details" validate:"required"`
}

type UpdateContactRequest struct {
	Type            *string `json:"type" validate:"omitempty,oneof=email phone"`
	ContactPriority *string `json:"contact_priority" validate:"omitempty,oneof=primary secondary"`
	ContactDetails  *string `json:"contact_details"`
}
