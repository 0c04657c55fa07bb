package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type InstitutionType string

const (
	InstitutionTypeBank       InstitutionType = "bank"
	InstitutionTypePostOffice InstitutionType = "post_office"
)

type Institution struct {
	ID              int64           `json:"id"`
	InstitutionType InstitutionType `json:"institution_type"`
	InstitutionName string          `json:"institution_name"`
	BranchCode      string          `json:"branch_code,omitempty"`
	IFSCCode        string          `json:"ifsc_code,omitempty"`
	AddressID       *int64          `json:"address_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type AccountType string

const (
	AccountTypeSavings          AccountType = "savings"
	AccountTypeCurrent          AccountType = "current"
	AccountTypeFixedDeposit     AccountType = "fixed_deposit"
	AccountTypeRecurringDeposit AccountType = "recurring_deposit"
	AccountTypeLoan             AccountType = "loan"
)

type Account struct {
	ID                   int64           `json:"id"`
	AccountNumber        string          `json:"account_number"`
	AccountType          AccountType     `json:"account_type"`
	AccountOwnershipType string          `json:"account_ownership_type"`
	Balance              decimal.Decimal `json:"balance"`
	InterestRate         *float64        `json:"interest_rate,omitempty"`
	MaturityDate         string          `json:"maturity_date,omitempty"`
	InstitutionID        int64           `json:"institution_id"`
	DeletionStatus       DeletionStatus  `json:"deletion_status"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`

	// Populated by joined reads.
	InstitutionName string          `json:"institution_name,omitempty"`
	InstitutionType InstitutionType `json:"institution_type,omitempty"`
	Holders         []AccountHolder `json:"holders,omitempty"`
}

type HolderType string

const (
	HolderTypePrimary   HolderType = "primary"
	HolderTypeSecondary HolderType = "secondary"
	HolderTypeNominee   HolderType = "nominee"
)

type AccountHolder struct {
	ID              int64      `json:"id"`
	AccountID       int64      `json:"account_id"`
	ClientID        int64      `json:"client_id"`
	HolderType      HolderType `json:"holder_type"`
	SharePercentage *float64   `json:"share_percentage,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`

	ClientName string `json:"client_name,omitempty"`
}

// ClientAccountDetail is the account ↔ institution ↔ holder enrichment row
// returned by FindClientAccountsWithDetails.
type ClientAccountDetail struct {
	Account
	HolderType      HolderType `json:"holder_type"`
	SharePercentage *float64   `json:"share_percentage,omitempty"`
}

type AccountFilters struct {
	AccountType     string
	InstitutionType string
	Search          string
	IncludeDeleted  bool
}

type CreateAccountRequest struct {
	AccountNumber        string   `json:"account_number" validate:"required,max=30"`
	AccountType          string   `json:"account_type" validate:"required,oneof=savings current fixed_deposit recurring_deposit loan"`
	AccountOwnershipType string   `json:"account_ownership_type" validate:"omitempty,oneof=individual joint minor"`
	Balance              string   `json:"balance" validate:"omitempty,decimalamount"`
	InterestRate         *float64 `json:"interest_rate" validate:"omitempty,gte=0,lte=100"`
	MaturityDate         string   `json:"maturity_date"`
	InstitutionID        int64    `json:"institution_id" validate:"required,gt=0"`
	Holders              []AddAccountHolderRequest `json:"holders" validate:"omitempty,dive"`
}

type UpdateAccountRequest struct {
	AccountNumber        *string  `json:"account_number" validate:"omitempty,max=30"`
	AccountType          *string  `json:"account_type" validate:"omitempty,oneof=savings current fixed_deposit recurring_deposit loan"`
	AccountOwnershipType *string  `json:"account_ownership_type" validate:"omitempty,oneof=individual joint minor"`
	Balance              *string  `json:"balance" validate:"omitempty,decimalamount"`
	InterestRate         *float64 `json:"interest_rate" validate:"omitempty,gte=0,lte=100"`
	MaturityDate         *string  `json:"maturity_date"`
	InstitutionID        *int64   `json:"institution_id" validate:"omitempty,gt=0"`
}

type AddAccountHolderRequest struct {
	ClientID        int64    `json:"client_id" validate:"required,gt=0"`
	HolderType      string   `json:"holder_type" validate:"required,oneof=primary secondary nominee"`
	SharePercentage *float64 `json:"share_percentage" validate:"omitempty,gte=0,lte=100"`
}

type CreateInstitutionRequest struct {
	InstitutionType string `json:"institution_type" validate:"required,oneof=bank post_office"`
	InstitutionName string `json:"institution_name" validate:"required,max=200"`
	BranchCode      string `json:"branch_code"`
	IFSCCode        string `json:"ifsc_code" validate:"omitempty,ifsc"`
	AddressID       *int64 `json:"address_id"`
}
