package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeTransfer   TransactionType = "transfer"
	TransactionTypeInterest   TransactionType = "interest"
	TransactionTypeFee        TransactionType = "fee"
	TransactionTypePenalty    TransactionType = "penalty"
	TransactionTypeMaturity   TransactionType = "maturity"
)

type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

type Transaction struct {
	ID              int64             `json:"id"`
	AccountID       int64             `json:"account_id"`
	TransactionType TransactionType   `json:"transaction_type"`
	Amount          decimal.Decimal   `json:"amount"`
	BalanceAfter    *decimal.Decimal  `json:"balance_after,omitempty"`
	TransactionDate string            `json:"transaction_date"`
	Description     string            `json:"description,omitempty"`
	ReferenceNumber string            `json:"reference_number,omitempty"`
	Status          TransactionStatus `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`

	AccountNumber string `json:"account_number,omitempty"`
}

// TransactionSummary aggregates completed transactions per type.
type TransactionSummary struct {
	AccountID    int64                      `json:"account_id"`
	TotalsByType map[string]decimal.Decimal `json:"totals_by_type"`
	CountsByType map[string]int             `json:"counts_by_type"`
	Balance      decimal.Decimal            `json:"balance"`
}

type TransactionFilters struct {
	AccountID int64
	Type      string
	Status    string
	From      string
	To        string
}

type CreateTransactionRequest struct {
	AccountID       int64  `json:"account_id" validate:"required,gt=0"`
	TransactionType string `json:"transaction_type" validate:"required,oneof=deposit withdrawal transfer interest fee penalty maturity"`
	Amount          string `json:"amount" validate:"required,decimalamount"`
	BalanceAfter    string `json:"balance_after" validate:"omitempty,decimalamount"`
	TransactionDate string `json:"transaction_date"`
	Description     string `json:"description"`
	ReferenceNumber string `json:"reference_number"`
	Status          string `json:"status" validate:"omitempty,oneof=completed pending failed cancelled"`
}

type UpdateTransactionRequest struct {
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=completed pending failed cancelled"`
}

type AuditOperation string

const (
	AuditOperationInsert  AuditOperation = "INSERT"
	AuditOperationUpdate  AuditOperation = "UPDATE"
	AuditOperationDelete  AuditOperation = "DELETE"
	AuditOperationRestore AuditOperation = "RESTORE"
)

type AuditLog struct {
	ID        int64          `json:"id"`
	TableName string         `json:"table_name"`
	RecordID  int64          `json:"record_id"`
	Operation AuditOperation `json:"operation"`
	OldValues string         `json:"old_values,omitempty"`
	NewValues string         `json:"new_values,omitempty"`
	UserID    string         `json:"user_id,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}
