package handlers

import (
	"backoffice/app"
	"backoffice/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

func GetTransactions(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filters := models.TransactionFilters{
			Type:   c.Query("type"),
			Status: c.Query("status"),
			From:   c.Query("from"),
			To:     c.Query("to"),
		}
		if accountID := c.QueryInt("accountId", 0); accountID > 0 {
			filters.AccountID = int64(accountID)
		}

		transactions, err := a.Transactions.GetAll(filters)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch transactions", err)
		}

		return successWithCount(c, transactions, len(transactions))
	}
}

func GetTransaction(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		transaction, err := a.Transactions.GetByID(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch transaction", err)
		}
		if transaction == nil {
			return notFound(c, "Transaction not found")
		}

		return success(c, transaction)
	}
}

// CreateTransaction appends a ledger row. When the row is completed and
// carries a balance_after snapshot, the stored account balance is updated to
// match.
func CreateTransaction(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateTransactionRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		account, err := a.Accounts.GetByID(req.AccountID, false)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch account", err)
		}
		if account == nil {
			return badRequest(c, "Account not found")
		}

		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			return badRequest(c, "Invalid amount")
		}

		transaction := &models.Transaction{
			AccountID:       req.AccountID,
			TransactionType: models.TransactionType(req.TransactionType),
			Amount:          amount,
			TransactionDate: req.TransactionDate,
			Description:     req.Description,
			ReferenceNumber: req.ReferenceNumber,
			Status:          models.TransactionStatus(req.Status),
		}
		if req.BalanceAfter != "" {
			balanceAfter, err := decimal.NewFromString(req.BalanceAfter)
			if err != nil {
				return badRequest(c, "Invalid balance_after")
			}
			transaction.BalanceAfter = &balanceAfter
		}

		createdTx, err := a.Transactions.Create(transaction)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to create transaction", err)
		}

		if createdTx.Status == models.TransactionStatusCompleted && createdTx.BalanceAfter != nil {
			if err := a.Accounts.SetBalance(createdTx.AccountID, *createdTx.BalanceAfter); err != nil {
				a.Logger.Warn("stored balance update failed",
					"account_id", createdTx.AccountID, "error", err)
			}
		}

		return created(c, createdTx, "Transaction created successfully")
	}
}

func UpdateTransaction(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		var req models.UpdateTransactionRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		existing, err := a.Transactions.GetByID(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch transaction", err)
		}
		if existing == nil {
			return notFound(c, "Transaction not found")
		}

		transaction, err := a.Transactions.Update(id, &req)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to update transaction", err)
		}

		return successWithMessage(c, transaction, "Transaction updated successfully")
	}
}

func DeleteTransaction(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		existing, err := a.Transactions.GetByID(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch transaction", err)
		}
		if existing == nil {
			return notFound(c, "Transaction not found")
		}

		if err := a.Transactions.Delete(id); err != nil {
			return serverErrorWithDetails(c, "Failed to delete transaction", err)
		}

		return successWithMessage(c, nil, "Transaction deleted successfully")
	}
}

// GetAuditLogs lists audit rows, optionally narrowed to a table or record.
func GetAuditLogs(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 50)
		if limit < 1 || limit > 500 {
			limit = 50
		}

		tableName := c.Query("table")
		recordID := c.QueryInt("recordId", 0)

		var logs []models.AuditLog
		var err error
		switch {
		case tableName != "" && recordID > 0:
			logs, err = a.AuditLogs.GetByRecord(tableName, int64(recordID))
		case tableName != "":
			logs, err = a.AuditLogs.GetByTable(tableName, limit)
		default:
			logs, err = a.AuditLogs.GetRecent(limit)
		}
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch audit logs", err)
		}

		return successWithCount(c, logs, len(logs))
	}
}
