package handlers

import (
	"backoffice/app"
	"backoffice/database"
	"backoffice/models"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

func GetAccounts(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filters := models.AccountFilters{
			AccountType:     c.Query("accountType"),
			InstitutionType: c.Query("institutionType"),
			Search:          c.Query("search"),
			IncludeDeleted:  c.QueryBool("includeDeleted"),
		}

		accounts, err := a.Accounts.GetAll(filters)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch accounts", err)
		}

		return successWithCount(c, accounts, len(accounts))
	}
}

func GetAccount(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		account, err := a.Accounts.GetByID(id, c.QueryBool("includeDeleted"))
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch account", err)
		}
		if account == nil {
			return notFound(c, "Account not found")
		}

		return success(c, account)
	}
}

func GetAccountByNumber(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountNumber := c.Params("accountNumber")
		if accountNumber == "" {
			return badRequest(c, "account number is required")
		}

		account, err := a.Accounts.GetByAccountNumber(accountNumber)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch account", err)
		}
		if account == nil {
			return notFound(c, "Account not found")
		}

		return success(c, account)
	}
}

// CreateAccount creates an account, rejecting duplicate account numbers with a
// 400 before any row is written. Holder rows in the request are added after
// the account exists.
func CreateAccount(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateAccountRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		balance := decimal.Zero
		if req.Balance != "" {
			var err error
			balance, err = decimal.NewFromString(req.Balance)
			if err != nil {
				return badRequest(c, "Invalid balance")
			}
		}

		institution, err := a.Institutions.GetByID(req.InstitutionID)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch institution", err)
		}
		if institution == nil {
			return badRequest(c, "Institution not found")
		}

		account, err := a.Accounts.Create(&models.Account{
			AccountNumber:        req.AccountNumber,
			AccountType:          models.AccountType(req.AccountType),
			AccountOwnershipType: req.AccountOwnershipType,
			Balance:              balance,
			InterestRate:         req.InterestRate,
			MaturityDate:         req.MaturityDate,
			InstitutionID:        req.InstitutionID,
		})
		if err != nil {
			if errors.Is(err, database.ErrDuplicateAccountNumber) {
				return badRequest(c, "Account number already exists")
			}
			return serverErrorWithDetails(c, "Failed to create account", err)
		}

		for _, holder := range req.Holders {
			if _, err := a.AccountHolders.Add(account.ID, holder.ClientID,
				models.HolderType(holder.HolderType), holder.SharePercentage); err != nil {
				a.Logger.Warn("holder creation failed after account creation",
					"account_id", account.ID, "client_id", holder.ClientID, "error", err)
			}
		}
		if len(req.Holders) > 0 {
			account, err = a.Accounts.GetByID(account.ID, false)
			if err != nil {
				return serverErrorWithDetails(c, "Failed to fetch created account", err)
			}
		}

		return created(c, account, "Account created successfully")
	}
}

func UpdateAccount(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		var req models.UpdateAccountRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		existing, err := a.Accounts.GetByID(id, false)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch account", err)
		}
		if existing == nil {
			return notFound(c, "Account not found")
		}

		account, err := a.Accounts.Update(id, &req)
		if err != nil {
			if errors.Is(err, database.ErrDuplicateAccountNumber) {
				return badRequest(c, "Account number already exists")
			}
			return serverErrorWithDetails(c, "Failed to update account", err)
		}

		return successWithMessage(c, account, "Account updated successfully")
	}
}

func DeleteAccount(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		account, err := a.Accounts.GetByID(id, false)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch account", err)
		}
		if account == nil {
			return notFound(c, "Account not found")
		}

		if err := a.Accounts.SoftDelete(id); err != nil {
			return serverErrorWithDetails(c, "Failed to delete account", err)
		}

		if err := a.AuditLogs.LogChange("accounts", id, models.AuditOperationDelete, account, nil, auditUser(c)); err != nil {
			a.Logger.Warn("audit log write failed", "table", "accounts", "record_id", id, "error", err)
		}

		return successWithMessage(c, nil, "Account deleted successfully")
	}
}

func HardDeleteAccount(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		account, err := a.Accounts.GetByID(id, true)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch account", err)
		}
		if account == nil {
			return notFound(c, "Account not found")
		}

		if err := a.Accounts.HardDelete(id); err != nil {
			return serverErrorWithDetails(c, "Failed to delete account", err)
		}

		if err := a.AuditLogs.LogChange("accounts", id, models.AuditOperationDelete, account, nil, auditUser(c)); err != nil {
			a.Logger.Warn("audit log write failed", "table", "accounts", "record_id", id, "error", err)
		}

		return successWithMessage(c, nil, "Account permanently deleted")
	}
}

func RestoreAccount(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		account, err := a.Accounts.GetByID(id, true)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch account", err)
		}
		if account == nil {
			return notFound(c, "Account not found")
		}

		if err := a.Accounts.Restore(id); err != nil {
			return serverErrorWithDetails(c, "Failed to restore account", err)
		}

		restored, err := a.Accounts.GetByID(id, false)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch restored account", err)
		}

		if err := a.AuditLogs.LogChange("accounts", id, models.AuditOperationRestore, account, restored, auditUser(c)); err != nil {
			a.Logger.Warn("audit log write failed", "table", "accounts", "record_id", id, "error", err)
		}

		return successWithMessage(c, restored, "Account restored successfully")
	}
}

func GetAccountHolders(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		holders, err := a.AccountHolders.FindAccountHoldersWithDetails(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch account holders", err)
		}

		return successWithCount(c, holders, len(holders))
	}
}

func AddAccountHolder(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		var req models.AddAccountHolderRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		account, err := a.Accounts.GetByID(id, false)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch account", err)
		}
		if account == nil {
			return notFound(c, "Account not found")
		}

		holder, err := a.AccountHolders.Add(id, req.ClientID,
			models.HolderType(req.HolderType), req.SharePercentage)
		if err != nil {
			if errors.Is(err, database.ErrDuplicateHolder) {
				return badRequest(c, "Client is already a holder on this account")
			}
			return serverErrorWithDetails(c, "Failed to add account holder", err)
		}

		return created(c, holder, "Account holder added successfully")
	}
}

func RemoveAccountHolder(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}
		clientID, err := parseID(c, "clientId")
		if err != nil {
			return badRequest(c, err.Error())
		}

		exists, err := a.AccountHolders.IsHolder(id, clientID)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to check account holder", err)
		}
		if !exists {
			return notFound(c, "Account holder not found")
		}

		if err := a.AccountHolders.Remove(id, clientID); err != nil {
			return serverErrorWithDetails(c, "Failed to remove account holder", err)
		}

		return successWithMessage(c, nil, "Account holder removed successfully")
	}
}

// GetAccountBalance returns the balance derived from completed transactions.
func GetAccountBalance(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		account, err := a.Accounts.GetByID(id, false)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch account", err)
		}
		if account == nil {
			return notFound(c, "Account not found")
		}

		balance, err := a.Transactions.GetAccountBalance(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to compute balance", err)
		}

		return success(c, fiber.Map{
			"account_id":     id,
			"account_number": account.AccountNumber,
			"balance":        balance,
		})
	}
}

func GetAccountTransactions(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		transactions, err := a.Transactions.FindByAccountID(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch transactions", err)
		}

		return successWithCount(c, transactions, len(transactions))
	}
}

func GetAccountSummary(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return badRequest(c, err.Error())
		}

		account, err := a.Accounts.GetByID(id, false)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch account", err)
		}
		if account == nil {
			return notFound(c, "Account not found")
		}

		summary, err := a.Transactions.GetTransactionSummary(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to compute summary", err)
		}

		return success(c, summary)
	}
}
