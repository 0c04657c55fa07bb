package handlers

import (
	"testing"

	"backoffice/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountEndpoints(t *testing.T) {
	fiberApp, application, cleanup := newTestServer(t)
	defer cleanup()

	resp := doJSON(t, fiberApp, fiber.MethodPost, "/api/institutions/", map[string]interface{}{
		"institution_type": "bank",
		"institution_name": "Handler Bank",
		"ifsc_code":        "HDFC0000123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	t.Run("Create account against the institution", func(t *testing.T) {
		resp := doJSON(t, fiberApp, fiber.MethodPost, "/api/accounts/", map[string]interface{}{
			"account_number": "HB-0001",
			"account_type":   "savings",
			"balance":        "250.75",
			"institution_id": 1,
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var body struct {
			Success bool           `json:"success"`
			Data    models.Account `json:"data"`
		}
		decodeBody(t, resp, &body)

		assert.True(t, body.Success)
		assert.Equal(t, "Handler Bank", body.Data.InstitutionName)
		assert.True(t, body.Data.Balance.Equal(decimal.RequireFromString("250.75")))
	})

	t.Run("Duplicate account number maps to 400", func(t *testing.T) {
		resp := doJSON(t, fiberApp, fiber.MethodPost, "/api/accounts/", map[string]interface{}{
			"account_number": "HB-0001",
			"account_type":   "current",
			"institution_id": 1,
		})
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var body struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}
		decodeBody(t, resp, &body)
		assert.False(t, body.Success)
		assert.Equal(t, "Account number already exists", body.Error)
	})

	t.Run("Unknown institution maps to 400", func(t *testing.T) {
		resp := doJSON(t, fiberApp, fiber.MethodPost, "/api/accounts/", map[string]interface{}{
			"account_number": "HB-0002",
			"account_type":   "savings",
			"institution_id": 99,
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("Completed transaction with snapshot updates stored balance", func(t *testing.T) {
		resp := doJSON(t, fiberApp, fiber.MethodPost, "/api/transactions/", map[string]interface{}{
			"account_id":       1,
			"transaction_type": "deposit",
			"amount":           "100.25",
			"balance_after":    "351.00",
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		resp.Body.Close()

		account, err := application.Accounts.GetByID(1, false)
		require.NoError(t, err)
		require.NotNil(t, account)
		assert.True(t, account.Balance.Equal(decimal.RequireFromString("351.00")))
	})

	t.Run("Derived balance endpoint nets completed transactions", func(t *testing.T) {
		resp := doJSON(t, fiberApp, fiber.MethodPost, "/api/transactions/", map[string]interface{}{
			"account_id":       1,
			"transaction_type": "withdrawal",
			"amount":           "40.25",
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		resp.Body.Close()

		resp = doJSON(t, fiberApp, fiber.MethodGet, "/api/accounts/1/balance", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body struct {
			Success bool `json:"success"`
			Data    struct {
				AccountID     int64           `json:"account_id"`
				AccountNumber string          `json:"account_number"`
				Balance       decimal.Decimal `json:"balance"`
			} `json:"data"`
		}
		decodeBody(t, resp, &body)

		assert.True(t, body.Success)
		assert.Equal(t, "HB-0001", body.Data.AccountNumber)
		assert.True(t, body.Data.Balance.Equal(decimal.RequireFromString("60.00")),
			"got %s", body.Data.Balance.String())
	})

	t.Run("Emptying withdrawal with zero snapshot stores zero balance", func(t *testing.T) {
		resp := doJSON(t, fiberApp, fiber.MethodPost, "/api/transactions/", map[string]interface{}{
			"account_id":       1,
			"transaction_type": "withdrawal",
			"amount":           "60.00",
			"balance_after":    "0",
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var txBody struct {
			Success bool               `json:"success"`
			Data    models.Transaction `json:"data"`
		}
		decodeBody(t, resp, &txBody)
		require.NotNil(t, txBody.Data.BalanceAfter)
		assert.True(t, txBody.Data.BalanceAfter.IsZero())

		account, err := application.Accounts.GetByID(1, false)
		require.NoError(t, err)
		require.NotNil(t, account)
		assert.True(t, account.Balance.IsZero(), "got %s", account.Balance.String())
	})
}
