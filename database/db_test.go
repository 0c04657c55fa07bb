package database

import (
	"os"
	"path/filepath"
	"testing"

	"backoffice/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*DB, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "backoffice-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := New(dbPath)
	require.NoError(t, err)

	err = db.Migrate()
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return db, cleanup
}

func floatPtr(f float64) *float64 {
	return &f
}

func createTestClient(t *testing.T, db *DB, firstName, lastName string) *models.Client {
	t.Helper()

	client, err := NewClientRepository(db).Create(&models.Client{
		FirstName: firstName,
		LastName:  lastName,
		Status:    models.ClientStatusActive,
	})
	require.NoError(t, err)
	require.NotNil(t, client)
	return client
}

func createTestInstitution(t *testing.T, db *DB, name string) *models.Institution {
	t.Helper()

	inst, err := NewInstitutionRepository(db).Create(&models.Institution{
		InstitutionType: models.InstitutionTypeBank,
		InstitutionName: name,
		IFSCCode:        "HDFC0001234",
	})
	require.NoError(t, err)
	require.NotNil(t, inst)
	return inst
}

func createTestAccount(t *testing.T, db *DB, institutionID int64, number string) *models.Account {
	t.Helper()

	account, err := NewAccountRepository(db).Create(&models.Account{
		AccountNumber: number,
		AccountType:   models.AccountTypeSavings,
		Balance:       decimal.Zero,
		InstitutionID: institutionID,
	})
	require.NoError(t, err)
	require.NotNil(t, account)
	return account
}
