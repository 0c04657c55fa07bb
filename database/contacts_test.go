package database

import (
	"testing"

	"backoffice/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactCRUD(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewContactRepository(db)
	client := createTestClient(t, db, "Contact", "Owner")

	t.Run("Create and fetch by client", func(t *testing.T) {
		created, err := repo.Create(&models.Contact{
			ClientID:        client.ID,
			Type:            models.ContactTypeEmail,
			ContactPriority: "primary",
			ContactDetails:  "owner@example.com",
		})
		require.NoError(t, err)
		require.NotNil(t, created)

		list, err := repo.GetByClientID(client.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "owner@example.com", list[0].ContactDetails)
	})

	t.Run("Update changes only provided fields", func(t *testing.T) {
		created, err := repo.Create(&models.Contact{
			ClientID:       client.ID,
			Type:           models.ContactTypePhone,
			ContactDetails: "9812345678",
		})
		require.NoError(t, err)

		details := "9898989898"
		updated, err := repo.Update(created.ID, &models.UpdateContactRequest{
			ContactDetails: &details,
		})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "9898989898", updated.ContactDetails)
		assert.Equal(t, models.ContactTypePhone, updated.Type)
	})

	t.Run("Delete removes the contact", func(t *testing.T) {
		created, err := repo.Create(&models.Contact{
			ClientID:       client.ID,
			Type:           models.ContactTypeEmail,
			ContactDetails: "delete-me@example.com",
		})
		require.NoError(t, err)

		require.NoError(t, repo.Delete(created.ID))

		missing, err := repo.GetByID(created.ID)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("CreateMultiple inserts in order", func(t *testing.T) {
		bulk := createTestClient(t, db, "Bulk", "Contacts")

		created, err := repo.CreateMultiple(bulk.ID, []models.CreateContactRequest{
			{Type: "email", ContactPriority: "primary", ContactDetails: "a@example.com"},
			{Type: "phone", ContactPriority: "secondary", ContactDetails: "9000000001"},
		})
		require.NoError(t, err)
		require.Len(t, created, 2)
		assert.Equal(t, models.ContactTypeEmail, created[0].Type)
		assert.Equal(t, models.ContactTypePhone, created[1].Type)
	})
}

func TestSetPrimaryContact(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewContactRepository(db)
	client := createTestClient(t, db, "Primary", "Swap")

	first, err := repo.Create(&models.Contact{
		ClientID:        client.ID,
		Type:            models.ContactTypeEmail,
		ContactPriority: "primary",
		ContactDetails:  "first@example.com",
	})
	require.NoError(t, err)

	second, err := repo.Create(&models.Contact{
		ClientID:        client.ID,
		Type:            models.ContactTypeEmail,
		ContactPriority: "secondary",
		ContactDetails:  "second@example.com",
	})
	require.NoError(t, err)

	phone, err := repo.Create(&models.Contact{
		ClientID:        client.ID,
		Type:            models.ContactTypePhone,
		ContactPriority: "primary",
		ContactDetails:  "9876500000",
	})
	require.NoError(t, err)

	t.Run("Promotion demotes old primary of the same type", func(t *testing.T) {
		promoted, err := repo.SetPrimary(second.ID)
		require.NoError(t, err)
		require.NotNil(t, promoted)
		assert.Equal(t, "primary", promoted.ContactPriority)

		demoted, err := repo.GetByID(first.ID)
		require.NoError(t, err)
		require.NotNil(t, demoted)
		assert.Equal(t, "secondary", demoted.ContactPriority)
	})

	t.Run("Other contact types are untouched", func(t *testing.T) {
		got, err := repo.GetByID(phone.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "primary", got.ContactPriority)
	})

	t.Run("Exactly one primary per type after swap", func(t *testing.T) {
		primary, err := repo.GetPrimaryContact(client.ID, models.ContactTypeEmail)
		require.NoError(t, err)
		require.NotNil(t, primary)
		assert.Equal(t, second.ID, primary.ID)
	})

	t.Run("Promoting a missing contact returns nil", func(t *testing.T) {
		promoted, err := repo.SetPrimary(99999)
		require.NoError(t, err)
		assert.Nil(t, promoted)
	})
}

func TestContactsCascadeWithClient(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	clients := NewClientRepository(db)
	contacts := NewContactRepository(db)

	client := createTestClient(t, db, "Cascade", "Target")
	_, err := contacts.Create(&models.Contact{
		ClientID:       client.ID,
		Type:           models.ContactTypeEmail,
		ContactDetails: "cascade@example.com",
	})
	require.NoError(t, err)

	require.NoError(t, clients.HardDelete(client.ID))

	remaining, err := contacts.GetByClientID(client.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
