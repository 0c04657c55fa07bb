package database

import (
	"testing"

	"backoffice/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientLifecycle(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewClientRepository(db)

	t.Run("Create applies defaults", func(t *testing.T) {
		client, err := repo.Create(&models.Client{
			FirstName: "Asha",
			LastName:  "Rao",
		})
		require.NoError(t, err)
		require.NotNil(t, client)

		assert.Equal(t, models.ClientStatusPending, client.Status)
		assert.Equal(t, models.DeletionStatusActive, client.DeletionStatus)
	})

	t.Run("GetByID returns nil for missing client", func(t *testing.T) {
		client, err := repo.GetByID(99999, false)
		require.NoError(t, err)
		assert.Nil(t, client)
	})

	t.Run("Update mutates only provided fields", func(t *testing.T) {
		client := createTestClient(t, db, "Ravi", "Kumar")

		occupation := "farmer"
		updated, err := repo.Update(client.ID, &models.UpdateClientRequest{
			Occupation: &occupation,
		})
		require.NoError(t, err)
		require.NotNil(t, updated)

		assert.Equal(t, "farmer", updated.Occupation)
		assert.Equal(t, "Ravi", updated.FirstName)
		assert.Equal(t, "Kumar", updated.LastName)
	})

	t.Run("Soft delete hides and restore recovers", func(t *testing.T) {
		client := createTestClient(t, db, "Meena", "Iyer")

		require.NoError(t, repo.SoftDelete(client.ID))

		hidden, err := repo.GetByID(client.ID, false)
		require.NoError(t, err)
		assert.Nil(t, hidden)

		visible, err := repo.GetByID(client.ID, true)
		require.NoError(t, err)
		require.NotNil(t, visible)
		assert.Equal(t, models.DeletionStatusSoftDeleted, visible.DeletionStatus)

		require.NoError(t, repo.Restore(client.ID))

		restored, err := repo.GetByID(client.ID, false)
		require.NoError(t, err)
		require.NotNil(t, restored)
		assert.Equal(t, models.DeletionStatusActive, restored.DeletionStatus)
	})

	t.Run("Hard delete removes the row entirely", func(t *testing.T) {
		client := createTestClient(t, db, "Gone", "Forever")

		require.NoError(t, repo.HardDelete(client.ID))

		missing, err := repo.GetByID(client.ID, true)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("Soft delete is idempotent", func(t *testing.T) {
		client := createTestClient(t, db, "Twice", "Deleted")

		require.NoError(t, repo.SoftDelete(client.ID))
		require.NoError(t, repo.SoftDelete(client.ID))

		row, err := repo.GetByID(client.ID, true)
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.Equal(t, models.DeletionStatusSoftDeleted, row.DeletionStatus)
	})
}

func TestClientFilters(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewClientRepository(db)

	active := createTestClient(t, db, "Active", "Person")
	deleted := createTestClient(t, db, "Deleted", "Person")
	require.NoError(t, repo.SoftDelete(deleted.ID))

	t.Run("GetAll excludes soft deleted by default", func(t *testing.T) {
		clients, err := repo.GetAll(models.ClientFilters{})
		require.NoError(t, err)
		require.Len(t, clients, 1)
		assert.Equal(t, active.ID, clients[0].ID)
	})

	t.Run("IncludeDeleted surfaces both", func(t *testing.T) {
		clients, err := repo.GetAll(models.ClientFilters{IncludeDeleted: true})
		require.NoError(t, err)
		assert.Len(t, clients, 2)
	})

	t.Run("Search matches name fragments", func(t *testing.T) {
		clients, err := repo.Search("Acti")
		require.NoError(t, err)
		require.Len(t, clients, 1)
		assert.Equal(t, "Active", clients[0].FirstName)
	})

	t.Run("Count honours the deleted flag", func(t *testing.T) {
		activeCount, err := repo.Count(false)
		require.NoError(t, err)
		assert.Equal(t, 1, activeCount)

		total, err := repo.Count(true)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
	})
}

func TestClientDenormalizedRead(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	clients := NewClientRepository(db)
	contacts := NewContactRepository(db)
	addresses := NewAddressRepository(db)

	address, err := addresses.Create(&models.Address{
		AddressLine1: "12 Market Road",
		State:        "Karnataka",
		District:     "Mysuru",
		Pincode:      "570001",
		Country:      "India",
	})
	require.NoError(t, err)

	client, err := clients.Create(&models.Client{
		FirstName: "Lakshmi",
		LastName:  "Devi",
		AddressID: &address.ID,
	})
	require.NoError(t, err)

	_, err = contacts.Create(&models.Contact{
		ClientID:        client.ID,
		Type:            models.ContactTypeEmail,
		ContactPriority: "primary",
		ContactDetails:  "lakshmi@example.com",
	})
	require.NoError(t, err)

	_, err = contacts.Create(&models.Contact{
		ClientID:        client.ID,
		Type:            models.ContactTypePhone,
		ContactPriority: "primary",
		ContactDetails:  "9876543210",
	})
	require.NoError(t, err)

	_, err = contacts.Create(&models.Contact{
		ClientID:        client.ID,
		Type:            models.ContactTypeEmail,
		ContactPriority: "secondary",
		ContactDetails:  "backup@example.com",
	})
	require.NoError(t, err)

	t.Run("Primary contacts and address are joined in", func(t *testing.T) {
		got, err := clients.GetByID(client.ID, false)
		require.NoError(t, err)
		require.NotNil(t, got)

		assert.Equal(t, "lakshmi@example.com", got.Email)
		assert.Equal(t, "9876543210", got.Phone)
		require.NotNil(t, got.Address)
		assert.Equal(t, "Mysuru", got.Address.District)
		assert.Len(t, got.Contacts, 3)
	})

	t.Run("List read carries full contact lists", func(t *testing.T) {
		all, err := clients.GetAll(models.ClientFilters{})
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Len(t, all[0].Contacts, 3)
	})

	t.Run("District filter uses joined address", func(t *testing.T) {
		matched, err := clients.GetAll(models.ClientFilters{District: "Mysuru"})
		require.NoError(t, err)
		assert.Len(t, matched, 1)

		none, err := clients.GetAll(models.ClientFilters{District: "Kolar"})
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestLinkedClientsBidirectional(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewClientRepository(db)

	husband := createTestClient(t, db, "Suresh", "Nair")

	wife, err := repo.Create(&models.Client{
		FirstName:                "Priya",
		LastName:                 "Nair",
		LinkedClientID:           &husband.ID,
		LinkedClientRelationship: "spouse",
	})
	require.NoError(t, err)

	t.Run("Forward link resolves name and relationship", func(t *testing.T) {
		got, err := repo.GetByID(wife.ID, false)
		require.NoError(t, err)
		require.NotNil(t, got)

		assert.Equal(t, "Suresh Nair", got.LinkedClientName)
		require.Len(t, got.AllLinkedClients, 1)
		assert.Equal(t, husband.ID, got.AllLinkedClients[0].ClientID)
		assert.Equal(t, "spouse", got.AllLinkedClients[0].RelationshipType)
	})

	t.Run("Reverse link is visible from the other side", func(t *testing.T) {
		got, err := repo.GetByID(husband.ID, false)
		require.NoError(t, err)
		require.NotNil(t, got)

		require.Len(t, got.AllLinkedClients, 1)
		assert.Equal(t, wife.ID, got.AllLinkedClients[0].ClientID)
		assert.Equal(t, "Priya Nair", got.AllLinkedClients[0].Name)
		assert.Equal(t, "spouse", got.AllLinkedClients[0].RelationshipType)
	})

	t.Run("Soft deleted linked client disappears from both sides", func(t *testing.T) {
		require.NoError(t, repo.SoftDelete(wife.ID))

		got, err := repo.GetByID(husband.ID, false)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Empty(t, got.AllLinkedClients)
	})

	t.Run("GetByLinkedClientID finds referencing clients", func(t *testing.T) {
		require.NoError(t, repo.Restore(wife.ID))

		referencing, err := repo.GetByLinkedClientID(husband.ID)
		require.NoError(t, err)
		require.Len(t, referencing, 1)
		assert.Equal(t, wife.ID, referencing[0].ID)
	})
}
