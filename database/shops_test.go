package database

import (
	"testing"

	"backoffice/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShopCRUD(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewShopRepository(db)
	owner := createTestClient(t, db, "Shop", "Owner")

	t.Run("Create resolves owner name", func(t *testing.T) {
		shop, err := repo.Create(&models.Shop{
			ShopName: "Corner Store",
			Category: "grocery",
			OwnerID:  owner.ID,
		})
		require.NoError(t, err)
		require.NotNil(t, shop)

		assert.Equal(t, "Shop Owner", shop.OwnerName)
		assert.Equal(t, models.DeletionStatusActive, shop.DeletionStatus)
	})

	t.Run("Update mutates only provided fields", func(t *testing.T) {
		shop, err := repo.Create(&models.Shop{
			ShopName: "Old Name",
			OwnerID:  owner.ID,
		})
		require.NoError(t, err)

		name := "New Name"
		updated, err := repo.Update(shop.ID, &models.UpdateShopRequest{ShopName: &name})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "New Name", updated.ShopName)
	})

	t.Run("Soft delete hides and restore recovers", func(t *testing.T) {
		shop, err := repo.Create(&models.Shop{
			ShopName: "Closing Down",
			OwnerID:  owner.ID,
		})
		require.NoError(t, err)

		require.NoError(t, repo.SoftDelete(shop.ID))

		hidden, err := repo.GetByID(shop.ID, false)
		require.NoError(t, err)
		assert.Nil(t, hidden)

		require.NoError(t, repo.Restore(shop.ID))

		restored, err := repo.GetByID(shop.ID, false)
		require.NoError(t, err)
		require.NotNil(t, restored)
	})

	t.Run("Filter by category and owner", func(t *testing.T) {
		grocers, err := repo.GetAll(models.ShopFilters{Category: "grocery"})
		require.NoError(t, err)
		require.Len(t, grocers, 1)
		assert.Equal(t, "Corner Store", grocers[0].ShopName)

		owned, err := repo.GetByOwnerID(owner.ID)
		require.NoError(t, err)
		assert.Len(t, owned, 3)
	})
}

func TestShopClientAssociations(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	shops := NewShopRepository(db)
	associations := NewShopClientRepository(db)

	owner := createTestClient(t, db, "Assoc", "Owner")
	customer := createTestClient(t, db, "Regular", "Customer")
	supplier := createTestClient(t, db, "Goods", "Supplier")

	shop, err := shops.Create(&models.Shop{
		ShopName: "Association Mart",
		OwnerID:  owner.ID,
	})
	require.NoError(t, err)

	t.Run("Associate links client and shop", func(t *testing.T) {
		assoc, err := associations.Associate(shop.ID, customer.ID, "customer")
		require.NoError(t, err)
		require.NotNil(t, assoc)

		assert.Equal(t, "Association Mart", assoc.ShopName)
		assert.Equal(t, "Regular Customer", assoc.ClientName)
		assert.Equal(t, "customer", assoc.RelationshipType)
	})

	t.Run("Duplicate association is rejected", func(t *testing.T) {
		_, err := associations.Associate(shop.ID, customer.ID, "supplier")
		assert.ErrorIs(t, err, ErrDuplicateAssociation)
	})

	t.Run("Listing from both sides", func(t *testing.T) {
		_, err := associations.Associate(shop.ID, supplier.ID, "supplier")
		require.NoError(t, err)

		clients, err := associations.GetClientsByShopID(shop.ID)
		require.NoError(t, err)
		assert.Len(t, clients, 2)

		shopsOfCustomer, err := associations.GetShopsByClientID(customer.ID)
		require.NoError(t, err)
		require.Len(t, shopsOfCustomer, 1)
		assert.Equal(t, shop.ID, shopsOfCustomer[0].ShopID)
	})

	t.Run("Soft deleted client drops out of shop listing", func(t *testing.T) {
		require.NoError(t, NewClientRepository(db).SoftDelete(supplier.ID))

		clients, err := associations.GetClientsByShopID(shop.ID)
		require.NoError(t, err)
		require.Len(t, clients, 1)
		assert.Equal(t, customer.ID, clients[0].ClientID)
	})

	t.Run("Soft deleted shop drops out of client listing", func(t *testing.T) {
		require.NoError(t, shops.SoftDelete(shop.ID))

		shopsOfCustomer, err := associations.GetShopsByClientID(customer.ID)
		require.NoError(t, err)
		assert.Empty(t, shopsOfCustomer)

		require.NoError(t, shops.Restore(shop.ID))
	})

	t.Run("Dissociate removes the pair", func(t *testing.T) {
		require.NoError(t, associations.Dissociate(shop.ID, customer.ID))

		associated, err := associations.IsClientAssociatedWithShop(shop.ID, customer.ID)
		require.NoError(t, err)
		assert.False(t, associated)
	})
}
