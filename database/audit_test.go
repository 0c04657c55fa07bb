package database

import (
	"encoding/json"
	"testing"

	"backoffice/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLog(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewAuditLogRepository(db)
	client := createTestClient(t, db, "Audited", "Client")

	t.Run("LogChange stores JSON snapshots", func(t *testing.T) {
		err := repo.LogChange("clients", client.ID, models.AuditOperationDelete,
			client, nil, "admin-1")
		require.NoError(t, err)

		logs, err := repo.GetByRecord("clients", client.ID)
		require.NoError(t, err)
		require.Len(t, logs, 1)

		assert.Equal(t, models.AuditOperationDelete, logs[0].Operation)
		assert.Equal(t, "admin-1", logs[0].UserID)
		assert.Empty(t, logs[0].NewValues)

		var snapshot models.Client
		require.NoError(t, json.Unmarshal([]byte(logs[0].OldValues), &snapshot))
		assert.Equal(t, "Audited", snapshot.FirstName)
	})

	t.Run("Missing user is stored as null", func(t *testing.T) {
		err := repo.LogChange("clients", client.ID, models.AuditOperationRestore,
			nil, client, "")
		require.NoError(t, err)

		logs, err := repo.GetByRecord("clients", client.ID)
		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Empty(t, logs[0].UserID)
	})

	t.Run("GetByTable and GetRecent honour the limit", func(t *testing.T) {
		err := repo.LogChange("accounts", 42, models.AuditOperationDelete, nil, nil, "admin-2")
		require.NoError(t, err)

		clientLogs, err := repo.GetByTable("clients", 10)
		require.NoError(t, err)
		assert.Len(t, clientLogs, 2)

		limited, err := repo.GetRecent(1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)

		all, err := repo.GetRecent(100)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}
