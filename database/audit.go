package database

import (
	"backoffice/models"
	"database/sql"
	"encoding/json"
	"fmt"
)

type AuditLogRepository struct {
	db *DB
}

func NewAuditLogRepository(db *DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// LogChange appends one audit row with JSON snapshots of the record before and
// after the operation. Nothing calls this automatically; mutating handlers that
// want a trail must call it explicitly.
func (r *AuditLogRepository) LogChange(tableName string, recordID int64, operation models.AuditOperation, oldValues, newValues interface{}, userID string) error {
	oldJSON, err := marshalSnapshot(oldValues)
	if err != nil {
		return fmt.Errorf("failed to serialize old values: %w", err)
	}
	newJSON, err := marshalSnapshot(newValues)
	if err != nil {
		return fmt.Errorf("failed to serialize new values: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO audit_logs (table_name, record_id, operation, old_values, new_values, user_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`, tableName, recordID, operation, oldJSON, newJSON, nullString(userID))
	return err
}

func marshalSnapshot(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (r *AuditLogRepository) GetByRecord(tableName string, recordID int64) ([]models.AuditLog, error) {
	rows, err := r.db.Query(`
		SELECT id, table_name, record_id, operation, old_values, new_values, user_id, timestamp
		FROM audit_logs
		WHERE table_name = ? AND record_id = ?
		ORDER BY timestamp DESC, id DESC
	`, tableName, recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAuditLogs(rows)
}

func (r *AuditLogRepository) GetByTable(tableName string, limit int) ([]models.AuditLog, error) {
	rows, err := r.db.Query(`
		SELECT id, table_name, record_id, operation, old_values, new_values, user_id, timestamp
		FROM audit_logs
		WHERE table_name = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, tableName, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAuditLogs(rows)
}

func (r *AuditLogRepository) GetRecent(limit int) ([]models.AuditLog, error) {
	rows, err := r.db.Query(`
		SELECT id, table_name, record_id, operation, old_values, new_values, user_id, timestamp
		FROM audit_logs
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAuditLogs(rows)
}

func collectAuditLogs(rows *sql.Rows) ([]models.AuditLog, error) {
	logs := make([]models.AuditLog, 0)
	for rows.Next() {
		var l models.AuditLog
		var oldValues, newValues, userID sql.NullString
		if err := rows.Scan(&l.ID, &l.TableName, &l.RecordID, &l.Operation,
			&oldValues, &newValues, &userID, &l.Timestamp); err != nil {
			return nil, err
		}
		l.OldValues = oldValues.String
		l.NewValues = newValues.String
		l.UserID = userID.String
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
