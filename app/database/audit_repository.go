package database

import (
	"encoding/json"
	"fmt"
)

// AuditRepo appends entries to the audit log. The log is append-only: no
// update or delete operations exist on purpose.
type AuditRepo struct {
	db *DB
}

var _ AuditRepository = (*AuditRepo)(nil)

func NewAuditRepository(db *DB) *AuditRepo {
	return &AuditRepo{db: db}
}

// CreateEntry writes a single audit log entry
func (r *AuditRepo) CreateEntry(source, recordID, recordType, action string, metadata map[string]interface{}) error {
	metadataJSON := "{}"
	if len(metadata) > 0 {
		data, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal audit metadata: %w", err)
		}
		metadataJSON = string(data)
	}

	_, err := r.db.Exec(`
		INSERT INTO audit_log (source, record_id, record_type, action, metadata)
		VALUES (?, ?, ?, ?, ?)
	`, source, recordID, recordType, action, metadataJSON)

	if err != nil {
		return fmt.Errorf("failed to create audit log entry: %w", err)
	}

	return nil
}

// GetEntryCount returns the total number of audit log entries
func (r *AuditRepo) GetEntryCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM audit_log").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get audit log entry count: %w", err)
	}
	return count, nil
}
