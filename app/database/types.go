package database

import (
	"encoding/json"
)

// Record action constants shared by repositories and the upsert engine.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionSkipped = "skipped"
)

// Record type constants used in the audit log.
const (
	RecordTypeNews     = "news_item"
	RecordTypeTrial    = "trial"
	RecordTypeApproval = "approval"
	RecordTypePaper    = "paper"
)

// marshalStrings encodes a string slice as a JSON text column value.
func marshalStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// unmarshalStrings decodes a JSON text column value into a string slice.
func unmarshalStrings(data string) []string {
	if data == "" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return nil
	}
	return values
}
