package ingest

import (
	"fmt"
)

// FetchError marks a source as unreachable or its payload as unparseable.
// Caught at feed granularity; the run continues with the remaining feeds.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ValidationError marks a record that cannot be ingested, e.g. a missing
// natural key or a malformed payload. The item is skipped.
type ValidationError struct {
	RecordType string
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s record: %s", e.RecordType, e.Reason)
}

// UpstreamError marks a summarization collaborator failure. The item is
// still persisted, just without a generated summary.
type UpstreamError struct {
	RecordID string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("summarize %s: %v", e.RecordID, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// StoreError marks a persistence failure for a single record
type StoreError struct {
	RecordID string
	Err      error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.RecordID, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
