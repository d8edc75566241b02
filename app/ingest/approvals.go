package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/oncofeed/oncofeed/app/classify"
	"github.com/oncofeed/oncofeed/app/database"
)

// RunApprovals ingests a pre-fetched batch of regulatory approval records
func (o *Orchestrator) RunApprovals(ctx context.Context, batch []json.RawMessage) Result {
	var result Result

	for _, raw := range batch {
		select {
		case <-ctx.Done():
			result.Errors = append(result.Errors, ctx.Err())
			return result
		default:
		}

		var record ApprovalRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			result.Errors = append(result.Errors, &ValidationError{
				RecordType: database.RecordTypeApproval,
				Reason:     fmt.Sprintf("malformed payload: %v", err),
			})
			continue
		}

		approval := o.normalizeApproval(record, raw)

		summary, err := o.maybeSummarize(ctx, approval.ApplicationNumber, record.Description)
		if err != nil {
			result.Errors = append(result.Errors, err)
		}
		if summary != "" {
			approval.Description = summary
		}

		action, err := o.upserter.UpsertApproval("openfda", approval)
		if err != nil {
			result.Errors = append(result.Errors, err)
			var storeErr *StoreError
			if errors.As(err, &storeErr) {
				return result
			}
			continue
		}
		if action != database.ActionSkipped {
			result.Ingested++
		}
	}

	slog.Info("Approval ingestion run completed",
		"total", len(batch),
		"ingested", result.Ingested,
		"errors", len(result.Errors))

	return result
}

func (o *Orchestrator) normalizeApproval(record ApprovalRecord, raw json.RawMessage) database.Approval {
	text := strings.Join([]string{record.DrugName, record.BrandName, record.Description}, " ")

	drugName := record.DrugName
	if drugName == "" {
		drugName = "Unknown Drug"
	}

	return database.Approval{
		ApplicationNumber: record.ApplicationNumber,
		DrugName:          drugName,
		BrandName:         record.BrandName,
		Description:       record.Description,
		CancerTypes:       classify.Strings(classify.Classify(text)),
		ApprovalDate:      parseDate(record.ApprovalDate),
		URL:               record.URL,
		RawData:           string(raw),
	}
}
