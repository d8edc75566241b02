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

// RunTrials ingests a pre-fetched batch of trial registry records. Records
// arrive as raw JSON so the original payload can be preserved verbatim;
// malformed or keyless records are skipped and recorded, never fatal.
func (o *Orchestrator) RunTrials(ctx context.Context, batch []json.RawMessage) Result {
	var result Result

	for _, raw := range batch {
		select {
		case <-ctx.Done():
			result.Errors = append(result.Errors, ctx.Err())
			return result
		default:
		}

		var record TrialRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			result.Errors = append(result.Errors, &ValidationError{
				RecordType: database.RecordTypeTrial,
				Reason:     fmt.Sprintf("malformed payload: %v", err),
			})
			continue
		}

		trial := o.normalizeTrial(record, raw)

		summary, err := o.maybeSummarize(ctx, trial.NCTID, record.Summary)
		if err != nil {
			result.Errors = append(result.Errors, err)
		}
		if summary != "" {
			trial.Summary = summary
		}

		action, err := o.upserter.UpsertTrial("registry", trial)
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

	slog.Info("Trial ingestion run completed",
		"total", len(batch),
		"ingested", result.Ingested,
		"errors", len(result.Errors))

	return result
}

func (o *Orchestrator) normalizeTrial(record TrialRecord, raw json.RawMessage) database.Trial {
	text := strings.Join(append([]string{record.Title, record.Summary}, record.Conditions...), " ")

	url := record.URL
	if url == "" && record.NCTID != "" {
		url = "https://clinicaltrials.gov/study/" + record.NCTID
	}

	return database.Trial{
		NCTID:         record.NCTID,
		Title:         record.Title,
		Status:        strings.ToUpper(record.Status),
		Phase:         record.Phase,
		Conditions:    record.Conditions,
		CancerTypes:   classify.Strings(classify.Classify(text)),
		Locations:     record.Locations,
		Summary:       record.Summary,
		URL:           url,
		LastUpdatedAt: parseDate(record.LastUpdated),
		RawData:       string(raw),
	}
}
