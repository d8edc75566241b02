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

// RunPapers ingests a pre-fetched batch of paper repository records
func (o *Orchestrator) RunPapers(ctx context.Context, batch []json.RawMessage) Result {
	var result Result

	for _, raw := range batch {
		select {
		case <-ctx.Done():
			result.Errors = append(result.Errors, ctx.Err())
			return result
		default:
		}

		var record PaperRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			result.Errors = append(result.Errors, &ValidationError{
				RecordType: database.RecordTypePaper,
				Reason:     fmt.Sprintf("malformed payload: %v", err),
			})
			continue
		}

		paper := o.normalizePaper(record, raw)

		summary, err := o.maybeSummarize(ctx, paper.PaperID, record.Abstract)
		if err != nil {
			result.Errors = append(result.Errors, err)
		}
		if summary != "" {
			paper.Summary = summary
		}

		action, err := o.upserter.UpsertPaper("pubmed", paper)
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

	slog.Info("Paper ingestion run completed",
		"total", len(batch),
		"ingested", result.Ingested,
		"errors", len(result.Errors))

	return result
}

func (o *Orchestrator) normalizePaper(record PaperRecord, raw json.RawMessage) database.Paper {
	text := strings.Join([]string{record.Title, record.Abstract}, " ")

	url := record.URL
	if url == "" && record.PaperID != "" {
		url = "https://pubmed.ncbi.nlm.nih.gov/" + record.PaperID + "/"
	}

	return database.Paper{
		PaperID:     record.PaperID,
		Title:       record.Title,
		Abstract:    record.Abstract,
		Journal:     record.Journal,
		Authors:     record.Authors,
		CancerTypes: classify.Strings(classify.Classify(text)),
		URL:         url,
		PublishedAt: parseDate(record.Published),
		RawData:     string(raw),
	}
}
