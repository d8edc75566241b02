package ingest

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/oncofeed/oncofeed/app/classify"
	"github.com/oncofeed/oncofeed/app/database"
)

// RunNews ingests every enabled RSS source. A feed fetch failure is recorded
// for that feed and does not abort the remaining feeds; a store outage on the
// source listing aborts the run with a single top-level error.
func (o *Orchestrator) RunNews(ctx context.Context) Result {
	var result Result

	sources, err := o.sourceRepo.ListEnabled()
	if err != nil {
		result.Errors = append(result.Errors, &StoreError{RecordID: "sources", Err: err})
		return result
	}

	for _, source := range sources {
		if source.Kind != "rss" {
			continue
		}

		select {
		case <-ctx.Done():
			result.Errors = append(result.Errors, ctx.Err())
			return result
		default:
		}

		ingested, errs := o.ingestFeed(ctx, source)
		result.Ingested += ingested
		result.Errors = append(result.Errors, errs...)

		// A store outage ends the run; everything else is per-feed
		for _, err := range errs {
			var storeErr *StoreError
			if errors.As(err, &storeErr) {
				slog.Error("Store error, aborting news ingestion run", "source", source.Name, "error", err)
				return result
			}
		}
	}

	slog.Info("News ingestion run completed",
		"ingested", result.Ingested,
		"errors", len(result.Errors))

	return result
}

func (o *Orchestrator) ingestFeed(ctx context.Context, source database.Source) (int, []error) {
	data, err := o.fetch(ctx, source.URL)
	if err != nil {
		return 0, []error{&FetchError{Source: source.Name, Err: err}}
	}

	_, items, err := o.parser.Run(data)
	if err != nil {
		return 0, []error{&FetchError{Source: source.Name, Err: err}}
	}

	if err := o.sourceRepo.MarkFetched(source.Name); err != nil {
		slog.Warn("Failed to mark source fetched", "source", source.Name, "error", err)
	}

	ingested := 0
	discarded := 0
	var errs []error

	for _, item := range items {
		text := strings.Join([]string{item.Title, item.Snippet, item.Content}, " ")

		tags := classify.Classify(text)
		if len(tags) == 0 && !classify.IsRelevant(text) {
			discarded++
			continue
		}

		if item.Link == "" {
			// No natural key on the source item; the content hash stands in
			// so repeated runs do not pile up duplicates
			slog.Warn("RSS item has no link, using content hash as natural key",
				"source", source.Name, "title", item.Title)
		}

		dbItem := database.NewsItem{
			SourceName:  source.Name,
			Link:        item.NaturalKey(),
			GUID:        item.GUID,
			Title:       item.Title,
			Description: item.Snippet,
			Content:     item.Content,
			CancerTypes: classify.Strings(tags),
			Tags:        classify.ExtractTags(text),
			PublishedAt: item.PublishedAt,
			RawData:     item.RawData,
		}

		summary, err := o.maybeSummarize(ctx, dbItem.Link, strings.TrimSpace(item.Content+" "+item.Snippet))
		if err != nil {
			errs = append(errs, err)
		}
		dbItem.Summary = summary

		action, err := o.upserter.UpsertNewsItem(source.Name, dbItem)
		if err != nil {
			errs = append(errs, err)
			var storeErr *StoreError
			if errors.As(err, &storeErr) {
				// Connection-level trouble; stop hammering the store
				break
			}
			continue
		}
		if action != database.ActionSkipped {
			ingested++
		}
	}

	slog.Info("Feed ingested",
		"source", source.Name,
		"total", len(items),
		"ingested", ingested,
		"discarded", discarded,
		"errors", len(errs))

	return ingested, errs
}
