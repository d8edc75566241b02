package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oncofeed/oncofeed/app/database"
	"github.com/oncofeed/oncofeed/app/feed"
	"github.com/oncofeed/oncofeed/app/summarize"
)

// Orchestrator drives source records through classification and the upsert
// engine, one source type per Run method. Items are processed sequentially;
// per-item failures are collected, never fatal.
type Orchestrator struct {
	sourceRepo   database.SourceRepository
	upserter     *Upserter
	parser       *feed.Parser
	summarizer   summarize.Summarizer
	httpClient   *http.Client
	userAgent    string
	fetchTimeout time.Duration
}

func NewOrchestrator(sourceRepo database.SourceRepository, upserter *Upserter,
	parser *feed.Parser, summarizer summarize.Summarizer, httpClient *http.Client,
	userAgent string, fetchTimeout time.Duration) *Orchestrator {
	return &Orchestrator{
		sourceRepo:   sourceRepo,
		upserter:     upserter,
		parser:       parser,
		summarizer:   summarizer,
		httpClient:   httpClient,
		userAgent:    userAgent,
		fetchTimeout: fetchTimeout,
	}
}

// maybeSummarize asks the collaborator for a plain-language summary of the
// body text. A collaborator failure degrades to an empty summary and is
// reported to the caller as a per-item error; the item is still persisted.
func (o *Orchestrator) maybeSummarize(ctx context.Context, recordID, body string) (string, error) {
	if o.summarizer == nil {
		return "", nil
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return "", nil
	}

	summary, err := o.summarizer.Summarize(ctx, body)
	if err != nil {
		return "", &UpstreamError{RecordID: recordID, Err: err}
	}

	return summary, nil
}

func (o *Orchestrator) fetch(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, o.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", o.userAgent)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

// parseDate accepts the timestamp layouts the upstream batches use. Returns
// nil for empty or malformed values instead of failing the record.
func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02 15:04:05",
		"January 2, 2006",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return &parsed
		}
	}

	return nil
}
