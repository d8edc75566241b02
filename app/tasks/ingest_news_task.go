package tasks

import (
	"context"
	"log/slog"

	"github.com/oncofeed/oncofeed/app/ingest"
)

type IngestNewsTask struct {
	Task
	orchestrator *ingest.Orchestrator
}

func NewIngestNewsTask(orchestrator *ingest.Orchestrator) *IngestNewsTask {
	return &IngestNewsTask{
		Task:         NewTask(TaskTypeIngestNews, "news"),
		orchestrator: orchestrator,
	}
}

func (t *IngestNewsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	result := t.orchestrator.RunNews(ctx)

	for _, err := range result.Errors {
		slog.Warn("News ingestion error", "error", err)
	}

	slog.Info("Task completed",
		"type", "IngestNews",
		"duration", t.GetDuration(),
		"ingested", result.Ingested,
		"errors", len(result.Errors))

	return nil
}
