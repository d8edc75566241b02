package tasks

import (
	"context"
	"log/slog"

	"github.com/oncofeed/oncofeed/app/match"
)

// MatchTrialsTask runs one trial matching invocation for one user. It is
// submitted fire-and-forget: the triggering caller never waits on it, and a
// failure here is logged by the worker, never surfaced to that caller.
type MatchTrialsTask struct {
	Task
	engine   *match.Engine
	userID   string
	criteria match.Criteria
}

func NewMatchTrialsTask(engine *match.Engine, userID string, criteria match.Criteria) *MatchTrialsTask {
	return &MatchTrialsTask{
		Task:     NewTask(TaskTypeMatchTrials, userID),
		engine:   engine,
		userID:   userID,
		criteria: criteria,
	}
}

func (t *MatchTrialsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := t.engine.Run(ctx, t.userID, t.criteria); err != nil {
		return err
	}

	slog.Info("Task completed",
		"type", "MatchTrials",
		"user_id", t.userID,
		"duration", t.GetDuration())

	return nil
}
