package tasks

import (
	"context"
	"log/slog"

	"github.com/oncofeed/oncofeed/app/repair"
)

// RepairApprovalsTask runs the one-shot approval reconciliation job in the
// background.
type RepairApprovalsTask struct {
	Task
	repairer *repair.Repairer
}

func NewRepairApprovalsTask(repairer *repair.Repairer) *RepairApprovalsTask {
	return &RepairApprovalsTask{
		Task:     NewTask(TaskTypeRepairApprovals, "approvals"),
		repairer: repairer,
	}
}

func (t *RepairApprovalsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	result, err := t.repairer.Run(ctx)
	if err != nil {
		return err
	}

	slog.Info("Task completed",
		"type", "RepairApprovals",
		"duration", t.GetDuration(),
		"fixed", result.Fixed,
		"failed", result.Failed,
		"urls_fixed", result.URLsFixed)

	return nil
}
