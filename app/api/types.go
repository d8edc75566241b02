package api

import (
	"github.com/oncofeed/oncofeed/app/database"
	"github.com/oncofeed/oncofeed/app/ingest"
	"github.com/oncofeed/oncofeed/app/match"
	"github.com/oncofeed/oncofeed/app/repair"
	"github.com/oncofeed/oncofeed/app/tasks"
)

type Handler struct {
	orchestrator *ingest.Orchestrator
	engine       *match.Engine
	repairer     *repair.Repairer
	scheduler    tasks.TaskSchedulerInterface
	sourceRepo   database.SourceRepository
	newsRepo     database.NewsRepository
	trialRepo    database.TrialRepository
	approvalRepo database.ApprovalRepository
	paperRepo    database.PaperRepository
	auditRepo    database.AuditRepository
	matchRepo    database.MatchRepository
}

// IngestResponse is the JSON shape of an ingestion run result
type IngestResponse struct {
	Ingested int      `json:"ingested"`
	Errors   []string `json:"errors"`
}

// RepairResponse is the JSON shape of a repair run result
type RepairResponse struct {
	Fixed     int `json:"fixed"`
	Failed    int `json:"failed"`
	URLsFixed int `json:"urls_fixed"`
}

func toIngestResponse(result ingest.Result) IngestResponse {
	errs := make([]string, 0, len(result.Errors))
	for _, err := range result.Errors {
		errs = append(errs, err.Error())
	}
	return IngestResponse{
		Ingested: result.Ingested,
		Errors:   errs,
	}
}
