package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oncofeed/oncofeed/app/database"
	"github.com/oncofeed/oncofeed/app/ingest"
	"github.com/oncofeed/oncofeed/app/match"
	"github.com/oncofeed/oncofeed/app/repair"
	"github.com/oncofeed/oncofeed/app/tasks"
)

func NewHandler(orchestrator *ingest.Orchestrator, engine *match.Engine,
	repairer *repair.Repairer, scheduler tasks.TaskSchedulerInterface,
	sourceRepo database.SourceRepository, newsRepo database.NewsRepository,
	trialRepo database.TrialRepository, approvalRepo database.ApprovalRepository,
	paperRepo database.PaperRepository, auditRepo database.AuditRepository,
	matchRepo database.MatchRepository) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		engine:       engine,
		repairer:     repairer,
		scheduler:    scheduler,
		sourceRepo:   sourceRepo,
		newsRepo:     newsRepo,
		trialRepo:    trialRepo,
		approvalRepo: approvalRepo,
		paperRepo:    paperRepo,
		auditRepo:    auditRepo,
		matchRepo:    matchRepo,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if sourceCount, err := h.sourceRepo.GetSourceCount(); err == nil {
		health["sources"] = sourceCount
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{}

	if count, err := h.newsRepo.GetItemCount(); err == nil {
		stats["news_items"] = count
	}
	if count, err := h.trialRepo.GetTrialCount(); err == nil {
		stats["trials"] = count
	}
	if count, err := h.approvalRepo.GetApprovalCount(); err == nil {
		stats["approvals"] = count
	}
	if count, err := h.paperRepo.GetPaperCount(); err == nil {
		stats["papers"] = count
	}
	if count, err := h.auditRepo.GetEntryCount(); err == nil {
		stats["audit_entries"] = count
	}

	c.JSON(http.StatusOK, stats)
}

// IngestNews runs a news ingestion pass over all enabled RSS sources
func (h *Handler) IngestNews(c *gin.Context) {
	result := h.orchestrator.RunNews(c.Request.Context())
	c.JSON(http.StatusOK, toIngestResponse(result))
}

// IngestTrials ingests a pre-fetched batch of trial registry records
func (h *Handler) IngestTrials(c *gin.Context) {
	batch, ok := h.readBatch(c)
	if !ok {
		return
	}
	result := h.orchestrator.RunTrials(c.Request.Context(), batch)
	c.JSON(http.StatusOK, toIngestResponse(result))
}

// IngestApprovals ingests a pre-fetched batch of regulatory approval records
func (h *Handler) IngestApprovals(c *gin.Context) {
	batch, ok := h.readBatch(c)
	if !ok {
		return
	}
	result := h.orchestrator.RunApprovals(c.Request.Context(), batch)
	c.JSON(http.StatusOK, toIngestResponse(result))
}

// IngestPapers ingests a pre-fetched batch of paper repository records
func (h *Handler) IngestPapers(c *gin.Context) {
	batch, ok := h.readBatch(c)
	if !ok {
		return
	}
	result := h.orchestrator.RunPapers(c.Request.Context(), batch)
	c.JSON(http.StatusOK, toIngestResponse(result))
}

// TriggerTrialMatch submits a matching run for a user to the background
// queue and returns immediately. The caller observes matches by re-fetching.
func (h *Handler) TriggerTrialMatch(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	var profile match.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile payload"})
		return
	}

	criteria, ok := match.CriteriaFromProfile(profile)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": "skipped", "reason": "cancer type unknown"})
		return
	}

	task := tasks.NewMatchTrialsTask(h.engine, userID, criteria)
	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Failed to enqueue trial match task", "user_id", userID, "error", err)
		c.Status(http.StatusServiceUnavailable)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}

// GetTrialMatches returns the current match set for a user
func (h *Handler) GetTrialMatches(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	matches, err := h.matchRepo.GetMatches(userID)
	if err != nil {
		slog.Error("Database error", "operation", "get_matches", "user_id", userID, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]gin.H, 0, len(matches))
	for _, m := range matches {
		response = append(response, gin.H{
			"nct_id":     m.NCTID,
			"status":     m.Status,
			"condition":  m.ConditionMatched,
			"matched_at": m.MatchedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, gin.H{"user_id": userID, "matches": response})
}

// RepairApprovals runs the approval reconciliation job and returns its counts
func (h *Handler) RepairApprovals(c *gin.Context) {
	result, err := h.repairer.Run(c.Request.Context())
	if err != nil {
		slog.Error("Approval repair failed", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, RepairResponse{
		Fixed:     result.Fixed,
		Failed:    result.Failed,
		URLsFixed: result.URLsFixed,
	})
}

func (h *Handler) readBatch(c *gin.Context) ([]json.RawMessage, bool) {
	var batch []json.RawMessage
	if err := c.ShouldBindJSON(&batch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON array of records"})
		return nil, false
	}
	return batch, true
}
