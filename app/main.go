package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oncofeed/oncofeed/app/api"
	"github.com/oncofeed/oncofeed/app/cfg"
	"github.com/oncofeed/oncofeed/app/database"
	"github.com/oncofeed/oncofeed/app/feed"
	"github.com/oncofeed/oncofeed/app/ingest"
	"github.com/oncofeed/oncofeed/app/match"
	"github.com/oncofeed/oncofeed/app/repair"
	"github.com/oncofeed/oncofeed/app/summarize"
	"github.com/oncofeed/oncofeed/app/tasks"
)

func main() {
	appConfig, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appConfig == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appConfig.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting OncoFeed server", "version", appConfig.Version)

	// Database connection
	db, err := database.NewConnection(appConfig.DBPath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	slog.Info("Database ready", "path", appConfig.DBPath, "migration_version", version, "dirty", dirty)

	// Load feed source definitions
	sourceCache := feed.NewSourceCache(appConfig.SourcesDir)
	if err := sourceCache.Run(); err != nil {
		log.Fatal("Failed to load source definitions:", err)
	}
	slog.Info("Loaded source definitions", "count", sourceCache.GetSourceCount())

	// Initialize repositories
	sourceRepo := database.NewSourceRepository(db)
	newsRepo := database.NewNewsRepository(db)
	trialRepo := database.NewTrialRepository(db)
	approvalRepo := database.NewApprovalRepository(db)
	paperRepo := database.NewPaperRepository(db)
	auditRepo := database.NewAuditRepository(db)
	matchRepo := database.NewMatchRepository(db)

	// Register sources in database
	registeredCount := 0
	for _, source := range sourceCache.GetSources() {
		err := sourceRepo.UpsertSource(source.Name, source.Kind, source.URL, source.Title, source.Enabled)
		if err != nil {
			slog.Warn("Failed to register source", "source", source.Name, "error", err)
			continue
		}
		registeredCount++
	}
	slog.Info("Registered sources", "registered", registeredCount, "total", sourceCache.GetSourceCount())

	// Initialize core components
	httpClient := &http.Client{Timeout: time.Duration(appConfig.FetchTimeout) * time.Second}
	parser := feed.NewParser()
	contentExtractor := feed.NewContentExtractor()

	var summarizer summarize.Summarizer
	summarizeClient := summarize.NewClient(appConfig.SummarizerEndpoint, appConfig.SummarizerModel, appConfig.SummarizerAPIKey)
	if summarizeClient.Enabled() {
		summarizer = summarizeClient
		slog.Info("Summarization collaborator enabled", "model", appConfig.SummarizerModel)
	} else {
		slog.Info("Summarization collaborator disabled")
	}

	upserter := ingest.NewUpserter(newsRepo, trialRepo, approvalRepo, paperRepo, auditRepo)
	orchestrator := ingest.NewOrchestrator(sourceRepo, upserter, parser, summarizer,
		httpClient, appConfig.UserAgent, time.Duration(appConfig.FetchTimeout)*time.Second)
	engine := match.NewEngine(trialRepo, matchRepo)
	repairer := repair.NewRepairer(approvalRepo)

	// Initialize and start background scheduler
	scheduler := tasks.NewScheduler(orchestrator, newsRepo, contentExtractor, repairer, httpClient)
	scheduler.Start()
	defer scheduler.Stop()
	slog.Info("Background scheduler started", "workers", appConfig.WorkerCount, "interval_seconds", appConfig.SchedulerInterval)

	// Initialize HTTP server
	apiHandler := api.NewHandler(orchestrator, engine, repairer, scheduler,
		sourceRepo, newsRepo, trialRepo, approvalRepo, paperRepo, auditRepo, matchRepo)
	server := api.NewServer(apiHandler, appConfig.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appConfig.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	// Graceful shutdown
	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}
