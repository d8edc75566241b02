package match

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/oncofeed/oncofeed/app/database"
)

// Engine scores a user profile against trial eligibility criteria and
// persists the resulting match set. It runs best-effort in the background;
// a failure is logged at the task boundary, never surfaced to the caller
// that triggered it.
type Engine struct {
	trialRepo database.TrialRepository
	matchRepo database.MatchRepository
}

func NewEngine(trialRepo database.TrialRepository, matchRepo database.MatchRepository) *Engine {
	return &Engine{
		trialRepo: trialRepo,
		matchRepo: matchRepo,
	}
}

// Run queries trials whose condition set intersects the criteria's cancer
// type and whose status is accepted, then refreshes the user's match set.
// Re-running replaces the previous set instead of accumulating duplicates.
func (e *Engine) Run(ctx context.Context, userID string, criteria Criteria) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	trials, err := e.trialRepo.FindMatching(criteria.CancerType, criteria.Statuses, criteria.ZipCode)
	if err != nil {
		return fmt.Errorf("failed to query matching trials: %w", err)
	}

	matches := make([]database.TrialMatch, 0, len(trials))
	for _, trial := range trials {
		matches = append(matches, database.TrialMatch{
			UserID:           userID,
			NCTID:            trial.NCTID,
			Status:           trial.Status,
			ConditionMatched: matchedCondition(trial, criteria.CancerType),
		})
	}

	if err := e.matchRepo.ReplaceMatches(userID, matches); err != nil {
		return fmt.Errorf("failed to persist match set: %w", err)
	}

	slog.Info("Trial matching run completed",
		"user_id", userID,
		"cancer_type", criteria.CancerType,
		"zip_constrained", criteria.ZipCode != "",
		"matches", len(matches))

	return nil
}

// matchedCondition returns the trial condition that matched the cancer type,
// falling back to the cancer type itself.
func matchedCondition(trial database.Trial, cancerType string) string {
	for _, condition := range trial.Conditions {
		if strings.Contains(strings.ToLower(condition), cancerType) {
			return condition
		}
	}
	return cancerType
}
