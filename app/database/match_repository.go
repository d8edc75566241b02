package database

import (
	"fmt"
)

// MatchRepo persists the trial match set per user
type MatchRepo struct {
	db *DB
}

var _ MatchRepository = (*MatchRepo)(nil)

func NewMatchRepository(db *DB) *MatchRepo {
	return &MatchRepo{db: db}
}

// ReplaceMatches refreshes the match set for a user in one transaction.
// Re-running a matching run replaces the previous set instead of accumulating
// duplicates.
func (r *MatchRepo) ReplaceMatches(userID string, matches []TrialMatch) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin match transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec("DELETE FROM trial_matches WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("failed to clear previous matches: %w", err)
	}

	for _, match := range matches {
		_, err = tx.Exec(`
			INSERT INTO trial_matches (user_id, nct_id, status, condition_matched)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (user_id, nct_id) DO UPDATE SET
				status = excluded.status,
				condition_matched = excluded.condition_matched,
				matched_at = CURRENT_TIMESTAMP
		`, userID, match.NCTID, match.Status, match.ConditionMatched)
		if err != nil {
			return fmt.Errorf("failed to insert trial match: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit match transaction: %w", err)
	}

	return nil
}

// GetMatches returns the current match set for a user
func (r *MatchRepo) GetMatches(userID string) ([]TrialMatch, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, nct_id, status, condition_matched, matched_at
		FROM trial_matches
		WHERE user_id = ?
		ORDER BY matched_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get trial matches: %w", err)
	}
	defer rows.Close()

	var matches []TrialMatch
	for rows.Next() {
		var match TrialMatch
		err := rows.Scan(&match.ID, &match.UserID, &match.NCTID, &match.Status,
			&match.ConditionMatched, &match.MatchedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trial match row: %w", err)
		}
		matches = append(matches, match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial match rows: %w", err)
	}

	return matches, nil
}
