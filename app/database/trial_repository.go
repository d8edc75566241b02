package database

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// TrialRepo handles database operations for clinical trial records
type TrialRepo struct {
	db *DB
}

var _ TrialRepository = (*TrialRepo)(nil)

func NewTrialRepository(db *DB) *TrialRepo {
	return &TrialRepo{db: db}
}

// GetByNCTID retrieves a trial by its registry ID. Returns nil when no trial
// exists for the ID.
func (r *TrialRepo) GetByNCTID(nctID string) (*Trial, error) {
	row := r.db.QueryRow(`
		SELECT id, nct_id, title, status, phase, conditions, cancer_types,
		       locations, summary, url, last_updated_at, raw_data, created_at, updated_at
		FROM trials
		WHERE nct_id = ?
	`, nctID)

	trial, err := scanTrial(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trial by NCT ID: %w", err)
	}

	return trial, nil
}

// Insert stores a new trial record
func (r *TrialRepo) Insert(trial Trial) error {
	_, err := r.db.Exec(`
		INSERT INTO trials (
			nct_id, title, status, phase, conditions, cancer_types,
			locations, summary, url, last_updated_at, raw_data
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, trial.NCTID, trial.Title, trial.Status, trial.Phase,
		marshalStrings(trial.Conditions), marshalStrings(trial.CancerTypes),
		marshalStrings(trial.Locations), trial.Summary, trial.URL,
		trial.LastUpdatedAt, trial.RawData)

	if err != nil {
		return fmt.Errorf("failed to insert trial: %w", err)
	}

	return nil
}

// Update overwrites the mutable fields of an existing trial with the latest
// fetched values.
func (r *TrialRepo) Update(trial Trial) error {
	_, err := r.db.Exec(`
		UPDATE trials
		SET title = ?, status = ?, phase = ?, conditions = ?, cancer_types = ?,
		    locations = ?, summary = ?, url = ?, last_updated_at = ?,
		    raw_data = ?, updated_at = CURRENT_TIMESTAMP
		WHERE nct_id = ?
	`, trial.Title, trial.Status, trial.Phase,
		marshalStrings(trial.Conditions), marshalStrings(trial.CancerTypes),
		marshalStrings(trial.Locations), trial.Summary, trial.URL,
		trial.LastUpdatedAt, trial.RawData, trial.NCTID)

	if err != nil {
		return fmt.Errorf("failed to update trial: %w", err)
	}

	return nil
}

// GetTrialCount returns the total number of trials
func (r *TrialRepo) GetTrialCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM trials").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get trial count: %w", err)
	}
	return count, nil
}

// FindMatching returns trials whose cancer types include cancerType and whose
// status is in statuses. When zipCode is non-empty the query additionally
// constrains on participating site locations. Cancer types and locations are
// stored as JSON arrays, so containment is tested with a quoted LIKE pattern.
func (r *TrialRepo) FindMatching(cancerType string, statuses []string, zipCode string) ([]Trial, error) {
	builder := sq.Select(
		"id", "nct_id", "title", "status", "phase", "conditions", "cancer_types",
		"locations", "summary", "url", "last_updated_at", "raw_data",
		"created_at", "updated_at").
		From("trials").
		Where(sq.Like{"cancer_types": "%" + quoted(cancerType) + "%"}).
		Where(sq.Eq{"status": statuses}).
		OrderBy("last_updated_at DESC")

	if zipCode != "" {
		builder = builder.Where(sq.Like{"locations": "%" + quoted(zipCode) + "%"})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build trial match query: %w", err)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find matching trials: %w", err)
	}
	defer rows.Close()

	var trials []Trial
	for rows.Next() {
		trial, err := scanTrial(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trial row: %w", err)
		}
		trials = append(trials, *trial)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial rows: %w", err)
	}

	return trials, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrial(row rowScanner) (*Trial, error) {
	var trial Trial
	var conditions, cancerTypes, locations string
	err := row.Scan(
		&trial.ID, &trial.NCTID, &trial.Title, &trial.Status, &trial.Phase,
		&conditions, &cancerTypes, &locations, &trial.Summary, &trial.URL,
		&trial.LastUpdatedAt, &trial.RawData, &trial.CreatedAt, &trial.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	trial.Conditions = unmarshalStrings(conditions)
	trial.CancerTypes = unmarshalStrings(cancerTypes)
	trial.Locations = unmarshalStrings(locations)
	return &trial, nil
}

// quoted wraps a value in JSON string quotes so a LIKE pattern matches whole
// array elements rather than substrings of longer values.
func quoted(value string) string {
	return `"` + value + `"`
}
