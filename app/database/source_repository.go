package database

import (
	"database/sql"
	"fmt"
)

// SourceRepo handles database operations for feed sources
type SourceRepo struct {
	db *DB
}

var _ SourceRepository = (*SourceRepo)(nil)

func NewSourceRepository(db *DB) *SourceRepo {
	return &SourceRepo{db: db}
}

// UpsertSource registers a source definition, updating the stored address and
// display title when the definition changed.
func (r *SourceRepo) UpsertSource(name, kind, url, title string, enabled bool) error {
	var id int64
	err := r.db.QueryRow("SELECT id FROM sources WHERE name = ?", name).Scan(&id)
	if err == sql.ErrNoRows {
		_, err = r.db.Exec(`
			INSERT INTO sources (name, kind, url, title, enabled)
			VALUES (?, ?, ?, ?, ?)
		`, name, kind, url, title, enabled)
		if err != nil {
			return fmt.Errorf("failed to insert source: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check existing source: %w", err)
	}

	_, err = r.db.Exec(`
		UPDATE sources
		SET kind = ?, url = ?, title = ?, enabled = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, kind, url, title, enabled, id)
	if err != nil {
		return fmt.Errorf("failed to update source: %w", err)
	}

	return nil
}

// ListEnabled returns all enabled sources
func (r *SourceRepo) ListEnabled() ([]Source, error) {
	rows, err := r.db.Query(`
		SELECT id, name, kind, url, title, enabled, last_fetched_at, created_at, updated_at
		FROM sources
		WHERE enabled = 1
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list enabled sources: %w", err)
	}
	defer rows.Close()

	var sources []Source
	for rows.Next() {
		var s Source
		err := rows.Scan(&s.ID, &s.Name, &s.Kind, &s.URL, &s.Title, &s.Enabled,
			&s.LastFetchedAt, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan source row: %w", err)
		}
		sources = append(sources, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating source rows: %w", err)
	}

	return sources, nil
}

// MarkFetched records the time of the last fetch attempt for a source
func (r *SourceRepo) MarkFetched(name string) error {
	_, err := r.db.Exec(`
		UPDATE sources
		SET last_fetched_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE name = ?
	`, name)
	if err != nil {
		return fmt.Errorf("failed to mark source fetched: %w", err)
	}
	return nil
}

// GetSourceCount returns the total number of registered sources
func (r *SourceRepo) GetSourceCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM sources").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get source count: %w", err)
	}
	return count, nil
}
