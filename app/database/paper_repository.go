package database

import (
	"database/sql"
	"fmt"
)

// PaperRepo handles database operations for paper records
type PaperRepo struct {
	db *DB
}

var _ PaperRepository = (*PaperRepo)(nil)

func NewPaperRepository(db *DB) *PaperRepo {
	return &PaperRepo{db: db}
}

// GetByPaperID retrieves a paper by its PMID. Returns nil when no paper
// exists for the ID.
func (r *PaperRepo) GetByPaperID(paperID string) (*Paper, error) {
	var paper Paper
	var cancerTypes string
	err := r.db.QueryRow(`
		SELECT id, paper_id, title, abstract, summary, journal, authors,
		       cancer_types, url, published_at, raw_data, created_at, updated_at
		FROM papers
		WHERE paper_id = ?
	`, paperID).Scan(
		&paper.ID, &paper.PaperID, &paper.Title, &paper.Abstract, &paper.Summary,
		&paper.Journal, &paper.Authors, &cancerTypes, &paper.URL,
		&paper.PublishedAt, &paper.RawData, &paper.CreatedAt, &paper.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get paper by ID: %w", err)
	}

	paper.CancerTypes = unmarshalStrings(cancerTypes)
	return &paper, nil
}

// Insert stores a new paper record
func (r *PaperRepo) Insert(paper Paper) error {
	_, err := r.db.Exec(`
		INSERT INTO papers (
			paper_id, title, abstract, summary, journal, authors, cancer_types,
			url, published_at, raw_data
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, paper.PaperID, paper.Title, paper.Abstract, paper.Summary, paper.Journal,
		paper.Authors, marshalStrings(paper.CancerTypes), paper.URL,
		paper.PublishedAt, paper.RawData)

	if err != nil {
		return fmt.Errorf("failed to insert paper: %w", err)
	}

	return nil
}

// Update overwrites the mutable fields of an existing paper with the latest
// fetched values.
func (r *PaperRepo) Update(paper Paper) error {
	_, err := r.db.Exec(`
		UPDATE papers
		SET title = ?, abstract = ?, summary = ?, journal = ?, authors = ?,
		    cancer_types = ?, url = ?, published_at = ?, raw_data = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE paper_id = ?
	`, paper.Title, paper.Abstract, paper.Summary, paper.Journal, paper.Authors,
		marshalStrings(paper.CancerTypes), paper.URL, paper.PublishedAt,
		paper.RawData, paper.PaperID)

	if err != nil {
		return fmt.Errorf("failed to update paper: %w", err)
	}

	return nil
}

// GetPaperCount returns the total number of papers
func (r *PaperRepo) GetPaperCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM papers").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get paper count: %w", err)
	}
	return count, nil
}
