package database

import (
	"database/sql"
	"fmt"
)

// ApprovalRepo handles database operations for regulatory approval records
type ApprovalRepo struct {
	db *DB
}

var _ ApprovalRepository = (*ApprovalRepo)(nil)

func NewApprovalRepository(db *DB) *ApprovalRepo {
	return &ApprovalRepo{db: db}
}

// GetByApplicationNumber retrieves an approval by its natural key. Returns
// nil when no approval exists for the number.
func (r *ApprovalRepo) GetByApplicationNumber(applicationNumber string) (*Approval, error) {
	row := r.db.QueryRow(`
		SELECT id, application_number, drug_name, brand_name, description,
		       cancer_types, approval_date, url, raw_data, created_at, updated_at
		FROM approvals
		WHERE application_number = ?
	`, applicationNumber)

	approval, err := scanApproval(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get approval by application number: %w", err)
	}

	return approval, nil
}

// Insert stores a new approval record
func (r *ApprovalRepo) Insert(approval Approval) error {
	_, err := r.db.Exec(`
		INSERT INTO approvals (
			application_number, drug_name, brand_name, description,
			cancer_types, approval_date, url, raw_data
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, approval.ApplicationNumber, approval.DrugName, approval.BrandName,
		approval.Description, marshalStrings(approval.CancerTypes),
		approval.ApprovalDate, approval.URL, approval.RawData)

	if err != nil {
		return fmt.Errorf("failed to insert approval: %w", err)
	}

	return nil
}

// Update overwrites the mutable fields of an existing approval with the
// latest fetched values.
func (r *ApprovalRepo) Update(approval Approval) error {
	_, err := r.db.Exec(`
		UPDATE approvals
		SET drug_name = ?, brand_name = ?, description = ?, cancer_types = ?,
		    approval_date = ?, url = ?, raw_data = ?, updated_at = CURRENT_TIMESTAMP
		WHERE application_number = ?
	`, approval.DrugName, approval.BrandName, approval.Description,
		marshalStrings(approval.CancerTypes), approval.ApprovalDate,
		approval.URL, approval.RawData, approval.ApplicationNumber)

	if err != nil {
		return fmt.Errorf("failed to update approval: %w", err)
	}

	return nil
}

// GetApprovalCount returns the total number of approvals
func (r *ApprovalRepo) GetApprovalCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM approvals").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get approval count: %w", err)
	}
	return count, nil
}

// ListWithDrugName returns approvals whose display name equals drugName
func (r *ApprovalRepo) ListWithDrugName(drugName string) ([]Approval, error) {
	rows, err := r.db.Query(`
		SELECT id, application_number, drug_name, brand_name, description,
		       cancer_types, approval_date, url, raw_data, created_at, updated_at
		FROM approvals
		WHERE drug_name = ?
	`, drugName)
	if err != nil {
		return nil, fmt.Errorf("failed to list approvals by drug name: %w", err)
	}
	defer rows.Close()

	return collectApprovals(rows)
}

// ListWithURL returns approvals that have both a stored URL and an
// application number.
func (r *ApprovalRepo) ListWithURL() ([]Approval, error) {
	rows, err := r.db.Query(`
		SELECT id, application_number, drug_name, brand_name, description,
		       cancer_types, approval_date, url, raw_data, created_at, updated_at
		FROM approvals
		WHERE url != ''
		  AND application_number != ''
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list approvals with URL: %w", err)
	}
	defer rows.Close()

	return collectApprovals(rows)
}

// UpdateDrugName corrects the display name of an approval
func (r *ApprovalRepo) UpdateDrugName(id int64, drugName string) error {
	_, err := r.db.Exec(`
		UPDATE approvals
		SET drug_name = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, drugName, id)
	if err != nil {
		return fmt.Errorf("failed to update approval drug name: %w", err)
	}
	return nil
}

// UpdateURL corrects the canonical record URL of an approval
func (r *ApprovalRepo) UpdateURL(id int64, url string) error {
	_, err := r.db.Exec(`
		UPDATE approvals
		SET url = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, url, id)
	if err != nil {
		return fmt.Errorf("failed to update approval URL: %w", err)
	}
	return nil
}

func scanApproval(row rowScanner) (*Approval, error) {
	var approval Approval
	var cancerTypes string
	err := row.Scan(
		&approval.ID, &approval.ApplicationNumber, &approval.DrugName,
		&approval.BrandName, &approval.Description, &cancerTypes,
		&approval.ApprovalDate, &approval.URL, &approval.RawData,
		&approval.CreatedAt, &approval.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	approval.CancerTypes = unmarshalStrings(cancerTypes)
	return &approval, nil
}

func collectApprovals(rows *sql.Rows) ([]Approval, error) {
	var approvals []Approval
	for rows.Next() {
		approval, err := scanApproval(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval row: %w", err)
		}
		approvals = append(approvals, *approval)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating approval rows: %w", err)
	}

	return approvals, nil
}
