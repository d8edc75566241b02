package ingest

// Result aggregates the outcome of one ingestion run. Errors holds one entry
// per failed feed or item; the run itself never aborts on them.
type Result struct {
	Ingested int
	Errors   []error
}

// TrialRecord is a pre-fetched clinical trial registry entry. Optional
// fields default to zero values; only the registry ID is required.
type TrialRecord struct {
	NCTID       string   `json:"nct_id"`
	Title       string   `json:"title"`
	Status      string   `json:"status"`
	Phase       string   `json:"phase"`
	Conditions  []string `json:"conditions"`
	Locations   []string `json:"locations"`
	Summary     string   `json:"brief_summary"`
	URL         string   `json:"url"`
	LastUpdated string   `json:"last_updated"`
}

// ApprovalRecord is a pre-fetched regulatory approval entry keyed by
// application number.
type ApprovalRecord struct {
	ApplicationNumber string `json:"application_number"`
	DrugName          string `json:"drug_name"`
	BrandName         string `json:"brand_name"`
	Description       string `json:"description"`
	ApprovalDate      string `json:"approval_date"`
	URL               string `json:"url"`
}

// PaperRecord is a pre-fetched paper repository entry keyed by PMID
type PaperRecord struct {
	PaperID   string `json:"paper_id"`
	Title     string `json:"title"`
	Abstract  string `json:"abstract"`
	Journal   string `json:"journal"`
	Authors   string `json:"authors"`
	URL       string `json:"url"`
	Published string `json:"published"`
}
