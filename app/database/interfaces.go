package database

// SourceRepository provides access to feed source configuration records.
type SourceRepository interface {
	UpsertSource(name, kind, url, title string, enabled bool) error
	ListEnabled() ([]Source, error)
	MarkFetched(name string) error
	GetSourceCount() (int, error)
}

// NewsRepository provides access to normalized news items keyed by link.
type NewsRepository interface {
	GetByLink(link string) (*NewsItem, error)
	Insert(item NewsItem) error
	Update(item NewsItem) error
	GetItemCount() (int, error)

	GetItemsWithoutContent(limit int) ([]NewsItem, error)
	UpdateContent(id int64, content string) error
}

// TrialRepository provides access to clinical trial records keyed by registry ID.
type TrialRepository interface {
	GetByNCTID(nctID string) (*Trial, error)
	Insert(trial Trial) error
	Update(trial Trial) error
	GetTrialCount() (int, error)

	// FindMatching returns trials whose cancer types include cancerType and
	// whose status is in statuses. A non-empty zipCode additionally
	// constrains on participating site locations.
	FindMatching(cancerType string, statuses []string, zipCode string) ([]Trial, error)
}

// ApprovalRepository provides access to regulatory approval records keyed by
// application number.
type ApprovalRepository interface {
	GetByApplicationNumber(applicationNumber string) (*Approval, error)
	Insert(approval Approval) error
	Update(approval Approval) error
	GetApprovalCount() (int, error)

	ListWithDrugName(drugName string) ([]Approval, error)
	ListWithURL() ([]Approval, error)
	UpdateDrugName(id int64, drugName string) error
	UpdateURL(id int64, url string) error
}

// PaperRepository provides access to paper records keyed by PMID.
type PaperRepository interface {
	GetByPaperID(paperID string) (*Paper, error)
	Insert(paper Paper) error
	Update(paper Paper) error
	GetPaperCount() (int, error)
}

// AuditRepository appends audit log entries. Entries are immutable.
type AuditRepository interface {
	CreateEntry(source, recordID, recordType, action string, metadata map[string]interface{}) error
	GetEntryCount() (int, error)
}

// MatchRepository persists the trial match set per user.
type MatchRepository interface {
	ReplaceMatches(userID string, matches []TrialMatch) error
	GetMatches(userID string) ([]TrialMatch, error)
}
