package database

import (
	"time"
)

type Source struct {
	ID            int64
	Name          string // Identifier derived from the definition filename
	Kind          string // "rss" or "ncbi"
	URL           string // Feed address or NCBI query string
	Title         string // Display name
	Enabled       bool
	LastFetchedAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type NewsItem struct {
	ID          int64
	SourceName  string
	Link        string // Natural key
	GUID        string
	Title       string
	Description string
	Content     string
	Summary     string
	CancerTypes []string
	Tags        []string
	PublishedAt *time.Time
	RawData     string // Verbatim source payload, kept for later repair
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Trial struct {
	ID            int64
	NCTID         string // Natural key (registry ID)
	Title         string
	Status        string
	Phase         string
	Conditions    []string
	CancerTypes   []string
	Locations     []string // ZIP codes of participating sites
	Summary       string
	URL           string
	LastUpdatedAt *time.Time
	RawData       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Approval struct {
	ID                int64
	ApplicationNumber string // Natural key
	DrugName          string
	BrandName         string
	Description       string
	CancerTypes       []string
	ApprovalDate      *time.Time
	URL               string
	RawData           string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Paper struct {
	ID          int64
	PaperID     string // Natural key (PMID)
	Title       string
	Abstract    string
	Summary     string
	Journal     string
	Authors     string
	CancerTypes []string
	URL         string
	PublishedAt *time.Time
	RawData     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AuditEntry is append-only: rows are created once per effective write and
// never mutated or deleted.
type AuditEntry struct {
	ID         int64
	Source     string
	RecordID   string
	RecordType string
	Action     string // "created" or "updated"
	Metadata   string
	CreatedAt  time.Time
}

type TrialMatch struct {
	ID               int64
	UserID           string
	NCTID            string
	Status           string
	ConditionMatched string
	MatchedAt        time.Time
}
