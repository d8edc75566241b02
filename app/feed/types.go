package feed

import (
	"time"
)

type Metadata struct {
	Title       string
	Link        string
	Description string
	Language    string
	PublishedAt *time.Time
}

// Item is a normalized RSS/Atom entry. Link is the natural key; when a
// source item carries no link, ContentHash stands in so repeated runs do not
// create unbounded duplicates.
type Item struct {
	GUID        string
	Title       string
	Link        string
	Description string
	Snippet     string // Description with markup stripped, used for classification
	Content     string
	PublishedAt *time.Time
	Categories  []string

	ContentHash string
	RawData     string // Verbatim source entry as JSON
}

// NaturalKey returns the deduplication key for the item: the link when
// present, otherwise the content hash fallback.
func (i Item) NaturalKey() string {
	if i.Link != "" {
		return i.Link
	}
	return i.ContentHash
}

// Source is a feed source definition loaded from a YAML file
type Source struct {
	Name    string // Derived from the definition filename
	Kind    string `yaml:"kind"` // "rss" or "ncbi"
	URL     string `yaml:"url"`
	Title   string `yaml:"title"`
	Enabled bool   `yaml:"enabled"`
}
