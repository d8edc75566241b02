package database

import (
	"database/sql"
	"fmt"
)

// NewsRepo handles database operations for news items
type NewsRepo struct {
	db *DB
}

var _ NewsRepository = (*NewsRepo)(nil)

func NewNewsRepository(db *DB) *NewsRepo {
	return &NewsRepo{db: db}
}

// GetByLink retrieves a news item by its natural key. Returns nil when no
// item exists for the link.
func (r *NewsRepo) GetByLink(link string) (*NewsItem, error) {
	var item NewsItem
	var cancerTypes, tags string
	err := r.db.QueryRow(`
		SELECT id, source_name, link, guid, title, description, content, summary,
		       cancer_types, tags, published_at, raw_data, created_at, updated_at
		FROM news_items
		WHERE link = ?
	`, link).Scan(
		&item.ID, &item.SourceName, &item.Link, &item.GUID, &item.Title,
		&item.Description, &item.Content, &item.Summary, &cancerTypes, &tags,
		&item.PublishedAt, &item.RawData, &item.CreatedAt, &item.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get news item by link: %w", err)
	}

	item.CancerTypes = unmarshalStrings(cancerTypes)
	item.Tags = unmarshalStrings(tags)
	return &item, nil
}

// Insert stores a new news item
func (r *NewsRepo) Insert(item NewsItem) error {
	_, err := r.db.Exec(`
		INSERT INTO news_items (
			source_name, link, guid, title, description, content, summary,
			cancer_types, tags, published_at, raw_data
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, item.SourceName, item.Link, item.GUID, item.Title, item.Description,
		item.Content, item.Summary, marshalStrings(item.CancerTypes),
		marshalStrings(item.Tags), item.PublishedAt, item.RawData)

	if err != nil {
		return fmt.Errorf("failed to insert news item: %w", err)
	}

	return nil
}

// Update overwrites the mutable fields of an existing news item with the
// latest fetched values.
func (r *NewsRepo) Update(item NewsItem) error {
	_, err := r.db.Exec(`
		UPDATE news_items
		SET source_name = ?, guid = ?, title = ?, description = ?, content = ?,
		    summary = ?, cancer_types = ?, tags = ?, published_at = ?,
		    raw_data = ?, updated_at = CURRENT_TIMESTAMP
		WHERE link = ?
	`, item.SourceName, item.GUID, item.Title, item.Description, item.Content,
		item.Summary, marshalStrings(item.CancerTypes), marshalStrings(item.Tags),
		item.PublishedAt, item.RawData, item.Link)

	if err != nil {
		return fmt.Errorf("failed to update news item: %w", err)
	}

	return nil
}

// GetItemCount returns the total number of news items
func (r *NewsRepo) GetItemCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM news_items").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get news item count: %w", err)
	}
	return count, nil
}

// GetItemsWithoutContent returns items whose article body has not been
// fetched yet, for the content extraction task.
func (r *NewsRepo) GetItemsWithoutContent(limit int) ([]NewsItem, error) {
	rows, err := r.db.Query(`
		SELECT id, source_name, link, guid, title, description, content, summary,
		       cancer_types, tags, published_at, raw_data, created_at, updated_at
		FROM news_items
		WHERE content = ''
		  AND link != ''
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get items without content: %w", err)
	}
	defer rows.Close()

	var items []NewsItem
	for rows.Next() {
		var item NewsItem
		var cancerTypes, tags string
		err := rows.Scan(
			&item.ID, &item.SourceName, &item.Link, &item.GUID, &item.Title,
			&item.Description, &item.Content, &item.Summary, &cancerTypes, &tags,
			&item.PublishedAt, &item.RawData, &item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan news item row: %w", err)
		}
		item.CancerTypes = unmarshalStrings(cancerTypes)
		item.Tags = unmarshalStrings(tags)
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating news item rows: %w", err)
	}

	return items, nil
}

// UpdateContent stores the extracted article body for an item
func (r *NewsRepo) UpdateContent(id int64, content string) error {
	_, err := r.db.Exec(`
		UPDATE news_items
		SET content = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, content, id)
	if err != nil {
		return fmt.Errorf("failed to update news item content: %w", err)
	}
	return nil
}
