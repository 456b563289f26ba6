package database

import (
	"database/sql"
	"fmt"
	"time"
)

// PageRepository stores fetched page bodies so repeated checks of the same
// article do not refetch it. Scores are never persisted; only raw HTML is.
// Timestamps are stored as unix seconds.
type PageRepository struct {
	db *DB
}

func NewPageRepository(db *DB) *PageRepository {
	return &PageRepository{db: db}
}

// GetPage returns the cached body for url if it was fetched within maxAge.
// The second return value reports whether a fresh entry was found.
func (r *PageRepository) GetPage(url string, maxAge time.Duration) ([]byte, bool, error) {
	var body []byte
	var fetchedAt int64

	err := r.db.QueryRow(`
		SELECT body, fetched_at FROM pages WHERE url = ?
	`, url).Scan(&body, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cached page: %w", err)
	}

	if maxAge > 0 && time.Since(time.Unix(fetchedAt, 0)) > maxAge {
		return nil, false, nil
	}

	return body, true, nil
}

// SavePage inserts or refreshes the cached body for url.
func (r *PageRepository) SavePage(url string, body []byte, fetchedAt time.Time) error {
	_, err := r.db.Exec(`
		INSERT INTO pages (url, body, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT (url) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at
	`, url, body, fetchedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to save page: %w", err)
	}

	return nil
}

// DeleteExpired removes cache entries older than maxAge and returns how many
// were deleted.
func (r *PageRepository) DeleteExpired(maxAge time.Duration) (int64, error) {
	result, err := r.db.Exec(`
		DELETE FROM pages WHERE fetched_at < ?
	`, time.Now().Add(-maxAge).Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired pages: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted pages: %w", err)
	}

	return deleted, nil
}

// GetPageCount returns the number of cached pages.
func (r *PageRepository) GetPageCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM pages`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return count, nil
}
