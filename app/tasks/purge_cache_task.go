package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// PurgeCacheTask removes page cache entries older than the configured TTL.
type PurgeCacheTask struct {
	Task
	purger CachePurger
	maxAge time.Duration
}

func NewPurgeCacheTask(purger CachePurger, maxAge time.Duration) *PurgeCacheTask {
	return &PurgeCacheTask{
		Task:   NewTask(TaskTypePurgeCache, ""),
		purger: purger,
		maxAge: maxAge,
	}
}

func (t *PurgeCacheTask) Execute(ctx context.Context) error {
	deleted, err := t.purger.DeleteExpired(t.maxAge)
	if err != nil {
		return fmt.Errorf("failed to purge page cache: %w", err)
	}

	if deleted > 0 {
		slog.Debug("Page cache purged", "deleted", deleted, "max_age", t.maxAge.String())
	}

	return nil
}
