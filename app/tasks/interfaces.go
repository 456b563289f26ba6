package tasks

import "time"

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to manage background task processing.
// Example usage:
//
//	scheduler := NewScheduler(configCache, resultStore, client, extractor, scorer, purger)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewCheckWatchTask(...))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// CachePurger removes expired entries from the page cache.
type CachePurger interface {
	DeleteExpired(maxAge time.Duration) (int64, error)
}
