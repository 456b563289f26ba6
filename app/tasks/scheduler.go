package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/syndcheck/syndcheck/app/cfg"
	"github.com/syndcheck/syndcheck/app/fetch"
	"github.com/syndcheck/syndcheck/app/fidelity"
	"github.com/syndcheck/syndcheck/app/schema"
	"github.com/syndcheck/syndcheck/app/watch"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	configCache *watch.ConfigCache
	resultStore *watch.ResultStore
	httpClient  *http.Client
	client      *fetch.Client
	extractor   *schema.Extractor
	scorer      *fidelity.Scorer
	purger      CachePurger
	userAgent   string
	cacheTTL    time.Duration
	interval    time.Duration
	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface

	mu      sync.Mutex
	lastRun map[string]time.Time
}

func NewScheduler(configCache *watch.ConfigCache, resultStore *watch.ResultStore,
	client *fetch.Client, extractor *schema.Extractor, scorer *fidelity.Scorer,
	purger CachePurger) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		configCache: configCache,
		resultStore: resultStore,
		httpClient:  &http.Client{},
		client:      client,
		extractor:   extractor,
		scorer:      scorer,
		purger:      purger,
		userAgent:   cfg.UserAgent,
		cacheTTL:    time.Duration(cfg.CacheTTL) * time.Second,
		interval:    time.Duration(cfg.SchedulerInterval) * time.Second,
		workerCount: cfg.WorkerCount,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 300),
		lastRun:     make(map[string]time.Time),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueStartupTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueTasks()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) enqueueStartupTasks() {
	watchConfigs := s.configCache.GetEnabledConfigs()
	if len(watchConfigs) == 0 {
		slog.Debug("No enabled watch configurations found")
		return
	}

	slog.Debug("Checking watch configurations", "count", len(watchConfigs))

	for _, watchConfig := range watchConfigs {
		s.enqueueCheckWatch(watchConfig)
	}
}

func (s *Scheduler) enqueueTasks() {
	watchConfigs := s.configCache.GetEnabledConfigs()

	now := time.Now().UTC()
	for _, watchConfig := range watchConfigs {
		s.mu.Lock()
		last, ok := s.lastRun[watchConfig.Name]
		s.mu.Unlock()

		refreshInterval := time.Duration(watchConfig.Settings.RefreshInterval) * time.Second
		if ok && now.Sub(last) < refreshInterval {
			slog.Debug("Watch not due for refresh yet", "watch", watchConfig.Name, "last_run", last)
			continue
		}

		s.enqueueCheckWatch(watchConfig)
	}

	if s.purger != nil {
		purgeTask := NewPurgeCacheTask(s.purger, s.cacheTTL)
		if err := s.EnqueueTask(purgeTask); err != nil {
			slog.Warn("Failed to enqueue PurgeCacheTask", "error", err)
		}
	}
}

func (s *Scheduler) enqueueCheckWatch(watchConfig *watch.Config) {
	checkTask := NewCheckWatchTask(watchConfig.Name, watchConfig, s.httpClient,
		s.client, s.extractor, s.scorer, s.resultStore, s.userAgent)
	if err := s.EnqueueTask(checkTask); err != nil {
		slog.Warn("Failed to enqueue CheckWatchTask", "watch", watchConfig.Name, "error", err)
		return
	}

	s.mu.Lock()
	s.lastRun[watchConfig.Name] = time.Now().UTC()
	s.mu.Unlock()
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "watch", task.GetWatchName(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			go func() {
				time.Sleep(retryDelay)
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				default:
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
