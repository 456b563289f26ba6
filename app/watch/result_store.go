package watch

import "sync"

// ResultStore keeps the latest check result per watch in memory. Past
// results are overwritten; history is never persisted.
type ResultStore struct {
	results map[string]*Result
	mu      sync.RWMutex
}

func NewResultStore() *ResultStore {
	return &ResultStore{
		results: make(map[string]*Result),
	}
}

func (rs *ResultStore) Set(result *Result) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.results[result.Watch] = result
}

func (rs *ResultStore) Get(watchName string) (*Result, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	result, ok := rs.results[watchName]
	return result, ok
}

func (rs *ResultStore) GetAll() map[string]*Result {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	resultsCopy := make(map[string]*Result, len(rs.results))
	for k, v := range rs.results {
		resultsCopy[k] = v
	}
	return resultsCopy
}
