package watch

import (
	"testing"
	"time"
)

func TestResultStoreSetAndGet(t *testing.T) {
	store := NewResultStore()

	if _, ok := store.Get("news"); ok {
		t.Errorf("Expected no result before the first check")
	}

	store.Set(&Result{Watch: "news", CheckedAt: time.Now(), Items: []ItemResult{{Title: "A"}}})

	result, ok := store.Get("news")
	if !ok {
		t.Fatalf("Expected a stored result")
	}
	if len(result.Items) != 1 || result.Items[0].Title != "A" {
		t.Errorf("Unexpected stored items: %+v", result.Items)
	}
}

func TestResultStoreOverwritesPreviousRun(t *testing.T) {
	store := NewResultStore()

	store.Set(&Result{Watch: "news", Items: []ItemResult{{Title: "old"}}})
	store.Set(&Result{Watch: "news", Items: []ItemResult{{Title: "new"}}})

	result, ok := store.Get("news")
	if !ok {
		t.Fatalf("Expected a stored result")
	}
	if len(result.Items) != 1 || result.Items[0].Title != "new" {
		t.Errorf("Expected only the latest run to be kept, got %+v", result.Items)
	}

	all := store.GetAll()
	if len(all) != 1 {
		t.Errorf("Expected a single watch in the store, got %d", len(all))
	}
}
