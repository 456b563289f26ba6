package database

import (
	"path/filepath"
	"testing"
	"time"
)

func testRepository(t *testing.T) *PageRepository {
	t.Helper()

	db, err := NewConnection(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return NewPageRepository(db)
}

func TestPageRepository_SaveAndGet(t *testing.T) {
	repo := testRepository(t)

	url := "https://publisher.example/story"
	body := []byte("<html><body>cached</body></html>")

	if err := repo.SavePage(url, body, time.Now()); err != nil {
		t.Fatalf("Failed to save page: %v", err)
	}

	got, ok, err := repo.GetPage(url, time.Hour)
	if err != nil {
		t.Fatalf("Failed to get page: %v", err)
	}
	if !ok {
		t.Fatalf("Expected a cache hit")
	}
	if string(got) != string(body) {
		t.Errorf("Unexpected cached body: %q", got)
	}
}

func TestPageRepository_GetMissing(t *testing.T) {
	repo := testRepository(t)

	_, ok, err := repo.GetPage("https://publisher.example/absent", time.Hour)
	if err != nil {
		t.Fatalf("Expected no error for a miss, got %v", err)
	}
	if ok {
		t.Errorf("Expected a cache miss")
	}
}

func TestPageRepository_StaleEntryIsMiss(t *testing.T) {
	repo := testRepository(t)

	url := "https://publisher.example/story"
	if err := repo.SavePage(url, []byte("old"), time.Now().Add(-2*time.Hour)); err != nil {
		t.Fatalf("Failed to save page: %v", err)
	}

	_, ok, err := repo.GetPage(url, time.Hour)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if ok {
		t.Errorf("Expected a stale entry to be a miss")
	}
}

func TestPageRepository_SaveOverwrites(t *testing.T) {
	repo := testRepository(t)

	url := "https://publisher.example/story"
	if err := repo.SavePage(url, []byte("first"), time.Now()); err != nil {
		t.Fatalf("Failed to save page: %v", err)
	}
	if err := repo.SavePage(url, []byte("second"), time.Now()); err != nil {
		t.Fatalf("Failed to overwrite page: %v", err)
	}

	body, ok, err := repo.GetPage(url, time.Hour)
	if err != nil || !ok {
		t.Fatalf("Expected a cache hit, got ok=%v err=%v", ok, err)
	}
	if string(body) != "second" {
		t.Errorf("Expected the refreshed body, got %q", body)
	}

	count, err := repo.GetPageCount()
	if err != nil {
		t.Fatalf("Failed to count pages: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected a single row after overwrite, got %d", count)
	}
}

func TestPageRepository_DeleteExpired(t *testing.T) {
	repo := testRepository(t)

	if err := repo.SavePage("https://a.example/1", []byte("old"), time.Now().Add(-48*time.Hour)); err != nil {
		t.Fatalf("Failed to save page: %v", err)
	}
	if err := repo.SavePage("https://a.example/2", []byte("fresh"), time.Now()); err != nil {
		t.Fatalf("Failed to save page: %v", err)
	}

	deleted, err := repo.DeleteExpired(24 * time.Hour)
	if err != nil {
		t.Fatalf("Failed to delete expired pages: %v", err)
	}
	if deleted != 1 {
		t.Errorf("Expected 1 deleted page, got %d", deleted)
	}

	count, err := repo.GetPageCount()
	if err != nil {
		t.Fatalf("Failed to count pages: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 remaining page, got %d", count)
	}
}
