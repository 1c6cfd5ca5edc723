package handlers

import (
	"context"
	"testing"

	"github.com/hoanghai1803/readlater/internal/models"
	"github.com/hoanghai1803/readlater/internal/storage"
)

// newTestStore creates an in-memory SQLite store with migrations applied.
// It registers a cleanup function to close the database when the test
// completes.
func newTestStore(t *testing.T) *storage.Store {
	t.Helper()

	db, err := storage.OpenDatabase(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := storage.RunMigrations(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	return storage.NewStore(db)
}

// saveTestLink saves a link directly through the store.
func saveTestLink(t *testing.T, store *storage.Store, title, url string) models.Link {
	t.Helper()

	link, err := store.SaveLink(context.Background(), models.NewLink{Title: title, URL: url})
	if err != nil {
		t.Fatalf("saving test link: %v", err)
	}
	return *link
}
