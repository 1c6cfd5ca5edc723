package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hoanghai1803/readlater/internal/backup"
)

func TestExportData(t *testing.T) {
	store := newTestStore(t)
	saved := saveTestLink(t, store, "A", "http://a")

	r := httptest.NewRequest(http.MethodGet, "/api/export", nil)
	w := httptest.NewRecorder()

	ExportData(store).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}

	disposition := w.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "read-later-backup-") {
		t.Errorf("Content-Disposition = %q, want a dated backup filename", disposition)
	}

	var doc backup.Document
	if err := json.NewDecoder(w.Body).Decode(&doc); err != nil {
		t.Fatalf("decoding export: %v", err)
	}
	if doc.Version != backup.FormatVersion {
		t.Errorf("Version = %q, want %q", doc.Version, backup.FormatVersion)
	}
	if len(doc.ActiveLinks) != 1 || doc.ActiveLinks[0].ID != saved.ID {
		t.Errorf("ActiveLinks = %+v, want the saved link", doc.ActiveLinks)
	}
	if doc.CompletedLinks == nil {
		t.Error("CompletedLinks is nil, want empty slice")
	}
}

func TestImportData_AppendsToExistingLinks(t *testing.T) {
	store := newTestStore(t)
	saveTestLink(t, store, "Existing", "http://existing")

	body := `{
		"version": "2.0.0",
		"activeLinks": [
			{"title": "Imported", "url": "http://imported", "priority": "high", "timeToRead": 7}
		],
		"completedLinks": []
	}`
	r := httptest.NewRequest(http.MethodPost, "/api/import", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	ImportData(store).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var counts map[string]int
	if err := json.NewDecoder(w.Body).Decode(&counts); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if counts["importedCount"] != 1 || counts["active"] != 1 || counts["completed"] != 0 {
		t.Errorf("counts = %v, want importedCount=1 active=1 completed=0", counts)
	}

	links, err := store.GetLinks(context.Background())
	if err != nil {
		t.Fatalf("GetLinks() error: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("got %d links after import, want 2", len(links))
	}
	// Imports append after what was already there.
	if links[0].Title != "Existing" || links[1].Title != "Imported" {
		t.Errorf("link order = [%s, %s], want existing first", links[0].Title, links[1].Title)
	}
}

func TestImportData_LegacyFormat(t *testing.T) {
	store := newTestStore(t)

	body := `{"links": [{"title": "Old", "url": "http://old", "priority": "low", "timeToRead": 3}]}`
	r := httptest.NewRequest(http.MethodPost, "/api/import", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	ImportData(store).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	links, err := store.GetLinks(context.Background())
	if err != nil {
		t.Fatalf("GetLinks() error: %v", err)
	}
	if len(links) != 1 || links[0].Title != "Old" {
		t.Errorf("links = %+v, want the legacy record", links)
	}
}

func TestImportData_NoValidLinks(t *testing.T) {
	store := newTestStore(t)

	body := `{"version": "2.0.0", "activeLinks": [{"title": "", "url": ""}], "completedLinks": []}`
	r := httptest.NewRequest(http.MethodPost, "/api/import", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	ImportData(store).ServeHTTP(w, r)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusUnprocessableEntity)
	}
}

func TestImportData_MalformedBody(t *testing.T) {
	store := newTestStore(t)

	r := httptest.NewRequest(http.MethodPost, "/api/import", bytes.NewBufferString("not json"))
	w := httptest.NewRecorder()

	ImportData(store).ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	source := newTestStore(t)
	saveTestLink(t, source, "A", "http://a")
	saveTestLink(t, source, "B", "http://b")

	exportW := httptest.NewRecorder()
	ExportData(source).ServeHTTP(exportW, httptest.NewRequest(http.MethodGet, "/api/export", nil))

	target := newTestStore(t)
	importR := httptest.NewRequest(http.MethodPost, "/api/import", exportW.Body)
	importW := httptest.NewRecorder()

	ImportData(target).ServeHTTP(importW, importR)

	if importW.Code != http.StatusOK {
		t.Fatalf("import got status %d; body: %s", importW.Code, importW.Body.String())
	}

	links, err := target.GetLinks(context.Background())
	if err != nil {
		t.Fatalf("GetLinks() error: %v", err)
	}
	if len(links) != 2 {
		t.Errorf("got %d links after round trip, want 2", len(links))
	}
}
