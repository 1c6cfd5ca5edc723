package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hoanghai1803/readlater/internal/pages"
)

func TestPageInfo_FetchesMetadata(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<!DOCTYPE html><html><head><title>Test Article</title></head><body><article><h1>Test Article</h1>`)
		for i := 0; i < 30; i++ {
			fmt.Fprint(w, `<p>Readable prose that gives the extractor a body of text to keep and score as article content.</p>`)
		}
		fmt.Fprint(w, `</article></body></html>`)
	}))
	defer page.Close()

	body := fmt.Sprintf(`{"url": %q}`, page.URL)
	r := httptest.NewRequest(http.MethodPost, "/api/page-info", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	PageInfo(5 * time.Second).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var meta pages.Metadata
	if err := json.NewDecoder(w.Body).Decode(&meta); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if meta.Title == "" {
		t.Error("Title is empty")
	}
	if meta.TimeToRead < 1 {
		t.Errorf("TimeToRead = %d, want at least 1", meta.TimeToRead)
	}
}

func TestPageInfo_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing url", `{}`},
		{"blank url", `{"url": "   "}`},
		{"relative url", `{"url": "/just/a/path"}`},
		{"wrong scheme", `{"url": "ftp://example.com/file"}`},
		{"not json", `nope`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/page-info", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			PageInfo(time.Second).ServeHTTP(w, r)

			if w.Code != http.StatusBadRequest {
				t.Errorf("got status %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestPageInfo_UnreachablePage(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	page.Close() // connection refused from here on

	body := fmt.Sprintf(`{"url": %q}`, page.URL)
	r := httptest.NewRequest(http.MethodPost, "/api/page-info", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	PageInfo(2 * time.Second).ServeHTTP(w, r)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusUnprocessableEntity)
	}
}
