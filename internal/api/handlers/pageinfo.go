package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hoanghai1803/readlater/internal/pages"
)

// PageInfo handles POST /api/page-info. The save dialog calls this to
// prefill title and reading time for the page being saved.
func PageInfo(timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			URL string `json:"url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		body.URL = strings.TrimSpace(body.URL)
		if body.URL == "" {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}

		parsed, err := url.ParseRequestURI(body.URL)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			writeError(w, http.StatusBadRequest, "url must be a valid HTTP or HTTPS URL")
			return
		}

		meta, err := pages.Fetch(body.URL, timeout)
		if err != nil {
			slog.Warn("failed to fetch page metadata", "url", body.URL, "error", err)
			writeError(w, http.StatusUnprocessableEntity, "Could not fetch page from URL")
			return
		}

		writeJSON(w, http.StatusOK, meta)
	}
}
