package handlers

import (
	"log/slog"
	"net/http"

	"github.com/hoanghai1803/readlater/internal/storage"
)

// ClearLinks handles DELETE /api/links. It deletes both link collections
// permanently (the options page asks the user for explicit confirmation
// before calling this).
func ClearLinks(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.ClearLinks(r.Context()); err != nil {
			slog.Error("failed to clear links", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to clear links")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
	}
}
