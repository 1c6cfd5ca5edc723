package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hoanghai1803/readlater/internal/backup"
	"github.com/hoanghai1803/readlater/internal/storage"
)

// maxImportSize caps the import body at 16 MiB; a backup of honest size
// is a few hundred kilobytes at most.
const maxImportSize = 16 << 20

// ExportData handles GET /api/export. It wraps both collections into a
// versioned backup document and offers it as a dated file download.
func ExportData(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		active, err := store.GetLinks(ctx)
		if err != nil {
			slog.Error("failed to read active links for export", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to export data")
			return
		}
		completed, err := store.GetCompletedLinks(ctx)
		if err != nil {
			slog.Error("failed to read completed links for export", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to export data")
			return
		}

		now := time.Now().UTC()
		doc := backup.Export(active, completed, now)

		filename := fmt.Sprintf("read-later-backup-%s.json", now.Format("2006-01-02"))
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		writeJSON(w, http.StatusOK, doc)
	}
}

// ImportData handles POST /api/import. The body is an export document of
// either the current or the legacy format; valid records are appended to
// the existing collections and the counts are reported back.
func ImportData(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportSize))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Failed to read import body")
			return
		}

		newActive, newCompleted, err := backup.Parse(data, time.Now().UTC())
		if err != nil {
			if errors.Is(err, backup.ErrNoValidLinks) {
				writeError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		count, err := store.ImportLinks(ctx, newActive, newCompleted)
		if err != nil {
			slog.Error("failed to import links", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to import links")
			return
		}

		writeJSON(w, http.StatusOK, map[string]int{
			"importedCount": count,
			"active":        len(newActive),
			"completed":     len(newCompleted),
		})
	}
}
