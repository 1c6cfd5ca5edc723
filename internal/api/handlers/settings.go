package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hoanghai1803/readlater/internal/models"
	"github.com/hoanghai1803/readlater/internal/storage"
)

// GetSettings handles GET /api/settings. It returns the settings record
// merged over defaults; this never fails, so a fresh install gets the
// defaults back.
func GetSettings(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.GetSettings(r.Context()))
	}
}

// UpdateSettings handles PUT /api/settings. It validates and persists
// the full settings record, then returns it.
func UpdateSettings(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var settings models.Settings
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		if err := validateSettings(settings); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := store.SaveSettings(ctx, settings); err != nil {
			slog.Error("failed to save settings", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to save settings")
			return
		}

		writeJSON(w, http.StatusOK, settings)
	}
}

// validateSettings rejects records that would poison the defaults merge.
func validateSettings(s models.Settings) error {
	if !models.ValidPriority(s.DefaultPriority) {
		return fmt.Errorf("invalid defaultPriority %q: must be one of high, medium, low", s.DefaultPriority)
	}
	if s.DefaultTime < 1 {
		return fmt.Errorf("invalid defaultTime %d: must be >= 1", s.DefaultTime)
	}
	if !models.ValidThemeMode(s.ThemeMode) {
		return fmt.Errorf("invalid themeMode %q: must be one of system, light, dark", s.ThemeMode)
	}
	if s.RetentionDays < 1 {
		return fmt.Errorf("invalid retentionDays %d: must be >= 1", s.RetentionDays)
	}
	return nil
}
