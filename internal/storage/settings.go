package storage

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hoanghai1803/readlater/internal/models"
)

// keySettings is the settings document key in the sync_data namespace.
const keySettings = "readLaterSettings"

// storedSettings is the persisted shape of the settings record. Every
// field is optional so a record written by an older version (or with
// gaps) merges cleanly over the defaults; in particular an absent
// boolean is distinguishable from an explicit false.
type storedSettings struct {
	DefaultPriority   *string `json:"defaultPriority,omitempty"`
	DefaultTime       *int    `json:"defaultTime,omitempty"`
	ShowNotifications *bool   `json:"showNotifications,omitempty"`
	ThemeMode         *string `json:"themeMode,omitempty"`
	AutoCleanup       *bool   `json:"autoCleanup,omitempty"`
	RetentionDays     *int    `json:"retentionDays,omitempty"`
}

// GetSettings returns the stored settings merged over the defaults. It
// never fails observably: any read problem is logged and the defaults
// are returned, so callers always see a complete record.
func (s *Store) GetSettings(ctx context.Context) models.Settings {
	settings := models.DefaultSettings()

	var stored storedSettings
	if err := s.getDoc(ctx, nsSync, keySettings, &stored); err != nil {
		if !errors.Is(err, ErrNotFound) {
			slog.Warn("failed to load settings, using defaults", "error", err)
		}
		return settings
	}

	if stored.DefaultPriority != nil && models.ValidPriority(*stored.DefaultPriority) {
		settings.DefaultPriority = *stored.DefaultPriority
	}
	if stored.DefaultTime != nil && *stored.DefaultTime > 0 {
		settings.DefaultTime = *stored.DefaultTime
	}
	if stored.ShowNotifications != nil {
		settings.ShowNotifications = *stored.ShowNotifications
	}
	if stored.ThemeMode != nil && models.ValidThemeMode(*stored.ThemeMode) {
		settings.ThemeMode = *stored.ThemeMode
	}
	if stored.AutoCleanup != nil {
		settings.AutoCleanup = *stored.AutoCleanup
	}
	if stored.RetentionDays != nil && *stored.RetentionDays > 0 {
		settings.RetentionDays = *stored.RetentionDays
	}

	return settings
}

// SaveSettings persists the full settings record. Unlike GetSettings,
// a save failure is surfaced to the caller.
func (s *Store) SaveSettings(ctx context.Context, settings models.Settings) error {
	return s.setDocs(ctx, nsSync, map[string]any{keySettings: settings})
}
