package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/hoanghai1803/readlater/internal/models"
)

func TestGetSettings_DefaultsWhenEmpty(t *testing.T) {
	store := newTestStore(t)

	settings := store.GetSettings(context.Background())

	want := models.DefaultSettings()
	if settings != want {
		t.Errorf("GetSettings() = %+v, want defaults %+v", settings, want)
	}
}

func TestSettings_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved := models.Settings{
		DefaultPriority:   models.PriorityHigh,
		DefaultTime:       15,
		ShowNotifications: false,
		ThemeMode:         models.ThemeDark,
		AutoCleanup:       false,
		RetentionDays:     30,
	}
	if err := store.SaveSettings(ctx, saved); err != nil {
		t.Fatalf("SaveSettings() error: %v", err)
	}

	got := store.GetSettings(ctx)
	if got != saved {
		t.Errorf("GetSettings() = %+v, want %+v", got, saved)
	}
}

func TestGetSettings_PartialRecordMergesOverDefaults(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// A record written by an older version that only knew two fields.
	if err := store.setDocs(ctx, nsSync, map[string]any{
		keySettings: map[string]any{
			"defaultPriority": "low",
			"themeMode":       "light",
		},
	}); err != nil {
		t.Fatalf("seeding partial settings: %v", err)
	}

	got := store.GetSettings(ctx)
	if got.DefaultPriority != models.PriorityLow {
		t.Errorf("DefaultPriority = %q, want %q", got.DefaultPriority, models.PriorityLow)
	}
	if got.ThemeMode != models.ThemeLight {
		t.Errorf("ThemeMode = %q, want %q", got.ThemeMode, models.ThemeLight)
	}
	// Absent fields come from the defaults.
	if got.DefaultTime != 5 {
		t.Errorf("DefaultTime = %d, want default 5", got.DefaultTime)
	}
	if !got.ShowNotifications {
		t.Error("ShowNotifications = false, want default true")
	}
	if !got.AutoCleanup || got.RetentionDays != 90 {
		t.Errorf("cleanup fields = (%v, %d), want defaults (true, 90)", got.AutoCleanup, got.RetentionDays)
	}
}

func TestGetSettings_ExplicitFalseSurvivesMerge(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.setDocs(ctx, nsSync, map[string]any{
		keySettings: map[string]any{"showNotifications": false},
	}); err != nil {
		t.Fatalf("seeding settings: %v", err)
	}

	if got := store.GetSettings(ctx); got.ShowNotifications {
		t.Error("ShowNotifications = true, explicit false was lost in the merge")
	}
}

func TestGetSettings_InvalidStoredValuesFallBack(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.setDocs(ctx, nsSync, map[string]any{
		keySettings: map[string]any{
			"defaultPriority": "urgent",
			"defaultTime":     -3,
			"themeMode":       "sepia",
		},
	}); err != nil {
		t.Fatalf("seeding settings: %v", err)
	}

	got := store.GetSettings(ctx)
	want := models.DefaultSettings()
	if got != want {
		t.Errorf("GetSettings() = %+v, want defaults %+v", got, want)
	}
}

func TestGetSettings_NeverFails(t *testing.T) {
	// No database at all: load must still hand back the defaults.
	store := NewStore(nil)

	got := store.GetSettings(context.Background())
	if got != models.DefaultSettings() {
		t.Errorf("GetSettings() = %+v, want defaults", got)
	}
}

func TestSaveSettings_UnavailableStorage(t *testing.T) {
	store := NewStore(nil)

	err := store.SaveSettings(context.Background(), models.DefaultSettings())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("SaveSettings() error = %v, want ErrUnavailable", err)
	}
}
