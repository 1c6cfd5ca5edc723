package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hoanghai1803/readlater/internal/models"
)

// Storage keys for the two link collections.
const (
	keyActiveLinks    = "readLaterLinks"
	keyCompletedLinks = "completedLinks"
)

// activeLinks reads the active collection. A missing key is an empty
// collection, not an error.
func (s *Store) activeLinks(ctx context.Context) ([]models.Link, error) {
	var links []models.Link
	if err := s.getDoc(ctx, nsLocal, keyActiveLinks, &links); err != nil {
		if errors.Is(err, ErrNotFound) {
			return []models.Link{}, nil
		}
		return nil, err
	}
	return links, nil
}

// completedLinks reads the completed collection.
func (s *Store) completedLinks(ctx context.Context) ([]models.Link, error) {
	var links []models.Link
	if err := s.getDoc(ctx, nsLocal, keyCompletedLinks, &links); err != nil {
		if errors.Is(err, ErrNotFound) {
			return []models.Link{}, nil
		}
		return nil, err
	}
	return links, nil
}

// SaveLink constructs a new link from the caller-supplied fields and
// inserts it at the front of the active collection (most-recent-first).
// Priority defaults to medium, timeToRead to 5 minutes, tags to empty.
// The generated id and dateAdded are immutable for the life of the link.
func (s *Store) SaveLink(ctx context.Context, data models.NewLink) (*models.Link, error) {
	if data.URL == "" {
		return nil, fmt.Errorf("url is required")
	}
	if data.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	priority := data.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return nil, fmt.Errorf("invalid priority %q: must be one of high, medium, low", priority)
	}

	timeToRead := data.TimeToRead
	if timeToRead <= 0 {
		timeToRead = 5
	}

	tags := data.Tags
	if tags == nil {
		tags = []string{}
	}

	link := models.Link{
		ID:         uuid.NewString(),
		URL:        data.URL,
		Title:      data.Title,
		Priority:   priority,
		TimeToRead: timeToRead,
		Tags:       tags,
		DateAdded:  time.Now().UTC(),
	}

	links, err := s.activeLinks(ctx)
	if err != nil {
		return nil, err
	}
	links = append([]models.Link{link}, links...)

	if err := s.setDocs(ctx, nsLocal, map[string]any{keyActiveLinks: links}); err != nil {
		return nil, err
	}
	return &link, nil
}

// GetLinks returns the active collection, newest first.
func (s *Store) GetLinks(ctx context.Context) ([]models.Link, error) {
	return s.activeLinks(ctx)
}

// GetCompletedLinks returns the completed collection, newest first.
func (s *Store) GetCompletedLinks(ctx context.Context) ([]models.Link, error) {
	return s.completedLinks(ctx)
}

// UpdateLink shallow-merges the set fields of patch into the active link
// with the given id. The returned bool reports whether the link was
// found; an unknown id is a tagged no-op, not an error, so callers can
// decide whether to surface it (a stale id from another surface must not
// crash anything).
func (s *Store) UpdateLink(ctx context.Context, id string, patch models.LinkPatch) (bool, error) {
	if patch.Priority != nil && !models.ValidPriority(*patch.Priority) {
		return false, fmt.Errorf("invalid priority %q: must be one of high, medium, low", *patch.Priority)
	}

	links, err := s.activeLinks(ctx)
	if err != nil {
		return false, err
	}

	idx := indexByID(links, id)
	if idx < 0 {
		return false, nil
	}

	link := &links[idx]
	if patch.Title != nil {
		link.Title = *patch.Title
	}
	if patch.URL != nil {
		link.URL = *patch.URL
	}
	if patch.Priority != nil {
		link.Priority = *patch.Priority
	}
	if patch.TimeToRead != nil {
		link.TimeToRead = *patch.TimeToRead
	}
	if patch.Tags != nil {
		link.Tags = *patch.Tags
	}

	if err := s.setDocs(ctx, nsLocal, map[string]any{keyActiveLinks: links}); err != nil {
		return false, err
	}
	return true, nil
}

// CompleteLink moves the active link with the given id to the front of
// the completed collection, stamping completedDate with the current
// time. Both collections are persisted in a single write. The returned
// bool reports whether the link was found.
func (s *Store) CompleteLink(ctx context.Context, id string) (bool, error) {
	active, err := s.activeLinks(ctx)
	if err != nil {
		return false, err
	}

	idx := indexByID(active, id)
	if idx < 0 {
		return false, nil
	}

	completed, err := s.completedLinks(ctx)
	if err != nil {
		return false, err
	}

	link := active[idx]
	now := time.Now().UTC()
	link.CompletedDate = &now

	active = append(active[:idx], active[idx+1:]...)
	completed = append([]models.Link{link}, completed...)

	if err := s.setDocs(ctx, nsLocal, map[string]any{
		keyActiveLinks:    active,
		keyCompletedLinks: completed,
	}); err != nil {
		return false, err
	}
	return true, nil
}

// UncompleteLink is the inverse of CompleteLink: it strips completedDate
// and moves the link back to the front of the active collection. Every
// other field, dateAdded included, is preserved.
func (s *Store) UncompleteLink(ctx context.Context, id string) (bool, error) {
	completed, err := s.completedLinks(ctx)
	if err != nil {
		return false, err
	}

	idx := indexByID(completed, id)
	if idx < 0 {
		return false, nil
	}

	active, err := s.activeLinks(ctx)
	if err != nil {
		return false, err
	}

	link := completed[idx]
	link.CompletedDate = nil

	completed = append(completed[:idx], completed[idx+1:]...)
	active = append([]models.Link{link}, active...)

	if err := s.setDocs(ctx, nsLocal, map[string]any{
		keyActiveLinks:    active,
		keyCompletedLinks: completed,
	}); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteLink removes the link with the given id from both collections.
// Id uniqueness means at most one collection holds it; filtering both is
// defensive. Deleting an unknown id is a no-op, so the operation is
// idempotent.
func (s *Store) DeleteLink(ctx context.Context, id string) (bool, error) {
	active, err := s.activeLinks(ctx)
	if err != nil {
		return false, err
	}
	completed, err := s.completedLinks(ctx)
	if err != nil {
		return false, err
	}

	filteredActive := removeByID(active, id)
	filteredCompleted := removeByID(completed, id)
	found := len(filteredActive) != len(active) || len(filteredCompleted) != len(completed)

	if err := s.setDocs(ctx, nsLocal, map[string]any{
		keyActiveLinks:    filteredActive,
		keyCompletedLinks: filteredCompleted,
	}); err != nil {
		return false, err
	}
	return found, nil
}

// ClearLinks deletes both link collections outright.
func (s *Store) ClearLinks(ctx context.Context) error {
	return s.deleteDocs(ctx, nsLocal, keyActiveLinks, keyCompletedLinks)
}

// ImportLinks appends the given records after the existing ones and
// persists both collections in one write. Existing data is never
// replaced or reordered. Returns the number of records imported.
func (s *Store) ImportLinks(ctx context.Context, newActive, newCompleted []models.Link) (int, error) {
	active, err := s.activeLinks(ctx)
	if err != nil {
		return 0, err
	}
	completed, err := s.completedLinks(ctx)
	if err != nil {
		return 0, err
	}

	active = append(active, newActive...)
	completed = append(completed, newCompleted...)

	if err := s.setDocs(ctx, nsLocal, map[string]any{
		keyActiveLinks:    active,
		keyCompletedLinks: completed,
	}); err != nil {
		return 0, err
	}
	return len(newActive) + len(newCompleted), nil
}

// CleanupCompleted removes completed links whose completedDate is
// strictly older than the retention window configured in settings.
// It returns the number of links removed.
//
// Cleanup runs unattended on startup, so every failure degrades to a
// logged no-op returning 0 rather than an error; it must never block
// the caller.
func (s *Store) CleanupCompleted(ctx context.Context) int {
	settings := s.GetSettings(ctx)
	if !settings.AutoCleanup {
		return 0
	}

	completed, err := s.completedLinks(ctx)
	if err != nil {
		slog.Warn("cleanup skipped: cannot read completed links", "error", err)
		return 0
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -settings.RetentionDays)
	kept := make([]models.Link, 0, len(completed))
	for _, link := range completed {
		if link.CompletedDate != nil && link.CompletedDate.Before(cutoff) {
			continue
		}
		kept = append(kept, link)
	}

	removed := len(completed) - len(kept)
	if removed == 0 {
		return 0
	}

	if err := s.setDocs(ctx, nsLocal, map[string]any{keyCompletedLinks: kept}); err != nil {
		slog.Warn("cleanup skipped: cannot persist completed links", "error", err)
		return 0
	}

	slog.Info("cleaned up expired completed links", "removed", removed, "retention_days", settings.RetentionDays)
	return removed
}

// indexByID returns the index of the link with the given id, or -1.
func indexByID(links []models.Link, id string) int {
	for i, link := range links {
		if link.ID == id {
			return i
		}
	}
	return -1
}

// removeByID returns links without the record matching id.
func removeByID(links []models.Link, id string) []models.Link {
	filtered := make([]models.Link, 0, len(links))
	for _, link := range links {
		if link.ID != id {
			filtered = append(filtered, link)
		}
	}
	return filtered
}
