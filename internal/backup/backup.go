// Package backup implements the export/import document codec for the
// link collections.
//
// The current document format is version 2.0.0 and carries both
// collections; the legacy unversioned format carried a single "links"
// array, which imports treat entirely as active.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hoanghai1803/readlater/internal/models"
)

// FormatVersion is the version tag written into every export document.
const FormatVersion = "2.0.0"

// ErrNoValidLinks is returned when an import document yields no valid
// records at all.
var ErrNoValidLinks = errors.New("no valid links found in file")

// Document is the transportable backup format.
type Document struct {
	ActiveLinks    []models.Link `json:"activeLinks"`
	CompletedLinks []models.Link `json:"completedLinks"`
	ExportDate     time.Time     `json:"exportDate"`
	Version        string        `json:"version"`
}

// Export wraps the two collections into a versioned document stamped
// with the given export time.
func Export(active, completed []models.Link, now time.Time) Document {
	if active == nil {
		active = []models.Link{}
	}
	if completed == nil {
		completed = []models.Link{}
	}
	return Document{
		ActiveLinks:    active,
		CompletedLinks: completed,
		ExportDate:     now,
		Version:        FormatVersion,
	}
}

// inboundDocument accepts either format. Records stay raw so a single
// malformed record is dropped instead of failing the whole import.
type inboundDocument struct {
	Version        string            `json:"version"`
	ActiveLinks    []json.RawMessage `json:"activeLinks"`
	CompletedLinks []json.RawMessage `json:"completedLinks"`
	Links          []json.RawMessage `json:"links"`
}

// Parse decodes an export document, validates every candidate record,
// and returns the surviving active and completed sets. Valid records get
// a fresh id (originals are discarded to avoid collisions with existing
// data) and a dateAdded defaulting to now when absent. Invalid records
// are silently dropped; ErrNoValidLinks is returned when nothing
// survives.
func Parse(data []byte, now time.Time) (active, completed []models.Link, err error) {
	var doc inboundDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parsing import document: %w", err)
	}

	var rawActive, rawCompleted []json.RawMessage
	if doc.Version == FormatVersion {
		rawActive = doc.ActiveLinks
		rawCompleted = doc.CompletedLinks
	} else {
		// Legacy format: the whole document is one active list.
		rawActive = doc.Links
	}

	active = cleanLinks(rawActive, now)
	completed = cleanLinks(rawCompleted, now)

	// A record destined for the active collection must not carry a
	// completion stamp.
	for i := range active {
		active[i].CompletedDate = nil
	}

	if len(active)+len(completed) == 0 {
		return nil, nil, ErrNoValidLinks
	}
	return active, completed, nil
}

// cleanLinks decodes and validates each raw record, reassigning ids and
// defaulting missing fields. Records that fail to decode or validate are
// skipped.
func cleanLinks(raw []json.RawMessage, now time.Time) []models.Link {
	links := make([]models.Link, 0, len(raw))
	for _, r := range raw {
		var link models.Link
		if err := json.Unmarshal(r, &link); err != nil {
			continue
		}
		if !validLink(link) {
			continue
		}
		link.ID = uuid.NewString()
		if link.DateAdded.IsZero() {
			link.DateAdded = now
		}
		if link.Tags == nil {
			link.Tags = []string{}
		}
		links = append(links, link)
	}
	return links
}

// validLink checks the fields every imported record must carry: url and
// title present, a known priority, and a positive reading time.
func validLink(l models.Link) bool {
	return l.URL != "" &&
		l.Title != "" &&
		models.ValidPriority(l.Priority) &&
		l.TimeToRead > 0
}
