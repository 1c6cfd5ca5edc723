package models

import "time"

// Priority levels for a saved link.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// ValidPriority reports whether p is one of the known priority levels.
func ValidPriority(p string) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Link represents one saved page. A link lives in exactly one of the two
// collections (active or completed); CompletedDate is present only while
// the link sits in the completed collection.
type Link struct {
	ID            string     `json:"id"`
	URL           string     `json:"url"`
	Title         string     `json:"title"`
	Priority      string     `json:"priority"`
	TimeToRead    int        `json:"timeToRead"`
	Tags          []string   `json:"tags"`
	DateAdded     time.Time  `json:"dateAdded"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`
}

// NewLink carries the caller-supplied fields for creating a link. Zero
// values for Priority, TimeToRead, and Tags are replaced with defaults
// by the store.
type NewLink struct {
	URL        string   `json:"url"`
	Title      string   `json:"title"`
	Priority   string   `json:"priority,omitempty"`
	TimeToRead int      `json:"timeToRead,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// LinkPatch is a partial update for an active link. Nil fields are left
// unchanged. ID, DateAdded, and CompletedDate cannot be patched.
type LinkPatch struct {
	Title      *string   `json:"title,omitempty"`
	URL        *string   `json:"url,omitempty"`
	Priority   *string   `json:"priority,omitempty"`
	TimeToRead *int      `json:"timeToRead,omitempty"`
	Tags       *[]string `json:"tags,omitempty"`
}
