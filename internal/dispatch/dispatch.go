// Package dispatch routes action requests from the presentation
// surfaces (popup, options page, in-page save dialog) to the store and
// wraps every outcome in a uniform success/error envelope.
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hoanghai1803/readlater/internal/models"
	"github.com/hoanghai1803/readlater/internal/storage"
)

// Action identifies one operation of the request protocol.
type Action string

// The closed action set. Each action maps 1:1 to a store operation.
const (
	ActionSaveLink          Action = "saveLink"
	ActionGetLinks          Action = "getLinks"
	ActionGetCompletedLinks Action = "getCompletedLinks"
	ActionCompleteLink      Action = "completeLink"
	ActionUncompleteLink    Action = "uncompleteLink"
	ActionDeleteLink        Action = "deleteLink"
	ActionUpdateLink        Action = "updateLink"
	ActionCleanupCompleted  Action = "cleanupCompleted"
)

// Request is an inbound action message. ID and Data are interpreted
// per-action: saveLink and updateLink read Data, the per-link actions
// read ID.
type Request struct {
	Action Action          `json:"action"`
	ID     string          `json:"id,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// Response is the envelope returned for every request. Exactly one of
// Data and Error is meaningful, selected by Success.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Dispatcher maps actions onto store operations.
type Dispatcher struct {
	store *storage.Store
}

// NewDispatcher creates a Dispatcher backed by the given store.
func NewDispatcher(store *storage.Store) *Dispatcher {
	return &Dispatcher{store: store}
}

func ok(data any) Response {
	return Response{Success: true, Data: data}
}

func fail(err error) Response {
	return Response{Success: false, Error: err.Error()}
}

// Handle executes a single action request and always produces a
// response. Unknown actions get an explicit error envelope rather than
// silence, so a caller with a typo'd action fails fast instead of
// waiting forever.
//
// A per-link action against an id that no longer exists (deleted from
// another surface) is reported as success on the wire and logged here;
// the store exposes the tagged outcome for callers that care.
func (d *Dispatcher) Handle(ctx context.Context, req Request) Response {
	switch req.Action {
	case ActionSaveLink:
		var data models.NewLink
		if err := json.Unmarshal(req.Data, &data); err != nil {
			return fail(fmt.Errorf("invalid saveLink payload: %w", err))
		}
		link, err := d.store.SaveLink(ctx, data)
		if err != nil {
			return fail(err)
		}
		return ok(link)

	case ActionGetLinks:
		links, err := d.store.GetLinks(ctx)
		if err != nil {
			return fail(err)
		}
		return ok(links)

	case ActionGetCompletedLinks:
		links, err := d.store.GetCompletedLinks(ctx)
		if err != nil {
			return fail(err)
		}
		return ok(links)

	case ActionCompleteLink:
		found, err := d.store.CompleteLink(ctx, req.ID)
		if err != nil {
			return fail(err)
		}
		if !found {
			slog.Warn("completeLink: no active link with id", "id", req.ID)
		}
		return ok(nil)

	case ActionUncompleteLink:
		found, err := d.store.UncompleteLink(ctx, req.ID)
		if err != nil {
			return fail(err)
		}
		if !found {
			slog.Warn("uncompleteLink: no completed link with id", "id", req.ID)
		}
		return ok(nil)

	case ActionDeleteLink:
		if _, err := d.store.DeleteLink(ctx, req.ID); err != nil {
			return fail(err)
		}
		return ok(nil)

	case ActionUpdateLink:
		var patch models.LinkPatch
		if err := json.Unmarshal(req.Data, &patch); err != nil {
			return fail(fmt.Errorf("invalid updateLink payload: %w", err))
		}
		found, err := d.store.UpdateLink(ctx, req.ID, patch)
		if err != nil {
			return fail(err)
		}
		if !found {
			slog.Warn("updateLink: no active link with id", "id", req.ID)
		}
		return ok(nil)

	case ActionCleanupCompleted:
		deleted := d.store.CleanupCompleted(ctx)
		return ok(map[string]int{"deletedCount": deleted})

	default:
		return Response{Success: false, Error: fmt.Sprintf("unknown action %q", req.Action)}
	}
}
