package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hoanghai1803/readlater/internal/dispatch"
)

// Message handles POST /api/message, the action protocol endpoint. The
// body is a single action request; the response is always an envelope
// with HTTP 200 — action-level failure travels inside the envelope, the
// way the extension surfaces expect it. Only a malformed body is a
// transport-level 400.
func Message(d *dispatch.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dispatch.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		resp := d.Handle(r.Context(), req)
		writeJSON(w, http.StatusOK, resp)
	}
}
