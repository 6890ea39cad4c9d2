package server

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// StreamHandler serves GET /stream/{track_id} by redirecting to the media
// server's stream endpoint. Discovery IDs have no library stream and return
// 404 so the UI falls back to the external URL.
func (h *APIHandler) StreamHandler(w http.ResponseWriter, r *http.Request) {
	trackID := mux.Vars(r)["track_id"]
	if trackID == "" {
		respondError(w, http.StatusBadRequest, "track id is required")
		return
	}
	if strings.HasPrefix(trackID, "discovery-") {
		respondError(w, http.StatusNotFound, "discovery tracks are not in the library")
		return
	}

	http.Redirect(w, r, h.library.StreamURL(trackID), http.StatusFound)
}
