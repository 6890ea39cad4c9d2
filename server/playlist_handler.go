package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"EchoFM/logger"
	"EchoFM/model"

	"github.com/gorilla/mux"
)

// savePlaylistRequest is the payload for persisting a recommendation result
// as a named playlist.
type savePlaylistRequest struct {
	Name   string                  `json:"name"`
	Mode   string                  `json:"mode"`
	Source string                  `json:"source"`
	Songs  []model.RecommendedSong `json:"songs"`
}

// CreatePlaylistHandler serves POST /api/playlists.
func (h *APIHandler) CreatePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	var req savePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "playlist name is required")
		return
	}
	if len(req.Songs) == 0 {
		respondError(w, http.StatusBadRequest, "playlist needs at least one song")
		return
	}

	playlist := &model.Playlist{
		Name:   strings.TrimSpace(req.Name),
		Mode:   req.Mode,
		Source: req.Source,
		Items:  make([]model.PlaylistItem, 0, len(req.Songs)),
	}
	for _, song := range req.Songs {
		playlist.Items = append(playlist.Items, model.PlaylistItem{
			SongID: song.ID,
			Title:  song.Title,
			Artist: song.Artist,
			Album:  song.Album,
			URL:    song.URL,
		})
	}

	id, err := h.playlistRepo.CreatePlaylist(r.Context(), playlist)
	if err != nil {
		logger.Error("failed to save playlist", logger.String("name", req.Name), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "failed to save playlist")
		return
	}

	logger.Info("playlist saved",
		logger.String("id", id),
		logger.String("name", playlist.Name),
		logger.Int("songs", len(playlist.Items)))
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// GetPlaylistsHandler serves GET /api/playlists.
func (h *APIHandler) GetPlaylistsHandler(w http.ResponseWriter, r *http.Request) {
	playlists, err := h.playlistRepo.GetAllPlaylists(r.Context())
	if err != nil {
		logger.Error("failed to list playlists", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "failed to list playlists")
		return
	}
	respondJSON(w, http.StatusOK, playlists)
}

// GetPlaylistHandler serves GET /api/playlists/{id}.
func (h *APIHandler) GetPlaylistHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	playlist, err := h.playlistRepo.GetPlaylistByID(r.Context(), id)
	if err != nil {
		logger.Error("failed to load playlist", logger.String("id", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "failed to load playlist")
		return
	}
	if playlist == nil {
		respondError(w, http.StatusNotFound, "playlist not found")
		return
	}
	respondJSON(w, http.StatusOK, playlist)
}

// DeletePlaylistHandler serves DELETE /api/playlists/{id}.
func (h *APIHandler) DeletePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.playlistRepo.DeletePlaylist(r.Context(), id); err != nil {
		logger.Error("failed to delete playlist", logger.String("id", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "failed to delete playlist")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
