package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"EchoFM/core/recommend"
	"EchoFM/logger"
	"EchoFM/model"
)

// RecommendationsHandler is the HTTP entry point of the recommendation
// engine: POST /api/recommendations.
func (h *APIHandler) RecommendationsHandler(w http.ResponseWriter, r *http.Request) {
	var req model.RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	result, err := h.engine.GetRecommendations(r.Context(), &req)
	if err != nil {
		var verr *recommend.ValidationError
		if errors.As(err, &verr) {
			respondError(w, http.StatusBadRequest, verr.Error())
			return
		}
		// Discovery-mode provider failures land here.
		logger.Error("recommendation request failed",
			logger.String("mode", req.Mode),
			logger.ErrorField(err))
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	h.recordHistory(r, &req, result)
	respondJSON(w, http.StatusOK, result)
}

// recordHistory stores the request outcome for the dashboard history view.
// Failures are logged and swallowed: history is best-effort.
func (h *APIHandler) recordHistory(r *http.Request, req *model.RecommendationRequest, result *model.RecommendationResult) {
	if h.historyRepo == nil {
		return
	}

	entry := &model.RecommendationHistory{
		Mode:      result.Mode,
		Mood:      req.Mood,
		Source:    result.Source,
		SongCount: len(result.Songs),
	}
	if req.Artist != "" || req.Title != "" {
		entry.Seed = fmt.Sprintf("%s - %s", req.Artist, req.Title)
	}
	if reason, ok := result.Metadata["fallbackReason"].(string); ok {
		entry.FallbackReason = reason
	}

	if _, err := h.historyRepo.CreateHistory(r.Context(), entry); err != nil {
		logger.Warn("failed to record recommendation history", logger.ErrorField(err))
	}
}

// RecommendationHistoryHandler serves GET /api/recommendations/history.
func (h *APIHandler) RecommendationHistoryHandler(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	entries, err := h.historyRepo.GetRecentHistory(r.Context(), limit)
	if err != nil {
		logger.Error("failed to load recommendation history", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// LibrarySearchHandler proxies GET /api/library/search to the media server.
func (h *APIHandler) LibrarySearchHandler(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		respondError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	tracks, err := h.library.Search(r.Context(), query)
	if err != nil {
		logger.Error("library search failed", logger.String("q", query), logger.ErrorField(err))
		respondError(w, http.StatusBadGateway, "library search failed")
		return
	}
	respondJSON(w, http.StatusOK, tracks)
}
