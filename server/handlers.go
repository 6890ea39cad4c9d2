package server

import (
	"encoding/json"
	"net/http"

	"EchoFM/config"
	"EchoFM/core/media"
	"EchoFM/core/recommend"
	"EchoFM/logger"
	"EchoFM/repository"
)

// APIHandler 处理所有API请求
type APIHandler struct {
	engine       *recommend.Engine
	library      *media.Client
	historyRepo  repository.HistoryRepository
	playlistRepo repository.PlaylistRepository
	cfg          *config.Config
}

// NewAPIHandler 创建新的API处理器
func NewAPIHandler(
	engine *recommend.Engine,
	library *media.Client,
	historyRepo repository.HistoryRepository,
	playlistRepo repository.PlaylistRepository,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		engine:       engine,
		library:      library,
		historyRepo:  historyRepo,
		playlistRepo: playlistRepo,
		cfg:          cfg,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("failed to encode response", logger.ErrorField(err))
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// HealthHandler reports service liveness.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
