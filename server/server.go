package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"EchoFM/cache"
	"EchoFM/config"
	"EchoFM/core/lastfm"
	"EchoFM/core/media"
	"EchoFM/core/mood"
	"EchoFM/core/recommend"
	"EchoFM/db"
	"EchoFM/logger"
	"EchoFM/model"
	"EchoFM/repository"

	"github.com/gorilla/mux"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	})

	// 设置服务器超时
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Connect to the database
	if err := db.ConnectDB(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.DB.Close()

	if err := db.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := db.ConnectGormDB(cfg); err != nil {
		log.Fatalf("Failed to connect to database with GORM: %v", err)
	}
	defer db.CloseGormDB()

	if err := db.AutoMigrateModels(&model.Playlist{}, &model.PlaylistItem{}); err != nil {
		log.Fatalf("Failed to migrate playlist models: %v", err)
	}

	// Redis is the similarity cache; the engine works without it.
	if err := cache.ConnectRedis(cfg); err != nil {
		logger.Warn("Redis unavailable, similarity caching disabled", logger.ErrorField(err))
	} else {
		defer cache.CloseRedis()
		log.Println("Successfully connected to Redis")
	}

	// External collaborators
	library := media.NewClient(cfg.MediaServerURL, cfg.MediaServerToken)
	lastfmClient := lastfm.NewClient(cfg.LastfmAPIKey)
	lastfmClient.SetBaseURL(cfg.LastfmBaseURL)
	translator := mood.NewTranslator(cfg.MoodAPIURL)

	engine := recommend.NewEngine(library, lastfmClient, translator)

	historyRepo := repository.NewMySQLHistoryRepository()
	playlistRepo := repository.NewGormPlaylistRepository()

	apiHandler := NewAPIHandler(engine, library, historyRepo, playlistRepo, cfg)

	// 使用 gorilla/mux 创建路由器
	router := mux.NewRouter()

	// 添加 CORS 中间件
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, HEAD")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Range")
			w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// 推荐相关的API端点
	router.HandleFunc("/api/recommendations", apiHandler.RecommendationsHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/recommendations/history", apiHandler.RecommendationHistoryHandler).Methods(http.MethodGet)

	// 播放列表相关的API端点
	router.HandleFunc("/api/playlists", apiHandler.CreatePlaylistHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists", apiHandler.GetPlaylistsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists/{id}", apiHandler.GetPlaylistHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists/{id}", apiHandler.DeletePlaylistHandler).Methods(http.MethodDelete)

	// 媒体库代理
	router.HandleFunc("/api/library/search", apiHandler.LibrarySearchHandler).Methods(http.MethodGet)
	router.HandleFunc("/stream/{track_id}", apiHandler.StreamHandler).Methods(http.MethodGet)

	router.HandleFunc("/api/health", apiHandler.HealthHandler).Methods(http.MethodGet)

	server.Handler = router

	// 创建一个通道来接收操作系统信号
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 在goroutine中启动服务器
	go func() {
		log.Printf("Server starting on %s...", cfg.ServerAddr)
		log.Println("Request recommendations via POST to /api/recommendations")
		log.Println("Manage playlists via /api/playlists endpoints")
		log.Println("Stream library tracks via GET /stream/{track_id}")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// 等待中断信号
	<-stop
	log.Println("Shutting down server...")

	// 创建一个5秒超时的上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 优雅关闭服务器
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
