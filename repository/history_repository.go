package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"EchoFM/db"
	"EchoFM/model"
)

// HistoryRepository defines the interface for recommendation history
// operations.
type HistoryRepository interface {
	CreateHistory(ctx context.Context, h *model.RecommendationHistory) (int64, error)
	GetRecentHistory(ctx context.Context, limit int) ([]*model.RecommendationHistory, error)
}

// mysqlHistoryRepository implements HistoryRepository for MySQL.
type mysqlHistoryRepository struct {
	DB *sql.DB
}

// NewMySQLHistoryRepository creates a new instance of mysqlHistoryRepository.
func NewMySQLHistoryRepository() HistoryRepository {
	return &mysqlHistoryRepository{DB: db.DB}
}

// CreateHistory records one orchestrated recommendation request.
func (r *mysqlHistoryRepository) CreateHistory(ctx context.Context, h *model.RecommendationHistory) (int64, error) {
	query := `INSERT INTO recommendation_history (mode, seed, mood, source, fallback_reason, song_count, created_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	stmt, err := r.DB.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement for CreateHistory: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, h.Mode, h.Seed, h.Mood, h.Source, h.FallbackReason, h.SongCount, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to execute CreateHistory: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for CreateHistory: %w", err)
	}
	return id, nil
}

// GetRecentHistory retrieves the latest history entries, newest first.
func (r *mysqlHistoryRepository) GetRecentHistory(ctx context.Context, limit int) ([]*model.RecommendationHistory, error) {
	query := `SELECT id, mode, seed, mood, source, fallback_reason, song_count, created_at
	           FROM recommendation_history ORDER BY created_at DESC LIMIT ?`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendation history: %w", err)
	}
	defer rows.Close()

	entries := make([]*model.RecommendationHistory, 0)
	for rows.Next() {
		h := &model.RecommendationHistory{}
		var seed, mood, reason sql.NullString
		err := rows.Scan(&h.ID, &h.Mode, &seed, &mood, &h.Source, &reason, &h.SongCount, &h.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history in GetRecentHistory: %w", err)
		}
		h.Seed = seed.String
		h.Mood = mood.String
		h.FallbackReason = reason.String
		entries = append(entries, h)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration in GetRecentHistory: %w", err)
	}

	return entries, nil
}
