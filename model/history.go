package model

import "time"

// RecommendationHistory records one orchestrated request for the dashboard's
// history view.
type RecommendationHistory struct {
	ID             int64     `json:"id"`
	Mode           string    `json:"mode"`
	Seed           string    `json:"seed,omitempty"` // "artist - title" for similar/discovery
	Mood           string    `json:"mood,omitempty"`
	Source         string    `json:"source"`
	FallbackReason string    `json:"fallbackReason,omitempty"`
	SongCount      int       `json:"songCount"`
	CreatedAt      time.Time `json:"createdAt"`
}
