package model

// Track represents a song in the media server library.
// Tracks are a read-only view: they are fetched from the media server per
// request and never mutated by this service.
type Track struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Artist      string  `json:"artist"`
	Album       string  `json:"album"`
	Duration    float64 `json:"duration"` // seconds
	TrackNumber int     `json:"trackNumber"`
	Genre       string  `json:"genre"`
	PlayCount   int64   `json:"playCount"`
	Rating      int     `json:"rating"` // 0-5
	Loved       bool    `json:"loved"`
	URL         string  `json:"url"` // streaming URL
}
