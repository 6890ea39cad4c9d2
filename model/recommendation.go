package model

// Recommendation modes.
const (
	ModeSimilar   = "similar"
	ModeDiscovery = "discovery"
	ModeMood      = "mood"
)

// Result sources. These literals are part of the API contract.
const (
	SourceLastfm        = "lastfm"
	SourceSmartPlaylist = "smart_playlist"
	SourceFallback      = "fallback"
)

// DefaultLimit is used when a request does not specify a result limit.
const DefaultLimit = 10

// EnrichedTrack is a transient similarity-lookup candidate. It only lives for
// the duration of one request and is discarded after normalization.
type EnrichedTrack struct {
	Title     string  `json:"title"`
	Artist    string  `json:"artist"`
	URL       string  `json:"url"`   // external URL, used as the playable URL for non-library tracks
	Match     float64 `json:"match"` // similarity score, 0.0-1.0
	InLibrary bool    `json:"inLibrary"`
	LibraryID string  `json:"libraryId,omitempty"`
	Album     string  `json:"album,omitempty"`
	Duration  float64 `json:"duration,omitempty"`
}

// RecommendationRequest is the input shape of the recommendation engine.
// Similar and discovery modes require the seed artist/title pair, mood mode
// requires the mood description.
type RecommendationRequest struct {
	Mode           string   `json:"mode"`
	Artist         string   `json:"artist,omitempty"`
	Title          string   `json:"title,omitempty"`
	Mood           string   `json:"mood,omitempty"`
	ExcludeSongIDs []string `json:"excludeSongIds,omitempty"`
	ExcludeArtists []string `json:"excludeArtists,omitempty"`
	Limit          int      `json:"limit,omitempty"`
}

// RecommendedSong is the normalized song shape returned for every mode.
// Library matches carry their real library identifier and a /stream/{id}
// URL; discovery matches carry a synthesized identifier and the external URL.
type RecommendedSong struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Artist    string  `json:"artist"`
	Album     string  `json:"album,omitempty"`
	Duration  float64 `json:"duration,omitempty"`
	URL       string  `json:"url"`
	Score     float64 `json:"score,omitempty"`
	InLibrary bool    `json:"inLibrary"`
}

// RecommendationResult is the uniform engine output, with provenance in
// Source and Metadata (candidate counts, fallbackReason when applicable).
type RecommendationResult struct {
	Mode     string                 `json:"mode"`
	Source   string                 `json:"source"`
	Songs    []RecommendedSong      `json:"songs"`
	Metadata map[string]interface{} `json:"metadata"`
}
