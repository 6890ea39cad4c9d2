package lastfm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"EchoFM/cache"
	"EchoFM/logger"
	"EchoFM/model"
)

// GetSimilarTracks 调用 track.getSimilar 接口获取相似歌曲。
// Results are served from the Redis cache when available; a cache miss falls
// through to the API and the response is cached for the next lookup.
func (c *Client) GetSimilarTracks(ctx context.Context, artist, title string, limit int) ([]model.EnrichedTrack, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	if tracks, ok := cache.GetSimilarTracks(ctx, artist, title, limit); ok {
		logger.Debug("similar tracks served from cache",
			logger.String("artist", artist),
			logger.String("title", title))
		return tracks, nil
	}

	params := url.Values{}
	params.Set("method", "track.getsimilar")
	params.Set("artist", artist)
	params.Set("track", title)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("autocorrect", "1")
	params.Set("api_key", c.apiKey)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create lastfm request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lastfm request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lastfm returned status %d", resp.StatusCode)
	}

	var result struct {
		SimilarTracks struct {
			Track []struct {
				Name  string  `json:"name"`
				Match float64 `json:"match"`
				URL   string  `json:"url"`
				Artist struct {
					Name string `json:"name"`
				} `json:"artist"`
			} `json:"track"`
		} `json:"similartracks"`
		Error   int    `json:"error,omitempty"`
		Message string `json:"message,omitempty"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode lastfm response: %w", err)
	}
	if result.Error != 0 {
		return nil, fmt.Errorf("lastfm api error: %s (code %d)", result.Message, result.Error)
	}

	tracks := make([]model.EnrichedTrack, 0, len(result.SimilarTracks.Track))
	for _, t := range result.SimilarTracks.Track {
		tracks = append(tracks, model.EnrichedTrack{
			Title:  t.Name,
			Artist: t.Artist.Name,
			URL:    t.URL,
			Match:  t.Match,
		})
	}

	cache.SetSimilarTracks(ctx, artist, title, limit, tracks)
	return tracks, nil
}
