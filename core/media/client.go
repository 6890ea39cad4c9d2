package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"EchoFM/model"
)

// ErrUnavailable marks media server connectivity failures.
var ErrUnavailable = errors.New("media server unavailable")

// Client talks to the self-hosted media server's song API. It is a thin,
// read-only view of the library.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient 创建媒体服务器客户端
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: time.Second * 5,
		},
	}
}

// trackPayload is the media server's song shape.
type trackPayload struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Artist      string  `json:"artist"`
	Album       string  `json:"album"`
	Duration    float64 `json:"duration"`
	TrackNumber int     `json:"trackNumber"`
	Genre       string  `json:"genre"`
	PlayCount   int64   `json:"playCount"`
	Rating      int     `json:"rating"`
	Loved       bool    `json:"starred"`
}

func (p trackPayload) toModel() *model.Track {
	return &model.Track{
		ID:          p.ID,
		Title:       p.Title,
		Artist:      p.Artist,
		Album:       p.Album,
		Duration:    p.Duration,
		TrackNumber: p.TrackNumber,
		Genre:       p.Genre,
		PlayCount:   p.PlayCount,
		Rating:      p.Rating,
		Loved:       p.Loved,
		URL:         "/stream/" + p.ID,
	}
}

// Search queries the library full-text song search.
func (c *Client) Search(ctx context.Context, query string) ([]*model.Track, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", "50")
	return c.fetchTracks(ctx, "/api/songs/search", params)
}

// ListSongs pages through the full library listing.
func (c *Client) ListSongs(ctx context.Context, offset, limit int) ([]*model.Track, error) {
	params := url.Values{}
	params.Set("offset", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(limit))
	return c.fetchTracks(ctx, "/api/songs", params)
}

// StreamURL returns the upstream URL a /stream/{id} request redirects to.
func (c *Client) StreamURL(id string) string {
	u := fmt.Sprintf("%s/api/stream/%s", c.baseURL, url.PathEscape(id))
	if c.token != "" {
		u += "?token=" + url.QueryEscape(c.token)
	}
	return u
}

func (c *Client) fetchTracks(ctx context.Context, path string, params url.Values) ([]*model.Track, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create media server request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var payload []trackPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode media server response: %w", err)
	}

	tracks := make([]*model.Track, 0, len(payload))
	for _, p := range payload {
		tracks = append(tracks, p.toModel())
	}
	return tracks, nil
}
