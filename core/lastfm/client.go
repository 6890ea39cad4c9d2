package lastfm

import (
	"errors"
	"net/http"
	"time"
)

// ErrNotConfigured is returned when no API key is set. Callers treat this as
// an expected condition, not a provider failure.
var ErrNotConfigured = errors.New("lastfm api key not configured")

const defaultBaseURL = "https://ws.audioscrobbler.com/2.0/"

// Client Last.fm API客户端
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient 创建新的API客户端
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: time.Second * 5,
		},
	}
}

// SetBaseURL 设置API基础URL
func (c *Client) SetBaseURL(url string) {
	if url != "" {
		c.baseURL = url
	}
}

// IsConfigured reports whether an API key is present.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}
