package mood

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"EchoFM/core/smartplaylist"
)

// ErrNotConfigured is returned when no translator base URL is set.
var ErrNotConfigured = errors.New("mood translator not configured")

// Translator 情绪翻译服务客户端。
// It turns a free-text mood description into a smart playlist rule document
// by calling the translator sidecar.
type Translator struct {
	baseURL    string
	httpClient *http.Client
}

// NewTranslator 创建新的翻译客户端
func NewTranslator(baseURL string) *Translator {
	return &Translator{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: time.Second * 5,
		},
	}
}

// TranslateMoodToQuery sends the mood text to the sidecar and decodes the
// rule document it returns.
func (t *Translator) TranslateMoodToQuery(ctx context.Context, mood string) (*smartplaylist.Rules, error) {
	if t.baseURL == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(map[string]string{"mood": mood})
	if err != nil {
		return nil, fmt.Errorf("failed to encode mood request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/api/translate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create mood request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mood translator request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mood translator returned status %d", resp.StatusCode)
	}

	var payload struct {
		Rules smartplaylist.Rules `json:"rules"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode mood translator response: %w", err)
	}
	return &payload.Rules, nil
}
