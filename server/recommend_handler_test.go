package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EchoFM/core/media"
	"EchoFM/core/recommend"
	"EchoFM/core/smartplaylist"
	"EchoFM/model"
)

// -- Mock engine collaborators ----------------------------------------------

type stubLibrary struct {
	tracks []*model.Track
}

func (s *stubLibrary) Search(_ context.Context, query string) ([]*model.Track, error) {
	var out []*model.Track
	for _, t := range s.tracks {
		if t.Artist+" "+t.Title == query {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *stubLibrary) ListSongs(_ context.Context, offset, limit int) ([]*model.Track, error) {
	if offset >= len(s.tracks) {
		return []*model.Track{}, nil
	}
	end := offset + limit
	if end > len(s.tracks) {
		end = len(s.tracks)
	}
	return s.tracks[offset:end], nil
}

type stubProvider struct {
	results []model.EnrichedTrack
	err     error
}

func (s *stubProvider) GetSimilarTracks(_ context.Context, _, _ string, _ int) ([]model.EnrichedTrack, error) {
	return s.results, s.err
}

type stubTranslator struct{}

func (s *stubTranslator) TranslateMoodToQuery(_ context.Context, _ string) (*smartplaylist.Rules, error) {
	return &smartplaylist.Rules{}, nil
}

func testHandler(provider *stubProvider) *APIHandler {
	library := &stubLibrary{tracks: []*model.Track{
		{ID: "lib-1", Title: "No Surprises", Artist: "Radiohead", Album: "OK Computer"},
		{ID: "lib-2", Title: "Teardrop", Artist: "Massive Attack", Album: "Mezzanine"},
	}}
	engine := recommend.NewEngine(library, provider, &stubTranslator{})
	return NewAPIHandler(engine, media.NewClient("http://media.local", "secret"), nil, nil, nil)
}

func postRecommendations(t *testing.T, handler *APIHandler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.RecommendationsHandler(rec, req)
	return rec
}

// -- RecommendationsHandler -------------------------------------------------

func TestRecommendationsHandler_Success(t *testing.T) {
	provider := &stubProvider{results: []model.EnrichedTrack{
		{Title: "No Surprises", Artist: "Radiohead", Match: 0.95},
	}}

	rec := postRecommendations(t, testHandler(provider), model.RecommendationRequest{
		Mode:   model.ModeSimilar,
		Artist: "Radiohead",
		Title:  "Karma Police",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result model.RecommendationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, model.SourceLastfm, result.Source)
	require.Len(t, result.Songs, 1)
	assert.Equal(t, "lib-1", result.Songs[0].ID)
	assert.Equal(t, "/stream/lib-1", result.Songs[0].URL)
}

func TestRecommendationsHandler_ValidationErrorIs400(t *testing.T) {
	rec := postRecommendations(t, testHandler(&stubProvider{}), model.RecommendationRequest{
		Mode: model.ModeSimilar,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "seed")
}

func TestRecommendationsHandler_MalformedJSONIs400(t *testing.T) {
	handler := testHandler(&stubProvider{})

	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	handler.RecommendationsHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendationsHandler_DiscoveryProviderErrorIs502(t *testing.T) {
	provider := &stubProvider{err: errors.New("last.fm returned status 503")}

	rec := postRecommendations(t, testHandler(provider), model.RecommendationRequest{
		Mode:   model.ModeDiscovery,
		Artist: "Radiohead",
		Title:  "Karma Police",
	})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

// -- StreamHandler ----------------------------------------------------------

func streamRequest(handler *APIHandler, trackID string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/stream/{track_id}", handler.StreamHandler).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/stream/"+trackID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestStreamHandler_RedirectsToMediaServer(t *testing.T) {
	rec := streamRequest(testHandler(&stubProvider{}), "lib-1")

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "http://media.local/api/stream/lib-1?token=secret", rec.Header().Get("Location"))
}

func TestStreamHandler_DiscoveryIDIs404(t *testing.T) {
	rec := streamRequest(testHandler(&stubProvider{}), "discovery-muse-starlight")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
