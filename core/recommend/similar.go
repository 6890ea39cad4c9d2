package recommend

import (
	"context"
	"errors"

	"EchoFM/core/lastfm"
	"EchoFM/model"
)

// overfetchFactor leaves headroom for exclusions, library matching and
// diversity capping before the result is cut down to the requested limit.
const overfetchFactor = 3

// similarStrategy recommends library tracks similar to the seed track.
type similarStrategy struct {
	library  Library
	provider SimilarProvider
}

func (s *similarStrategy) Mode() string {
	return model.ModeSimilar
}

func (s *similarStrategy) Recommend(ctx context.Context, req *model.RecommendationRequest) (*model.RecommendationResult, error) {
	enriched, err := s.provider.GetSimilarTracks(ctx, req.Artist, req.Title, req.Limit*overfetchFactor)
	if err != nil {
		return nil, err
	}
	total := len(enriched)

	enriched, matched := matchLibrary(ctx, s.library, enriched)

	kept := make([]model.EnrichedTrack, 0, len(enriched))
	for _, et := range enriched {
		if !et.InLibrary {
			continue
		}
		if excludedSongID(req, et.LibraryID) || excludedArtist(req, et.Artist) {
			continue
		}
		kept = append(kept, et)
	}
	if len(kept) == 0 {
		return nil, errNoLibraryMatches
	}

	kept = ApplyDiversity(kept)
	if len(kept) > req.Limit {
		kept = kept[:req.Limit]
	}

	songs := make([]model.RecommendedSong, 0, len(kept))
	for _, et := range kept {
		songs = append(songs, normalizeEnrichedTrack(et))
	}
	return &model.RecommendationResult{
		Mode:   req.Mode,
		Source: model.SourceLastfm,
		Songs:  songs,
		Metadata: map[string]interface{}{
			"totalCandidates": total,
			"libraryMatches":  matched,
			"returned":        len(songs),
		},
	}, nil
}

// Fallback serves a library-wide listing, with the reason derived from what
// broke the primary path.
func (s *similarStrategy) Fallback(ctx context.Context, req *model.RecommendationRequest, cause error) (*model.RecommendationResult, error) {
	reason := "lastfm_error"
	switch {
	case errors.Is(cause, lastfm.ErrNotConfigured):
		reason = "lastfm_not_configured"
	case errors.Is(cause, errNoLibraryMatches):
		reason = "no_library_matches"
	}
	return fallbackFromLibrary(ctx, s.library, req, reason)
}
