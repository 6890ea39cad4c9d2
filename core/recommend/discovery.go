package recommend

import (
	"context"
	"errors"
	"sort"

	"EchoFM/core/lastfm"
	"EchoFM/model"
)

// discoveryStrategy recommends similar tracks that are NOT in the library,
// ranked by similarity score.
type discoveryStrategy struct {
	library  Library
	provider SimilarProvider
}

func (s *discoveryStrategy) Mode() string {
	return model.ModeDiscovery
}

func (s *discoveryStrategy) Recommend(ctx context.Context, req *model.RecommendationRequest) (*model.RecommendationResult, error) {
	enriched, err := s.provider.GetSimilarTracks(ctx, req.Artist, req.Title, req.Limit*overfetchFactor)
	if err != nil {
		if errors.Is(err, lastfm.ErrNotConfigured) {
			// The only caught condition in this mode. Discovery has no library
			// fallback: suggesting non-library tracks needs the provider.
			return &model.RecommendationResult{
				Mode:   req.Mode,
				Source: model.SourceFallback,
				Songs:  []model.RecommendedSong{},
				Metadata: map[string]interface{}{
					"fallbackReason": "lastfm_not_configured",
				},
			}, nil
		}
		return nil, err
	}
	total := len(enriched)

	enriched, _ = matchLibrary(ctx, s.library, enriched)

	kept := make([]model.EnrichedTrack, 0, len(enriched))
	for _, et := range enriched {
		if et.InLibrary {
			continue
		}
		if excludedArtist(req, et.Artist) {
			continue
		}
		kept = append(kept, et)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Match > kept[j].Match
	})
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
			"returned":        len(songs),
		},
	}, nil
}

// Fallback returns the cause unchanged: discovery-mode provider failures
// propagate to the caller.
func (s *discoveryStrategy) Fallback(_ context.Context, _ *model.RecommendationRequest, cause error) (*model.RecommendationResult, error) {
	return nil, cause
}
