package recommend

import (
	"context"

	"EchoFM/core/smartplaylist"
	"EchoFM/logger"
	"EchoFM/model"
)

const (
	libraryPageSize  = 500
	libraryMaxTracks = 5000
)

// moodStrategy translates a free-text mood description into a smart playlist
// rule document and evaluates it against the full library.
type moodStrategy struct {
	library    Library
	translator MoodTranslator
}

func (s *moodStrategy) Mode() string {
	return model.ModeMood
}

func (s *moodStrategy) Recommend(ctx context.Context, req *model.RecommendationRequest) (*model.RecommendationResult, error) {
	rules, err := s.translator.TranslateMoodToQuery(ctx, req.Mood)
	if err != nil {
		return nil, err
	}

	tracks, err := s.loadLibrary(ctx)
	if err != nil {
		return nil, err
	}

	evaluated, diag := smartplaylist.Evaluate(rules, tracks)
	for _, note := range diag.Notes() {
		logger.Warn("smart playlist evaluation note",
			logger.String("mood", req.Mood),
			logger.String("note", note))
	}

	songs := make([]model.RecommendedSong, 0, req.Limit)
	for _, t := range evaluated {
		if excludedSongID(req, t.ID) || excludedArtist(req, t.Artist) {
			continue
		}
		songs = append(songs, normalizeLibraryTrack(t))
		if len(songs) >= req.Limit {
			break
		}
	}
	return &model.RecommendationResult{
		Mode:   req.Mode,
		Source: model.SourceSmartPlaylist,
		Songs:  songs,
		Metadata: map[string]interface{}{
			"totalCandidates": len(tracks),
			"matched":         len(evaluated),
			"returned":        len(songs),
		},
	}, nil
}

// loadLibrary pages through the media server's song listing. The page size
// keeps individual calls well inside the client timeout.
func (s *moodStrategy) loadLibrary(ctx context.Context) ([]*model.Track, error) {
	var all []*model.Track
	for offset := 0; offset < libraryMaxTracks; offset += libraryPageSize {
		page, err := s.library.ListSongs(ctx, offset, libraryPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < libraryPageSize {
			break
		}
	}
	return all, nil
}

func (s *moodStrategy) Fallback(ctx context.Context, req *model.RecommendationRequest, _ error) (*model.RecommendationResult, error) {
	return fallbackFromLibrary(ctx, s.library, req, "smart_playlist_error")
}
