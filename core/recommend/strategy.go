package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"EchoFM/core/smartplaylist"
	"EchoFM/logger"
	"EchoFM/model"
)

// Library is the media server seen as a read-only track source.
type Library interface {
	Search(ctx context.Context, query string) ([]*model.Track, error)
	ListSongs(ctx context.Context, offset, limit int) ([]*model.Track, error)
}

// SimilarProvider looks up tracks similar to a seed track.
type SimilarProvider interface {
	GetSimilarTracks(ctx context.Context, artist, title string, limit int) ([]model.EnrichedTrack, error)
}

// MoodTranslator converts a free-text mood description into a smart playlist
// rule document.
type MoodTranslator interface {
	TranslateMoodToQuery(ctx context.Context, mood string) (*smartplaylist.Rules, error)
}

// Strategy is one recommendation mode. Recommend is the primary path;
// Fallback converts a primary-path failure into an alternate result. A
// strategy without a fallback path returns the cause unchanged, so the error
// propagates to the caller.
type Strategy interface {
	Mode() string
	Recommend(ctx context.Context, req *model.RecommendationRequest) (*model.RecommendationResult, error)
	Fallback(ctx context.Context, req *model.RecommendationRequest, cause error) (*model.RecommendationResult, error)
}

// errNoLibraryMatches signals that a similarity lookup succeeded but none of
// the candidates exist in the local library.
var errNoLibraryMatches = errors.New("no similar tracks found in library")

// excludedArtist reports whether the artist is named in the request's
// exclusion set, compared case-insensitively on the trimmed name.
func excludedArtist(req *model.RecommendationRequest, artist string) bool {
	name := strings.TrimSpace(artist)
	for _, ex := range req.ExcludeArtists {
		if strings.EqualFold(name, strings.TrimSpace(ex)) {
			return true
		}
	}
	return false
}

func excludedSongID(req *model.RecommendationRequest, id string) bool {
	if id == "" {
		return false
	}
	for _, ex := range req.ExcludeSongIDs {
		if id == ex {
			return true
		}
	}
	return false
}

// matchLibrary resolves similarity candidates against the library, marking
// the ones that exist locally with their library identity. A failed lookup
// only skips that candidate; the similarity result as a whole stays usable.
func matchLibrary(ctx context.Context, library Library, enriched []model.EnrichedTrack) ([]model.EnrichedTrack, int) {
	matched := 0
	out := make([]model.EnrichedTrack, 0, len(enriched))
	for _, et := range enriched {
		if !et.InLibrary {
			found, err := library.Search(ctx, et.Artist+" "+et.Title)
			if err != nil {
				logger.Warn("library match lookup failed",
					logger.String("artist", et.Artist),
					logger.String("title", et.Title),
					logger.ErrorField(err))
			} else {
				for _, t := range found {
					if strings.EqualFold(t.Artist, et.Artist) && strings.EqualFold(t.Title, et.Title) {
						et.InLibrary = true
						et.LibraryID = t.ID
						et.Album = t.Album
						et.Duration = t.Duration
						break
					}
				}
			}
		}
		if et.InLibrary {
			matched++
		}
		out = append(out, et)
	}
	return out, matched
}

// fallbackFromLibrary builds the always-available alternate result: up to
// limit tracks from a library-wide listing, tagged with the fallback reason.
// If the listing itself fails the result is empty and the reason becomes
// "fallback_failed: <message>".
func fallbackFromLibrary(ctx context.Context, library Library, req *model.RecommendationRequest, reason string) (*model.RecommendationResult, error) {
	tracks, err := library.ListSongs(ctx, 0, req.Limit*2)
	if err != nil {
		logger.Error("fallback library listing failed",
			logger.String("mode", req.Mode),
			logger.ErrorField(err))
		return &model.RecommendationResult{
			Mode:   req.Mode,
			Source: model.SourceFallback,
			Songs:  []model.RecommendedSong{},
			Metadata: map[string]interface{}{
				"fallbackReason": fmt.Sprintf("fallback_failed: %v", err),
			},
		}, nil
	}

	songs := make([]model.RecommendedSong, 0, req.Limit)
	for _, t := range tracks {
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
		Source: model.SourceFallback,
		Songs:  songs,
		Metadata: map[string]interface{}{
			"fallbackReason": reason,
			"returned":       len(songs),
		},
	}, nil
}
