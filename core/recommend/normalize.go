package recommend

import (
	"regexp"
	"strings"

	"EchoFM/model"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

func sanitizeIDPart(s string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
}

// DiscoveryID synthesizes a stable identifier for a track that is not in the
// library. The result never contains whitespace.
func DiscoveryID(artist, title string) string {
	return "discovery-" + sanitizeIDPart(artist) + "-" + sanitizeIDPart(title)
}

// StreamURL builds the playable URL for a library track.
func StreamURL(id string) string {
	return "/stream/" + id
}

func normalizeLibraryTrack(t *model.Track) model.RecommendedSong {
	return model.RecommendedSong{
		ID:        t.ID,
		Title:     t.Title,
		Artist:    t.Artist,
		Album:     t.Album,
		Duration:  t.Duration,
		URL:       StreamURL(t.ID),
		InLibrary: true,
	}
}

func normalizeEnrichedTrack(et model.EnrichedTrack) model.RecommendedSong {
	if et.InLibrary {
		return model.RecommendedSong{
			ID:        et.LibraryID,
			Title:     et.Title,
			Artist:    et.Artist,
			Album:     et.Album,
			Duration:  et.Duration,
			URL:       StreamURL(et.LibraryID),
			Score:     et.Match,
			InLibrary: true,
		}
	}
	return model.RecommendedSong{
		ID:     DiscoveryID(et.Artist, et.Title),
		Title:  et.Title,
		Artist: et.Artist,
		URL:    et.URL,
		Score:  et.Match,
	}
}
