package recommend

import (
	"strings"

	"EchoFM/model"
)

// maxTracksPerArtist caps how many songs a single artist may occupy in a
// result, so one artist cannot dominate a recommendation list. Fixed policy,
// not configurable.
const maxTracksPerArtist = 2

// ApplyDiversity drops the third and later track per artist, compared
// case-insensitively after trimming. Relative order of kept entries is
// preserved and the function is idempotent.
func ApplyDiversity(tracks []model.EnrichedTrack) []model.EnrichedTrack {
	counts := make(map[string]int, len(tracks))
	out := make([]model.EnrichedTrack, 0, len(tracks))
	for _, t := range tracks {
		key := strings.ToLower(strings.TrimSpace(t.Artist))
		if counts[key] >= maxTracksPerArtist {
			continue
		}
		counts[key]++
		out = append(out, t)
	}
	return out
}
