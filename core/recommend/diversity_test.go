package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"EchoFM/model"
)

func TestApplyDiversity_CapsTracksPerArtist(t *testing.T) {
	in := []model.EnrichedTrack{
		{Title: "A", Artist: "Radiohead"},
		{Title: "B", Artist: "Radiohead"},
		{Title: "C", Artist: "Radiohead"},
		{Title: "D", Artist: "The Verve"},
		{Title: "E", Artist: "Radiohead"},
		{Title: "F", Artist: "The Verve"},
		{Title: "G", Artist: "The Verve"},
	}

	out := ApplyDiversity(in)

	titles := make([]string, 0, len(out))
	for _, tr := range out {
		titles = append(titles, tr.Title)
	}
	assert.Equal(t, []string{"A", "B", "D", "F"}, titles)
}

func TestApplyDiversity_ArtistComparedCaseInsensitively(t *testing.T) {
	in := []model.EnrichedTrack{
		{Title: "A", Artist: "Radiohead"},
		{Title: "B", Artist: "radiohead"},
		{Title: "C", Artist: " RADIOHEAD "},
	}

	out := ApplyDiversity(in)

	assert.Len(t, out, 2)
}

func TestApplyDiversity_Idempotent(t *testing.T) {
	in := []model.EnrichedTrack{
		{Title: "A", Artist: "Radiohead"},
		{Title: "B", Artist: "Radiohead"},
		{Title: "C", Artist: "Radiohead"},
		{Title: "D", Artist: "The Verve"},
	}

	once := ApplyDiversity(in)
	twice := ApplyDiversity(once)

	assert.Equal(t, once, twice)
}

func TestApplyDiversity_EmptyInput(t *testing.T) {
	assert.Empty(t, ApplyDiversity(nil))
}
