package smartplaylist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EchoFM/model"
)

// -- Test fixtures ----------------------------------------------------------

func testLibrary() []*model.Track {
	return []*model.Track{
		{ID: "1", Title: "Karma Police", Artist: "Radiohead", Album: "OK Computer", Genre: "Alternative Rock", Duration: 261, Rating: 5, PlayCount: 120, Loved: true},
		{ID: "2", Title: "No Surprises", Artist: "Radiohead", Album: "OK Computer", Genre: "Alternative Rock", Duration: 229, Rating: 4, PlayCount: 80, Loved: false},
		{ID: "3", Title: "Bitter Sweet Symphony", Artist: "The Verve", Album: "Urban Hymns", Genre: "Britpop", Duration: 357, Rating: 4, PlayCount: 60, Loved: true},
		{ID: "4", Title: "So What", Artist: "Miles Davis", Album: "Kind of Blue", Genre: "Jazz", Duration: 562, Rating: 5, PlayCount: 30, Loved: true},
		{ID: "5", Title: "Windowlicker", Artist: "Aphex Twin", Album: "Windowlicker", Genre: "Electronic", Duration: 366, Rating: 3, PlayCount: 15, Loved: false},
		{ID: "6", Title: "Teardrop", Artist: "Massive Attack", Album: "Mezzanine", Genre: "Trip Hop", Duration: 330, Rating: 2, PlayCount: 5, Loved: false},
	}
}

func trackIDs(tracks []*model.Track) []string {
	ids := make([]string, 0, len(tracks))
	for _, t := range tracks {
		ids = append(ids, t.ID)
	}
	return ids
}

// -- Evaluate ---------------------------------------------------------------

func TestEvaluate_EmptyRulesReturnEverything(t *testing.T) {
	lib := testLibrary()

	got, diag := Evaluate(&Rules{}, lib)

	assert.Equal(t, trackIDs(lib), trackIDs(got))
	assert.Empty(t, diag.Notes())
}

func TestEvaluate_AllNarrowsSequentially(t *testing.T) {
	rules := Rules{
		All: []Condition{
			{Operator: OpIs, Field: "loved", Value: true},
			{Operator: OpGt, Field: "rating", Value: float64(4)},
		},
	}

	got, _ := Evaluate(&rules, testLibrary())

	assert.Equal(t, []string{"1", "4"}, trackIDs(got))
}

func TestEvaluate_IsMatchesSubstringCaseInsensitive(t *testing.T) {
	rules := Rules{
		All: []Condition{{Operator: OpIs, Field: "artist", Value: "radiohead"}},
	}

	got, _ := Evaluate(&rules, testLibrary())

	assert.Equal(t, []string{"1", "2"}, trackIDs(got))
}

func TestEvaluate_IsNot(t *testing.T) {
	rules := Rules{
		All: []Condition{{Operator: OpIsNot, Field: "genre", Value: "rock"}},
	}

	got, _ := Evaluate(&rules, testLibrary())

	assert.Equal(t, []string{"3", "4", "5", "6"}, trackIDs(got))
}

func TestEvaluate_NumericComparisons(t *testing.T) {
	gt := Rules{All: []Condition{{Operator: OpGt, Field: "duration", Value: float64(360)}}}
	got, _ := Evaluate(&gt, testLibrary())
	assert.Equal(t, []string{"4", "5"}, trackIDs(got))

	lt := Rules{All: []Condition{{Operator: OpLt, Field: "playcount", Value: float64(20)}}}
	got, _ = Evaluate(&lt, testLibrary())
	assert.Equal(t, []string{"5", "6"}, trackIDs(got))
}

func TestEvaluate_StringOperators(t *testing.T) {
	starts := Rules{All: []Condition{{Operator: OpStartsWith, Field: "title", Value: "no "}}}
	got, _ := Evaluate(&starts, testLibrary())
	assert.Equal(t, []string{"2"}, trackIDs(got))

	ends := Rules{All: []Condition{{Operator: OpEndsWith, Field: "album", Value: "hymns"}}}
	got, _ = Evaluate(&ends, testLibrary())
	assert.Equal(t, []string{"3"}, trackIDs(got))

	notContains := Rules{All: []Condition{{Operator: OpNotContains, Field: "genre", Value: "o"}}}
	got, _ = Evaluate(&notContains, testLibrary())
	assert.Equal(t, []string{"4"}, trackIDs(got))
}

func TestEvaluate_InTheRangeInclusive(t *testing.T) {
	rules := Rules{
		All: []Condition{{Operator: OpInTheRange, Field: "rating", Value: []interface{}{float64(3), float64(4)}}},
	}

	got, _ := Evaluate(&rules, testLibrary())

	assert.Equal(t, []string{"2", "3", "5"}, trackIDs(got))
}

func TestEvaluate_AnyUnionDeduplicates(t *testing.T) {
	// Track 1 matches both branches; it must appear once, at its first position.
	rules := Rules{
		Any: []Condition{
			{Operator: OpIs, Field: "loved", Value: true},
			{Operator: OpGt, Field: "playcount", Value: float64(50)},
		},
	}

	got, _ := Evaluate(&rules, testLibrary())

	assert.Equal(t, []string{"1", "3", "4", "2"}, trackIDs(got))
}

func TestEvaluate_NestedCombinators(t *testing.T) {
	// jazz, or (electronic and shorter than 400s)
	rules := Rules{
		All: []Condition{
			{
				Operator: OpAny,
				Nested: []Condition{
					{Operator: OpIs, Field: "genre", Value: "jazz"},
					{
						Operator: OpAll,
						Nested: []Condition{
							{Operator: OpIs, Field: "genre", Value: "electronic"},
							{Operator: OpLt, Field: "duration", Value: float64(400)},
						},
					},
				},
			},
		},
	}

	got, _ := Evaluate(&rules, testLibrary())

	assert.Equal(t, []string{"4", "5"}, trackIDs(got))
}

func TestEvaluate_DateOperatorsPassThroughWithNote(t *testing.T) {
	rules := Rules{
		All: []Condition{
			{Operator: OpInTheLast, Field: "lastPlayed", Value: float64(30)},
			{Operator: OpInTheLast, Field: "lastPlayed", Value: float64(30)},
		},
	}

	got, diag := Evaluate(&rules, testLibrary())

	assert.Len(t, got, len(testLibrary()))
	require.Len(t, diag.Notes(), 1)
	assert.Contains(t, diag.Notes()[0], "inTheLast")
}

func TestEvaluate_UnknownOperatorPassesThrough(t *testing.T) {
	rules := Rules{
		All: []Condition{{Operator: "soundsLike", Field: "title", Value: "karma"}},
	}

	got, diag := Evaluate(&rules, testLibrary())

	assert.Len(t, got, len(testLibrary()))
	require.Len(t, diag.Notes(), 1)
	assert.Contains(t, diag.Notes()[0], "soundsLike")
}

func TestEvaluate_UnknownFieldNoted(t *testing.T) {
	rules := Rules{
		All: []Condition{{Operator: OpIs, Field: "bpm", Value: "120"}},
	}

	got, diag := Evaluate(&rules, testLibrary())

	assert.Empty(t, got)
	require.Len(t, diag.Notes(), 1)
	assert.Contains(t, diag.Notes()[0], "bpm")
}

func TestEvaluate_SortMultiKeyWithDescPrefix(t *testing.T) {
	rules := Rules{
		All:  []Condition{{Operator: OpIs, Field: "album", Value: "ok computer"}},
		Sort: "-rating,title",
	}

	got, _ := Evaluate(&rules, testLibrary())

	assert.Equal(t, []string{"1", "2"}, trackIDs(got))
}

func TestEvaluate_SortAscending(t *testing.T) {
	rules := Rules{Sort: "duration", Order: "asc"}

	got, _ := Evaluate(&rules, testLibrary())

	assert.Equal(t, []string{"2", "1", "6", "3", "5", "4"}, trackIDs(got))
}

func TestEvaluate_SortRandomKeepsSameSet(t *testing.T) {
	rules := Rules{Sort: "random"}
	lib := testLibrary()

	got, _ := Evaluate(&rules, lib)

	assert.ElementsMatch(t, trackIDs(lib), trackIDs(got))
}

func TestEvaluate_SortDoesNotMutateInput(t *testing.T) {
	lib := testLibrary()
	original := trackIDs(lib)

	_, _ = Evaluate(&Rules{Sort: "-playcount"}, lib)

	assert.Equal(t, original, trackIDs(lib))
}

func TestEvaluate_LimitTruncates(t *testing.T) {
	rules := Rules{Sort: "duration", Order: "asc", Limit: 2}

	got, _ := Evaluate(&rules, testLibrary())

	assert.Equal(t, []string{"2", "1"}, trackIDs(got))
}

func TestEvaluate_Idempotent(t *testing.T) {
	rules := Rules{
		All:  []Condition{{Operator: OpIs, Field: "loved", Value: true}},
		Sort: "-rating",
	}

	first, _ := Evaluate(&rules, testLibrary())
	second, _ := Evaluate(&rules, first)

	assert.Equal(t, trackIDs(first), trackIDs(second))
}
