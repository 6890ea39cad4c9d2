package smartplaylist

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"EchoFM/model"
)

// Diagnostics collects evaluation notes, at most one per operator/field pair,
// so a rule over unavailable metadata produces a single note instead of
// per-row noise. A collector is scoped to one Evaluate call.
type Diagnostics struct {
	notes []string
	seen  map[string]struct{}
}

func (d *Diagnostics) noteOnce(key, msg string) {
	if d.seen == nil {
		d.seen = make(map[string]struct{})
	}
	if _, ok := d.seen[key]; ok {
		return
	}
	d.seen[key] = struct{}{}
	d.notes = append(d.notes, msg)
}

// Notes returns the collected notes in the order they were first raised.
func (d *Diagnostics) Notes() []string {
	return d.notes
}

// Evaluate filters the candidate tracks through the rule tree, then applies
// the document's sort and limit directives. The input slice is never mutated.
//
// "all" conditions narrow the working set sequentially; "any" conditions are
// evaluated independently against the all-filtered set and unioned,
// deduplicated by track ID with the first occurrence winning. With neither
// present the full candidate list passes through.
func Evaluate(rules *Rules, tracks []*model.Track) ([]*model.Track, *Diagnostics) {
	diag := &Diagnostics{}
	working := tracks

	for i := range rules.All {
		working = filterTracks(working, &rules.All[i], diag)
	}

	if len(rules.Any) > 0 {
		seen := make(map[string]struct{}, len(working))
		union := make([]*model.Track, 0, len(working))
		for i := range rules.Any {
			for _, t := range filterTracks(working, &rules.Any[i], diag) {
				if _, ok := seen[t.ID]; ok {
					continue
				}
				seen[t.ID] = struct{}{}
				union = append(union, t)
			}
		}
		working = union
	}

	working = applySort(working, rules.Sort, rules.Order)

	if rules.Limit > 0 && len(working) > rules.Limit {
		working = working[:rules.Limit]
	}
	return working, diag
}

// filterTracks keeps the tracks matching one condition, recursing into
// nested all/any combinators.
func filterTracks(set []*model.Track, cond *Condition, diag *Diagnostics) []*model.Track {
	switch cond.Operator {
	case OpAll:
		for i := range cond.Nested {
			set = filterTracks(set, &cond.Nested[i], diag)
		}
		return set
	case OpAny:
		seen := make(map[string]struct{}, len(set))
		union := make([]*model.Track, 0, len(set))
		for i := range cond.Nested {
			for _, t := range filterTracks(set, &cond.Nested[i], diag) {
				if _, ok := seen[t.ID]; ok {
					continue
				}
				seen[t.ID] = struct{}{}
				union = append(union, t)
			}
		}
		return union
	}

	out := make([]*model.Track, 0, len(set))
	for _, t := range set {
		if matches(cond, t, diag) {
			out = append(out, t)
		}
	}
	return out
}

// matches applies a leaf condition to one track.
func matches(cond *Condition, t *model.Track, diag *Diagnostics) bool {
	switch cond.Operator {
	case OpInTheLast, OpNotInTheLast, OpBefore, OpAfter:
		// The library view carries no date metadata, so these operators pass
		// every track rather than failing the whole rule set.
		diag.noteOnce("op:"+cond.Operator+":"+cond.Field,
			fmt.Sprintf("operator %q on field %q has no data source, treating as match-all", cond.Operator, cond.Field))
		return true
	}

	value := fieldValue(t, cond.Field, diag)

	switch cond.Operator {
	case OpIs:
		return isMatch(value, cond.Value)
	case OpIsNot:
		return !isMatch(value, cond.Value)
	case OpGt:
		got, ok1 := toFloat(value)
		want, ok2 := toFloat(cond.Value)
		return ok1 && ok2 && got > want
	case OpLt:
		got, ok1 := toFloat(value)
		want, ok2 := toFloat(cond.Value)
		return ok1 && ok2 && got < want
	case OpContains:
		return strings.Contains(lower(value), lowerValue(cond.Value))
	case OpNotContains:
		return !strings.Contains(lower(value), lowerValue(cond.Value))
	case OpStartsWith:
		return strings.HasPrefix(lower(value), lowerValue(cond.Value))
	case OpEndsWith:
		return strings.HasSuffix(lower(value), lowerValue(cond.Value))
	case OpInTheRange:
		bounds, ok := cond.Value.([]interface{})
		if !ok || len(bounds) != 2 {
			return false
		}
		got, ok1 := toFloat(value)
		min, ok2 := toFloat(bounds[0])
		max, ok3 := toFloat(bounds[1])
		return ok1 && ok2 && ok3 && got >= min && got <= max
	default:
		diag.noteOnce("op:"+cond.Operator,
			fmt.Sprintf("unknown operator %q, treating as match-all", cond.Operator))
		return true
	}
}

// isMatch implements the "is" operator: substring match for text fields,
// exact compare for numeric and boolean fields.
func isMatch(got interface{}, want interface{}) bool {
	switch g := got.(type) {
	case string:
		return strings.Contains(strings.ToLower(g), lowerValue(want))
	case bool:
		if wb, ok := want.(bool); ok {
			return g == wb
		}
		return strings.EqualFold(strconv.FormatBool(g), fmt.Sprint(want))
	case float64:
		w, ok := toFloat(want)
		return ok && g == w
	}
	return false
}

// fieldValue resolves a rule field name against a track. Unknown fields
// resolve to an empty string rather than erroring.
func fieldValue(t *model.Track, field string, diag *Diagnostics) interface{} {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "title", "name":
		return t.Title
	case "artist", "albumartist":
		return t.Artist
	case "album":
		return t.Album
	case "genre":
		return t.Genre
	case "duration":
		return t.Duration
	case "tracknumber", "track":
		return float64(t.TrackNumber)
	case "playcount", "plays":
		return float64(t.PlayCount)
	case "rating":
		return float64(t.Rating)
	case "loved":
		return t.Loved
	default:
		diag.noteOnce("field:"+field,
			fmt.Sprintf("field %q is not available on library tracks, resolving to empty", field))
		return ""
	}
}

func applySort(tracks []*model.Track, sortSpec, order string) []*model.Track {
	out := make([]*model.Track, len(tracks))
	copy(out, tracks)

	spec := strings.TrimSpace(sortSpec)
	if spec == "" {
		return out
	}
	if strings.EqualFold(spec, "random") {
		rand.Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})
		return out
	}

	type sortKey struct {
		field string
		desc  bool
	}
	defaultDesc := strings.EqualFold(strings.TrimSpace(order), "desc")
	var keys []sortKey
	for _, f := range strings.Split(spec, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		desc := defaultDesc
		if strings.HasPrefix(f, "-") {
			// A leading "-" overrides the document-level order for this field.
			desc = true
			f = strings.TrimPrefix(f, "-")
		}
		keys = append(keys, sortKey{field: f, desc: desc})
	}

	sort.SliceStable(out, func(i, j int) bool {
		for _, k := range keys {
			c := compareField(out[i], out[j], k.field)
			if c == 0 {
				continue
			}
			if k.desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return out
}

// compareField compares two tracks on one field with the comparison
// appropriate to the field's type.
func compareField(a, b *model.Track, field string) int {
	noDiag := &Diagnostics{}
	av := fieldValue(a, field, noDiag)
	bv := fieldValue(b, field, noDiag)

	if af, ok := toFloat(av); ok {
		bf, _ := toFloat(bv)
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	if ab, ok := av.(bool); ok {
		bb, _ := bv.(bool)
		switch {
		case !ab && bb:
			return -1
		case ab && !bb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(lower(av), lower(bv))
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func lower(v interface{}) string {
	if s, ok := v.(string); ok {
		return strings.ToLower(s)
	}
	return strings.ToLower(fmt.Sprint(v))
}

func lowerValue(v interface{}) string {
	return lower(v)
}
