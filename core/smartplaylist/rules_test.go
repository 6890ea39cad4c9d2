package smartplaylist

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesDecode_LeafConditions(t *testing.T) {
	raw := `{
		"all": [
			{"is": {"loved": true}},
			{"gt": {"rating": 3}},
			{"contains": {"genre": "rock"}}
		],
		"sort": "-rating,title",
		"order": "asc",
		"limit": 25
	}`

	var rules Rules
	require.NoError(t, json.Unmarshal([]byte(raw), &rules))

	require.Len(t, rules.All, 3)
	assert.Equal(t, OpIs, rules.All[0].Operator)
	assert.Equal(t, "loved", rules.All[0].Field)
	assert.Equal(t, true, rules.All[0].Value)

	assert.Equal(t, OpGt, rules.All[1].Operator)
	assert.Equal(t, "rating", rules.All[1].Field)
	assert.Equal(t, float64(3), rules.All[1].Value)

	assert.Equal(t, OpContains, rules.All[2].Operator)
	assert.Equal(t, "genre", rules.All[2].Field)

	assert.Equal(t, "-rating,title", rules.Sort)
	assert.Equal(t, 25, rules.Limit)
}

func TestRulesDecode_NestedCombinators(t *testing.T) {
	raw := `{
		"all": [
			{"any": [
				{"is": {"genre": "jazz"}},
				{"all": [
					{"is": {"genre": "electronic"}},
					{"lt": {"duration": 300}}
				]}
			]}
		]
	}`

	var rules Rules
	require.NoError(t, json.Unmarshal([]byte(raw), &rules))

	require.Len(t, rules.All, 1)
	outer := rules.All[0]
	assert.Equal(t, OpAny, outer.Operator)
	require.Len(t, outer.Nested, 2)

	assert.Equal(t, OpIs, outer.Nested[0].Operator)
	assert.Equal(t, OpAll, outer.Nested[1].Operator)
	require.Len(t, outer.Nested[1].Nested, 2)
	assert.Equal(t, OpLt, outer.Nested[1].Nested[1].Operator)
	assert.Equal(t, "duration", outer.Nested[1].Nested[1].Field)
}

func TestRulesDecode_InTheRange(t *testing.T) {
	raw := `{"all": [{"inTheRange": {"rating": [2, 4]}}]}`

	var rules Rules
	require.NoError(t, json.Unmarshal([]byte(raw), &rules))

	require.Len(t, rules.All, 1)
	bounds, ok := rules.All[0].Value.([]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{float64(2), float64(4)}, bounds)
}

func TestRulesDecode_RejectsMultiKeyCondition(t *testing.T) {
	raw := `{"all": [{"is": {"loved": true}, "gt": {"rating": 3}}]}`

	var rules Rules
	err := json.Unmarshal([]byte(raw), &rules)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one operator key")
}

func TestRulesDecode_RejectsMultiFieldLeaf(t *testing.T) {
	raw := `{"all": [{"is": {"loved": true, "rating": 3}}]}`

	var rules Rules
	err := json.Unmarshal([]byte(raw), &rules)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one field")
}
