package smartplaylist

import (
	"encoding/json"
	"fmt"
)

// Combinators and leaf operators understood by the evaluator.
const (
	OpAll = "all"
	OpAny = "any"

	OpIs          = "is"
	OpIsNot       = "isNot"
	OpGt          = "gt"
	OpLt          = "lt"
	OpContains    = "contains"
	OpNotContains = "notContains"
	OpStartsWith  = "startsWith"
	OpEndsWith    = "endsWith"
	OpInTheRange  = "inTheRange"

	// Date-based operators have no data source in the library view and
	// evaluate as match-all (see matches in evaluator.go).
	OpInTheLast    = "inTheLast"
	OpNotInTheLast = "notInTheLast"
	OpBefore       = "before"
	OpAfter        = "after"
)

// Condition is one node of a rule tree: either a leaf comparison
// (operator + field + value) or an all/any combinator over nested conditions.
//
// On the wire a condition is an object with exactly one key naming the
// operator, e.g. {"is":{"loved":true}} or {"any":[...]}; UnmarshalJSON
// decodes that shape into this tagged form.
type Condition struct {
	Operator string
	Field    string
	Value    interface{}
	Nested   []Condition // populated for all/any combinators
}

// UnmarshalJSON decodes the single-operator-key wire shape.
func (c *Condition) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode condition: %w", err)
	}
	if len(raw) != 1 {
		return fmt.Errorf("condition must have exactly one operator key, got %d", len(raw))
	}
	for op, body := range raw {
		if op == OpAll || op == OpAny {
			var nested []Condition
			if err := json.Unmarshal(body, &nested); err != nil {
				return fmt.Errorf("failed to decode %q conditions: %w", op, err)
			}
			c.Operator = op
			c.Nested = nested
			return nil
		}

		var fields map[string]interface{}
		if err := json.Unmarshal(body, &fields); err != nil {
			return fmt.Errorf("failed to decode %q condition: %w", op, err)
		}
		if len(fields) != 1 {
			return fmt.Errorf("%q condition must name exactly one field, got %d", op, len(fields))
		}
		c.Operator = op
		for field, value := range fields {
			c.Field = field
			c.Value = value
		}
	}
	return nil
}

// Rules is a full smart playlist document: a rule tree plus sort and limit
// directives.
//
// An empty or absent "all" list is not a no-match condition: it means no
// filter, every candidate passes.
type Rules struct {
	All   []Condition `json:"all,omitempty"`
	Any   []Condition `json:"any,omitempty"`
	Sort  string      `json:"sort,omitempty"`  // comma-separated fields, "-" prefix for descending, or "random"
	Order string      `json:"order,omitempty"` // default direction for fields without a "-" prefix
	Limit int         `json:"limit,omitempty"`
}
