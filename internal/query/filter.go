package query

import (
	"regexp"
	"strconv"

	"katalog/internal/apperrors"
)

// Op is the predicate variant applied to a filter field.
type Op int

const (
	// OpEquals compares the raw value exactly.
	OpEquals Op = iota
	// OpContains matches a case-insensitive substring.
	OpContains
	// OpNumericEquals parses the value and compares numerically.
	OpNumericEquals
	// OpBoolEquals parses the value and compares as a boolean, so the
	// bound parameter matches both native and 0/1 boolean columns.
	OpBoolEquals
)

// Field classifies one filterable field of an entity and names the store
// column it maps to. An empty Column means the key is the column.
type Field struct {
	Column string
	Op     Op
}

// Schema classifies the filterable fields of an entity, keyed by the request
// parameter name. It is built once at startup, not re-branched per request.
type Schema map[string]Field

// Keys returns the filterable parameter names of a schema.
func (s Schema) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	return keys
}

// Predicate is one condition of a conjunctive filter. Field is a store
// column name.
type Predicate struct {
	Field string
	Op    Op
	Value interface{}
}

var identifierRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func isIdentifier(s string) bool {
	return identifierRe.MatchString(s)
}

// Compile converts a flat field→value mapping into a conjunctive predicate
// list using the entity's schema. Keys absent from the schema pass through
// as equality predicates, provided they are plain identifiers, so raw input
// can never reach a column position unchecked. An empty mapping yields an
// empty list, which matches all rows.
func Compile(schema Schema, filters map[string]string) ([]Predicate, error) {
	if len(filters) == 0 {
		return nil, nil
	}

	preds := make([]Predicate, 0, len(filters))
	for key, raw := range filters {
		if !isIdentifier(key) {
			return nil, apperrors.Validation("invalid filter field: %s", key)
		}
		field, known := schema[key]
		col := field.Column
		if col == "" {
			col = key
		}
		op := OpEquals
		if known {
			op = field.Op
		}
		switch op {
		case OpContains:
			preds = append(preds, Predicate{Field: col, Op: OpContains, Value: raw})
		case OpNumericEquals:
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, apperrors.Validation("filter %s must be numeric", key)
			}
			preds = append(preds, Predicate{Field: col, Op: OpNumericEquals, Value: n})
		case OpBoolEquals:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, apperrors.Validation("filter %s must be a boolean", key)
			}
			preds = append(preds, Predicate{Field: col, Op: OpBoolEquals, Value: b})
		default:
			preds = append(preds, Predicate{Field: col, Op: OpEquals, Value: raw})
		}
	}
	return preds, nil
}
