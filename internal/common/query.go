package common

import (
	"fmt"
	"slices"
	"strings"
)

// Joiner separates the "column = $n" terms of a generated clause.
type Joiner string

const (
	// JoinAnd builds a WHERE predicate.
	JoinAnd Joiner = " AND "
	// JoinComma builds an UPDATE assignment list.
	JoinComma Joiner = ", "
)

// Field is one column/value pair of a partial record.
type Field struct {
	Column string
	Value  any
}

// Fields collects the set fields of a typed filter or patch.
type Fields []Field

// With appends column only when v is set.
func (fs Fields) With(column string, v *string) Fields {
	if v == nil {
		return fs
	}
	return append(fs, Field{Column: column, Value: *v})
}

type QueryOptions struct {
	// Joiner defaults to JoinAnd.
	Joiner Joiner
	// ParamStart is the number of the first placeholder, defaults to 1.
	ParamStart int
}

// BuildClause turns fields into a clause such as "title = $1 AND user_id = $2" and
// the values to bind in the same order.
//
// Fields whose column is not in allowed are dropped silently. The allow-list keeps
// columns an operation should not touch out of the generated SQL; it is a hygiene
// check and not a security boundary. Values are always bound as parameters, never
// interpolated.
//
// If nothing survives the allow-list BuildClause returns ErrMalformedQuery rather
// than an empty or always-true clause.
func BuildClause(fields []Field, allowed []string, opts QueryOptions) (string, []any, error) {
	joiner := opts.Joiner
	if joiner == "" {
		joiner = JoinAnd
	}

	paramNum := opts.ParamStart
	if paramNum < 1 {
		paramNum = 1
	}

	parts := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))

	for _, f := range fields {
		if !slices.Contains(allowed, f.Column) {
			continue
		}

		parts = append(parts, fmt.Sprintf("%s = $%d", f.Column, paramNum))
		args = append(args, f.Value)
		paramNum++
	}

	if len(parts) == 0 {
		return "", nil, ErrMalformedQuery
	}

	return strings.Join(parts, string(joiner)), args, nil
}
