package search

import (
	"fmt"
	"strconv"
	"strings"
)

// conditionBuilder owns the append-only positional parameter list. Every
// placeholder is handed out by bind, so the $n numbering is contiguous from
// 1 and always matches the values slice 1:1. Nothing outside this type may
// invent a placeholder or interpolate a value into SQL text.
type conditionBuilder struct {
	conditions []string
	values     []interface{}
}

func newConditionBuilder() *conditionBuilder {
	return &conditionBuilder{}
}

// bind appends a value and returns its placeholder.
func (b *conditionBuilder) bind(v interface{}) string {
	b.values = append(b.values, v)
	return "$" + strconv.Itoa(len(b.values))
}

// expr fills each %s verb in format with a freshly bound placeholder and
// returns the resulting fragment. Used for ORDER BY pieces that need bound
// parameters without joining the WHERE clause.
func (b *conditionBuilder) expr(format string, vals ...interface{}) string {
	ph := make([]interface{}, len(vals))
	for i, v := range vals {
		ph[i] = b.bind(v)
	}
	return fmt.Sprintf(format, ph...)
}

// add binds vals and appends the filled fragment as a WHERE condition.
func (b *conditionBuilder) add(format string, vals ...interface{}) {
	b.conditions = append(b.conditions, b.expr(format, vals...))
}

// addRaw appends a condition that carries no parameters.
func (b *conditionBuilder) addRaw(condition string) {
	b.conditions = append(b.conditions, condition)
}

func (b *conditionBuilder) whereClause() string {
	if len(b.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conditions, " AND ")
}

// snapshot returns a copy of the values bound so far. The count query calls
// it right after the WHERE clause is complete, before ranking and pagination
// parameters are bound.
func (b *conditionBuilder) snapshot() []interface{} {
	out := make([]interface{}, len(b.values))
	copy(out, b.values)
	return out
}
