package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConditionBuilder(t *testing.T) {
	b := newConditionBuilder()

	assert.Empty(t, b.whereClause())

	b.add("l.status = %s", "available")
	b.add("l.price <= %s", 500_000.0)
	snap := b.snapshot()

	order := b.expr("ts_rank(v, %s)", "query")

	assert.Equal(t, " WHERE l.status = $1 AND l.price <= $2", b.whereClause())
	assert.Equal(t, "ts_rank(v, $3)", order)
	assert.Equal(t, []interface{}{"available", 500_000.0, "query"}, b.values)

	// The snapshot taken before the ranking bind is unaffected by it.
	assert.Equal(t, []interface{}{"available", 500_000.0}, snap)
}
