package ember

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifierTableInterningIsPointerStable(t *testing.T) {
	tbl := NewIdentifierTable()
	a1 := tbl.Lookup("foo")
	a2 := tbl.Lookup("foo")
	require.Same(t, a1, a2, "two lookups of the same spelling must share one record")

	// Force growth by interning many distinct spellings; the earlier
	// pointer must remain valid and still compare equal.
	for i := 0; i < 1000; i++ {
		tbl.Lookup(string(rune('a'+i%26)) + string(rune(i)))
	}
	a3 := tbl.Lookup("foo")
	assert.Same(t, a1, a3)
}

func TestIdentifierTableRegistersKeywords(t *testing.T) {
	tbl := NewIdentifierTable()
	fn := tbl.Lookup("fn")
	assert.True(t, fn.IsKeyword())
	assert.Equal(t, TokKeyFn, fn.Kind)

	notAKeyword := tbl.Lookup("banana")
	assert.False(t, notAKeyword.IsKeyword())
	assert.Equal(t, TokIdentifier, notAKeyword.Kind)
}
