package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatRecord_SetKeepsFirstSeenOrder(t *testing.T) {
	record := NewFlatRecord()
	record.Set("b", String("1"))
	record.Set("a", String("2"))
	record.Set("c", String("3"))

	assert.Equal(t, []string{"b", "a", "c"}, record.Keys())
	assert.Equal(t, 3, record.Len())
}

func TestFlatRecord_OverwriteKeepsPosition(t *testing.T) {
	record := NewFlatRecord()
	record.Set("x", String("first"))
	record.Set("y", String("other"))
	record.Set("x", String("second"))

	// Overwriting replaces the value but the key stays where it first
	// appeared.
	assert.Equal(t, []string{"x", "y"}, record.Keys())
	assert.Equal(t, 2, record.Len())

	value, ok := record.Get("x")
	require.True(t, ok)
	assert.Equal(t, String("second"), value)
}

func TestFlatRecord_GetMissing(t *testing.T) {
	record := NewFlatRecord()
	record.Set("present", Bool(true))

	_, ok := record.Get("absent")
	assert.False(t, ok)
}

func TestFlatRecord_ScalarValueTypes(t *testing.T) {
	record := NewFlatRecord()
	record.Set("s", String("text"))
	record.Set("n", Number("3.14"))
	record.Set("b", Bool(false))
	record.Set("nil", Null{})

	for _, key := range []string{"s", "n", "b", "nil"} {
		_, ok := record.Get(key)
		assert.True(t, ok, "key %q", key)
	}
}
