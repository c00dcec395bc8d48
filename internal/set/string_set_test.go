package set

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringSet(t *testing.T) {
	s := NewStringSet("rt-thread", "noneos-sdk", "rt-thread")

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"rt-thread", "noneos-sdk"}, s.ToSlice())
	assert.Equal(t, []string{"noneos-sdk", "rt-thread"}, s.Sorted())

	assert.True(t, s.Contains("noneos-sdk"))
	assert.False(t, s.Contains("noneos"), "membership must be exact")
	assert.True(t, s.ContainsAnyOf("freertos", "rt-thread"))

	s.Remove("rt-thread")
	assert.Equal(t, []string{"noneos-sdk"}, s.ToSlice())

	assert.True(t, NewStringSet("a", "b").Equal(NewStringSet("b", "a")))
	assert.False(t, NewStringSet("a").Equal(NewStringSet("a", "b")))
}
