package sets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetBasics(t *testing.T) {
	s := New("shared", "static")
	require.Equal(t, 2, s.Len())
	require.True(t, s.Has("shared"))
	require.False(t, s.Has("dynamic"))

	s.Add("dynamic")
	require.True(t, s.Has("dynamic"))

	s.Delete("dynamic")
	require.False(t, s.Has("dynamic"))
}

func TestClone(t *testing.T) {
	s := New(1, 2)
	c := s.Clone()
	c.Add(3)
	require.True(t, c.Has(3))
	require.False(t, s.Has(3))
}

func TestSortedStrings(t *testing.T) {
	s := New("windows", "linux", "macos")
	require.Equal(t, []string{"linux", "macos", "windows"}, SortedStrings(s))
}
