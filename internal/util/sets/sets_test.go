package sets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet_Membership(t *testing.T) {
	s := New("image", "formatting")
	s.Add("url")

	require.True(t, s.Has("url"))
	require.True(t, s.HasAll("image", "formatting"))
	require.False(t, s.HasAll("image", "string"))
	require.True(t, s.HasAny("string", "url"))
	require.False(t, s.HasAny())
	require.True(t, s.HasAll())
}

func TestSplit(t *testing.T) {
	s := Split("formatting_formatting-link__formatting-embed", "_")
	require.Equal(t, []string{"formatting", "formatting-embed", "formatting-link"}, Sorted(s))
	require.Empty(t, Split("", "_"))
}
