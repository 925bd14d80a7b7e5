package urlutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://a.example/rss", "https://a.example/rss"},
		{"  https://a.example/rss  ", "https://a.example/rss"},
		{"https://a.example/rss#section", "https://a.example/rss"},
		{"https://a.example/rss?x=1#frag", "https://a.example/rss?x=1"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, Normalize(tt.input), "input %q", tt.input)
	}
}

func TestIsHTTP(t *testing.T) {
	require.True(t, IsHTTP("https://a.example/rss"))
	require.True(t, IsHTTP("http://a.example/rss"))
	require.False(t, IsHTTP("ftp://a.example/rss"))
	require.False(t, IsHTTP("not a url at all ::"))
	require.False(t, IsHTTP(""))
}
