package images_test

import (
	"regexp"
	"testing"

	"blogfront/internal/config"
	"blogfront/internal/images"

	"github.com/stretchr/testify/require"
)

const placeholder = "/assets/placeholder.svg"

func TestFilter_Resolve(t *testing.T) {
	f, err := images.NewFilterFromConfig(placeholder, config.DefaultBlockedImageSubstrings, []string{`(?i)/icons?/play`})
	require.NoError(t, err)

	testCases := []struct {
		name            string
		url             string
		wantSrc         string
		wantPlaceholder bool
	}{
		{name: "valid", url: "https://cdn.example.com/photo.jpg", wantSrc: "https://cdn.example.com/photo.jpg"},
		{name: "trimmed", url: "  https://cdn.example.com/a.png ", wantSrc: "https://cdn.example.com/a.png"},
		{name: "empty", url: "", wantSrc: placeholder, wantPlaceholder: true},
		{name: "blank", url: "   ", wantSrc: placeholder, wantPlaceholder: true},
		{name: "play icon", url: "https://blog.example.com/img/play_button.png", wantSrc: placeholder, wantPlaceholder: true},
		{name: "play icon upper", url: "https://blog.example.com/IMG/PLAY_BUTTON.PNG", wantSrc: placeholder, wantPlaceholder: true},
		{name: "default thumb", url: "https://example.com/default_thumb.jpg", wantSrc: placeholder, wantPlaceholder: true},
		{name: "pattern", url: "https://example.com/Icon/Play.svg", wantSrc: placeholder, wantPlaceholder: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			src, isPlaceholder := f.Resolve(tc.url)
			require.Equal(t, tc.wantSrc, src)
			require.Equal(t, tc.wantPlaceholder, isPlaceholder)
			require.Equal(t, !tc.wantPlaceholder, f.Valid(tc.url))
		})
	}
}

func TestFilter_CustomPredicates(t *testing.T) {
	onlyHTTPS := func(url string) bool { return len(url) < 8 || url[:8] != "https://" }
	f := images.NewFilter(placeholder, onlyHTTPS, images.Matches(regexp.MustCompile(`\.gif$`)))

	require.True(t, f.Valid("https://example.com/a.png"))
	require.False(t, f.Valid("http://example.com/a.png"))
	require.False(t, f.Valid("https://example.com/a.gif"))
	require.False(t, f.Valid(""))
	require.Equal(t, placeholder, f.Placeholder())
}

func TestNewFilterFromConfig_BadPattern(t *testing.T) {
	_, err := images.NewFilterFromConfig(placeholder, nil, []string{"("})
	require.Error(t, err)
}

func TestContains_IgnoresEmptySubstrings(t *testing.T) {
	f := images.NewFilter(placeholder, images.Contains("", "  "))
	require.True(t, f.Valid("https://example.com/a.png"))
}
