package youtube

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestEmbedURLForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "short link", in: "https://youtu.be/abc123", want: "https://www.youtube.com/embed/abc123"},
		{name: "watch", in: "https://www.youtube.com/watch?v=abc123", want: "https://www.youtube.com/embed/abc123"},
		{name: "watch with extra params", in: "https://www.youtube.com/watch?feature=share&v=abc123&t=4", want: "https://www.youtube.com/embed/abc123"},
		{name: "mobile watch", in: "https://m.youtube.com/watch?v=abc123", want: "https://www.youtube.com/embed/abc123"},
		{name: "shorts", in: "https://www.youtube.com/shorts/abc123", want: "https://www.youtube.com/embed/abc123"},
		{name: "mobile shorts", in: "https://m.youtube.com/shorts/abc123", want: "https://www.youtube.com/embed/abc123"},
		{name: "embed passthrough", in: "https://www.youtube.com/embed/abc123?autoplay=1", want: "https://www.youtube.com/embed/abc123?autoplay=1"},
		{name: "not a url", in: "not a url", want: ""},
		{name: "empty", in: "   ", want: ""},
		{name: "other host", in: "https://vimeo.com/12345", want: ""},
		{name: "lookalike host", in: "https://notyoutube.com/watch?v=abc123", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, EmbedURL(tc.in))
		})
	}
}

func TestExtractIDFromEmbed(t *testing.T) {
	t.Parallel()
	require.Equal(t, "abc123", ExtractID("https://www.youtube.com/embed/abc123"))
	require.Equal(t, "x-Y_9", ExtractID("youtu.be/x-Y_9?si=tracking"))
}

func TestIsShorts(t *testing.T) {
	t.Parallel()

	shorts := []string{
		"https://www.youtube.com/shorts/abc123",
		"https://m.youtube.com/shorts/abc123",
	}
	notShorts := []string{
		"https://youtu.be/abc123",
		"https://www.youtube.com/watch?v=abc123",
		"https://www.youtube.com/watch?v=abc123&list=/shorts/",
		"not a url",
		"",
	}
	for _, in := range shorts {
		require.True(t, IsShorts(in), in)
	}
	for _, in := range notShorts {
		require.False(t, IsShorts(in), in)
	}
}

func TestThumbnailURL(t *testing.T) {
	t.Parallel()
	require.Equal(t, "https://img.youtube.com/vi/abc123/maxresdefault.jpg", ThumbnailURL("abc123"))
	require.Empty(t, ThumbnailURL(""))
}

func TestResolve(t *testing.T) {
	t.Parallel()

	r := NewResolver(nil)
	v, ok := r.Resolve("https://m.youtube.com/shorts/abc123")
	require.True(t, ok)
	require.Equal(t, Video{
		ID:           "abc123",
		EmbedURL:     "https://www.youtube.com/embed/abc123",
		ThumbnailURL: "https://img.youtube.com/vi/abc123/maxresdefault.jpg",
		Shorts:       true,
	}, v)

	_, ok = r.Resolve("https://example.com/video.mp4")
	require.False(t, ok)
}

func TestExtractFailureLogsWarning(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.WarnLevel)
	r := NewResolver(zap.New(core))

	require.Empty(t, r.ExtractID("https://example.com/clip"))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	require.Equal(t, "https://example.com/clip", entry.ContextMap()["url"])
}
