// Package youtube turns the YouTube links editors paste into the CMS into
// canonical video ids, embed URLs, and thumbnails.
package youtube

import (
	"net/url"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

const (
	embedBase     = "https://www.youtube.com/embed/"
	thumbnailBase = "https://img.youtube.com/vi/"
	thumbnailFile = "/maxresdefault.jpg"
)

var (
	embedPattern  = regexp.MustCompile(`(?i)(?:^|[/.])youtube(?:-nocookie)?\.com/embed/([A-Za-z0-9_-]+)`)
	watchPattern  = regexp.MustCompile(`(?i)(?:^|[/.])youtube\.com/watch\?(?:[^#]*&)?v=([A-Za-z0-9_-]+)`)
	shortPattern  = regexp.MustCompile(`(?i)(?:^|[/.])youtu\.be/([A-Za-z0-9_-]+)`)
	shortsPattern = regexp.MustCompile(`(?i)(?:^|[/.])youtube\.com/shorts/([A-Za-z0-9_-]+)`)
)

// Video is the resolved form of a single YouTube link.
type Video struct {
	ID           string
	EmbedURL     string
	ThumbnailURL string
	Shorts       bool
}

// Resolver parses YouTube URLs. The zero value is usable and logs nothing.
type Resolver struct {
	logger *zap.Logger
}

// NewResolver returns a Resolver that reports unparseable links on logger.
func NewResolver(logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{logger: logger.Named("youtube")}
}

var defaultResolver = &Resolver{}

// ExtractID returns the video id for any supported link form, or "" when the
// input is not a recognizable YouTube URL.
func (r *Resolver) ExtractID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	// order matters: an embed URL may itself carry a watch-style query string
	for _, pattern := range []*regexp.Regexp{embedPattern, watchPattern, shortPattern, shortsPattern} {
		if m := pattern.FindStringSubmatch(raw); len(m) == 2 {
			return m[1]
		}
	}
	r.warn("youtube: could not extract video id", raw)
	return ""
}

// EmbedURL returns the iframe URL for raw. Links that are already embed URLs are
// returned unchanged; unresolvable input yields "".
func (r *Resolver) EmbedURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if embedPattern.MatchString(raw) {
		return raw
	}
	id := r.ExtractID(raw)
	if id == "" {
		return ""
	}
	return embedBase + id
}

// Resolve bundles id, embed URL, thumbnail and shorts detection. ok is false
// when raw has no playable media.
func (r *Resolver) Resolve(raw string) (Video, bool) {
	id := r.ExtractID(raw)
	if id == "" {
		return Video{}, false
	}
	return Video{
		ID:           id,
		EmbedURL:     r.EmbedURL(raw),
		ThumbnailURL: ThumbnailURL(id),
		Shorts:       IsShorts(raw),
	}, true
}

func (r *Resolver) warn(msg, raw string) {
	if r == nil || r.logger == nil {
		return
	}
	r.logger.Warn(msg, zap.String("url", raw))
}

// ThumbnailURL returns the max resolution still for a video id.
func ThumbnailURL(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	return thumbnailBase + id + thumbnailFile
}

// IsShorts reports whether the link points at a /shorts/ path.
func IsShorts(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		return strings.Contains(u.Path, "/shorts/")
	}
	// scheme-less input such as "youtube.com/shorts/abc"
	path := raw
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return strings.Contains(path, "/shorts/")
}

// ExtractID resolves raw with a resolver that does not log.
func ExtractID(raw string) string { return defaultResolver.ExtractID(raw) }

// EmbedURL resolves raw with a resolver that does not log.
func EmbedURL(raw string) string { return defaultResolver.EmbedURL(raw) }
