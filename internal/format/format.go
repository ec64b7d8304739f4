package format

import (
	"strings"
	"time"
)

// FmtDate formats t in a locale-friendly short form. Zero times format as "".
func FmtDate(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	switch strings.ToLower(lang) {
	case "ko":
		return t.Format("2006.01.02")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// ISODate formats t for datetime attributes and structured data.
func ISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// Truncate shortens s to at most max runes, appending an ellipsis when cut.
func Truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	return strings.TrimSpace(string(r[:max])) + "…"
}
