package format

import (
	"testing"
	"time"
)

func TestFmtDate(t *testing.T) {
	d := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		lang string
		want string
	}{
		{"ko", "2024.03.05"},
		{"KO", "2024.03.05"},
		{"en", "Mar 5, 2024"},
		{"", "Mar 5, 2024"},
	}
	for _, tc := range cases {
		if got := FmtDate(d, tc.lang); got != tc.want {
			t.Fatalf("FmtDate(%q) = %q, want %q", tc.lang, got, tc.want)
		}
	}
	if got := FmtDate(time.Time{}, "en"); got != "" {
		t.Fatalf("expected empty string for zero time, got %q", got)
	}
	if got := ISODate(d); got != "2024-03-05" {
		t.Fatalf("ISODate = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("짧은 글", 10); got != "짧은 글" {
		t.Fatalf("unexpected %q", got)
	}
	if got := Truncate("abcdef", 3); got != "abc…" {
		t.Fatalf("unexpected %q", got)
	}
}
