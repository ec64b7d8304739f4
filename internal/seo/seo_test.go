package seo

import (
	"strings"
	"testing"
)

func TestAbsolute(t *testing.T) {
	cases := []struct {
		base, path, want string
	}{
		{"https://studio.example", "/work", "https://studio.example/work"},
		{"https://studio.example/", "work/a", "https://studio.example/work/a"},
		{"https://studio.example", "https://cdn.example/a.jpg", "https://cdn.example/a.jpg"},
		{"https://studio.example", "", "https://studio.example/"},
		{"not a url", "/work", "/work"},
	}
	for _, tc := range cases {
		if got := Absolute(tc.base, tc.path); got != tc.want {
			t.Fatalf("Absolute(%q, %q) = %q, want %q", tc.base, tc.path, got, tc.want)
		}
	}
}

func TestAlternates(t *testing.T) {
	alts := Alternates("https://studio.example/work?sub=branding", []string{"ko", "en"})
	if len(alts) != 3 {
		t.Fatalf("expected 3 alternates, got %d", len(alts))
	}
	if alts[1].Hreflang != "en" || !strings.Contains(alts[1].Href, "hl=en") || !strings.Contains(alts[1].Href, "sub=branding") {
		t.Fatalf("unexpected alternate %+v", alts[1])
	}
	if alts[2].Hreflang != "x-default" {
		t.Fatalf("expected x-default last, got %+v", alts[2])
	}
}

func TestVideoObject(t *testing.T) {
	w := Work{Name: "Launch", Image: "/cover.jpg", Date: "2024-03-01", Creator: "Studio"}
	got := JSON(VideoObject(w, "https://www.youtube.com/embed/abc", ""))
	for _, want := range []string{`"@type":"VideoObject"`, `"embedUrl":"https://www.youtube.com/embed/abc"`, `"thumbnailUrl":"/cover.jpg"`, `"uploadDate":"2024-03-01"`} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %s in %s", want, got)
		}
	}
	cw := JSON(CreativeWork(Work{Name: "Identity", Keywords: []string{"logo"}}))
	if !strings.Contains(cw, `"@type":"CreativeWork"`) || !strings.Contains(cw, `"keywords":["logo"]`) {
		t.Fatalf("unexpected creative work %s", cw)
	}
}
