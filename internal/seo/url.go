package seo

import (
	"net/url"
	"strings"
)

// Absolute resolves p against the site base URL. Already absolute URLs are
// returned unchanged; an unparsable base yields p as given.
func Absolute(base, p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return strings.TrimRight(base, "/") + "/"
	}
	if u, err := url.Parse(p); err == nil && u.IsAbs() {
		return p
	}
	b, err := url.Parse(strings.TrimSpace(base))
	if err != nil || !b.IsAbs() {
		return p
	}
	ref, err := url.Parse(p)
	if err != nil {
		return p
	}
	return b.ResolveReference(ref).String()
}

// Alternate is one hreflang link.
type Alternate struct {
	Href     string
	Hreflang string
}

// Alternates builds hreflang links for each language by setting the hl query
// parameter on the canonical page URL. x-default points at the bare URL.
func Alternates(canonical string, langs []string) []Alternate {
	u, err := url.Parse(canonical)
	if err != nil {
		return nil
	}
	out := make([]Alternate, 0, len(langs)+1)
	for _, lang := range langs {
		cp := *u
		q := cp.Query()
		q.Set("hl", lang)
		cp.RawQuery = q.Encode()
		out = append(out, Alternate{Href: cp.String(), Hreflang: lang})
	}
	out = append(out, Alternate{Href: canonical, Hreflang: "x-default"})
	return out
}
