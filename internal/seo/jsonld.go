package seo

import (
	"encoding/json"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Organization returns a minimal Organization schema. sameAs lists the
// studio's social profiles.
func Organization(name, url, logoURL string, sameAs ...string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	if len(sameAs) > 0 {
		m["sameAs"] = sameAs
	}
	return m
}

// WebSite returns a minimal WebSite schema with optional SearchAction.
func WebSite(name, url, searchActionURL string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if searchActionURL != "" {
		m["potentialAction"] = map[string]any{
			"@type":       "SearchAction",
			"target":      searchActionURL + "{search_term_string}",
			"query-input": "required name=search_term_string",
		}
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// Work describes a portfolio entry for structured data.
type Work struct {
	Name        string
	Description string
	URL         string
	Image       string
	Date        string // YYYY-MM-DD
	Genre       string
	Keywords    []string
	Creator     string
}

// CreativeWork returns a CreativeWork schema payload for a portfolio page.
func CreativeWork(w Work) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "CreativeWork",
		"name":     w.Name,
	}
	w.fill(m)
	return m
}

// VideoObject returns a VideoObject schema payload. embedURL is the player URL;
// thumbnailURL is required by consumers so the work image is used when empty.
func VideoObject(w Work, embedURL, thumbnailURL string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "VideoObject",
		"name":     w.Name,
	}
	w.fill(m)
	if embedURL != "" {
		m["embedUrl"] = embedURL
	}
	if thumbnailURL == "" {
		thumbnailURL = w.Image
	}
	if thumbnailURL != "" {
		m["thumbnailUrl"] = thumbnailURL
	}
	if w.Date != "" {
		m["uploadDate"] = w.Date
	}
	return m
}

func (w Work) fill(m map[string]any) {
	if w.Description != "" {
		m["description"] = w.Description
	}
	if w.URL != "" {
		m["url"] = w.URL
	}
	if w.Image != "" {
		m["image"] = w.Image
	}
	if w.Date != "" {
		m["datePublished"] = w.Date
	}
	if w.Genre != "" {
		m["genre"] = w.Genre
	}
	if len(w.Keywords) > 0 {
		m["keywords"] = w.Keywords
	}
	if w.Creator != "" {
		m["creator"] = map[string]any{"@type": "Organization", "name": w.Creator}
	}
}
