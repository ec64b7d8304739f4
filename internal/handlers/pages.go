package handlers

import (
	"finitefield.org/studio-web/internal/cms"
	"finitefield.org/studio-web/internal/nav"
)

// PageData is the view model every page passes to the shared layout.
type PageData struct {
	Title     string
	Lang      string
	SEO       SEOData
	Analytics Analytics

	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	CSRFToken   string

	SiteName    string
	SocialLinks []cms.SocialLink

	// Optional per-page view model payloads
	Home    *HomeView
	Gallery *GalleryView
	Detail  *DetailView
	About   *AboutView
	Contact *ContactView
}

// SEOData carries the head metadata of one page.
type SEOData struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          struct {
		Title       string
		Description string
		Image       string
		Type        string
		URL         string
		SiteName    string
	}
	Twitter struct {
		Card  string
		Site  string
		Image string
	}
	Alternates []struct{ Href, Hreflang string }
	JSONLD     []string
}
