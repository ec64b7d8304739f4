package cms

import (
	"time"

	"finitefield.org/studio-web/internal/gallery"
)

// Dataset is a complete local copy of the CMS documents. It backs the site when
// no remote CMS is configured or reachable.
type Dataset struct {
	Sections    map[string][]gallery.Record
	About       About
	Clients     []ClientLogo
	SocialLinks []SocialLink
	Portfolio   *PortfolioDownload
}

func (d *Dataset) records(docType string) []gallery.Record {
	if d == nil {
		return []gallery.Record{}
	}
	src := d.Sections[docType]
	out := make([]gallery.Record, len(src))
	copy(out, src)
	return out
}

// DefaultDataset returns the built-in placeholder content. Each call returns a
// fresh copy.
func DefaultDataset() *Dataset {
	return &Dataset{
		Sections: map[string][]gallery.Record{
			DocWork:    fallbackWork(),
			DocBranded: fallbackBranded(),
			DocContent: fallbackContent(),
		},
		About: About{
			Title:    "About",
			Headline: "We make films, images and brands people remember.",
			Body:     "Studio Field is a small creative team working across **video**, **design** and **photography**.\n\nWe plan, shoot and edit in house.",
			Image:    "/static/img/about.jpg",
			Stats: []Stat{
				{Label: "Projects", Value: "120+"},
				{Label: "Clients", Value: "45"},
				{Label: "Years", Value: "8"},
			},
		},
		Clients: []ClientLogo{
			{Name: "Northwind", Logo: "/static/img/clients/northwind.svg"},
			{Name: "Contoso", Logo: "/static/img/clients/contoso.svg"},
			{Name: "Fabrikam", Logo: "/static/img/clients/fabrikam.svg"},
		},
		SocialLinks: []SocialLink{
			{Platform: "youtube", Label: "YouTube", URL: "https://www.youtube.com/@studiofield"},
			{Platform: "instagram", Label: "Instagram", URL: "https://www.instagram.com/studiofield"},
		},
	}
}

func fallbackWork() []gallery.Record {
	return []gallery.Record{
		{
			ID:          "work-spring-campaign",
			DocType:     DocWork,
			Title:       "Spring Campaign Film",
			Tags:        []string{"campaign", "fashion"},
			Category:    "video",
			SubCategory: gallery.NewSet("branded-video"),
			ContentType: gallery.TypeSingleMedia,
			VideoURL:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			Description: "A thirty second spring campaign for a lifestyle label.",
			PublishedAt: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
			Slug:        "spring-campaign-film",
		},
		{
			ID:          "work-cafe-identity",
			DocType:     DocWork,
			Title:       "Cafe Identity",
			Tags:        []string{"identity", "logo"},
			Category:    "design",
			SubCategory: gallery.NewSet("branding", "package"),
			ContentType: gallery.TypeSingleMedia,
			Image:       "/static/img/work/cafe-cover.jpg",
			Images: []string{
				"/static/img/work/cafe-1.jpg",
				"/static/img/work/cafe-2.jpg",
				"/static/img/work/cafe-3.jpg",
			},
			Description: "Brand mark, cups and bags for a neighbourhood cafe.",
			PublishedAt: time.Date(2023, 11, 20, 0, 0, 0, 0, time.UTC),
			Slug:        "cafe-identity",
		},
		{
			ID:          "work-product-shoot",
			DocType:     DocWork,
			Title:       "Ceramics Product Shoot",
			Tags:        []string{"still life"},
			Category:    "photo",
			SubCategory: gallery.NewSet("product"),
			ContentType: gallery.TypeImageGrid,
			Images: []string{
				"/static/img/work/ceramics-1.jpg",
				"/static/img/work/ceramics-2.jpg",
				"/static/img/work/ceramics-3.jpg",
				"/static/img/work/ceramics-4.jpg",
			},
			Description: "Catalogue stills for a ceramics studio.",
			PublishedAt: time.Date(2023, 8, 14, 0, 0, 0, 0, time.UTC),
			Slug:        "ceramics-product-shoot",
		},
	}
}

func fallbackBranded() []gallery.Record {
	return []gallery.Record{
		{
			ID:          "branded-founder-interview",
			DocType:     DocBranded,
			Title:       "Founder Interview",
			Tags:        []string{"interview", "startup"},
			Category:    "video",
			SubCategory: gallery.NewSet("interview", "branded-video"),
			ContentType: gallery.TypeSingleMedia,
			VideoURL:    "https://youtu.be/aqz-KE-bpKQ",
			Description: "A founder talks about building a hardware company.",
			PublishedAt: time.Date(2024, 2, 9, 0, 0, 0, 0, time.UTC),
			Slug:        "founder-interview",
		},
		{
			ID:          "branded-store-opening",
			DocType:     DocBranded,
			Title:       "Store Opening",
			Tags:        []string{"retail"},
			Category:    "photo",
			SubCategory: gallery.NewSet("space"),
			ContentType: gallery.TypeImageSlider,
			Images: []string{
				"/static/img/branded/store-1.jpg",
				"/static/img/branded/store-2.jpg",
				"/static/img/branded/store-3.jpg",
			},
			Description: "Opening day at a flagship store.",
			PublishedAt: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
			Slug:        "store-opening",
		},
	}
}

func fallbackContent() []gallery.Record {
	return []gallery.Record{
		{
			ID:          "content-shorts-series",
			DocType:     DocContent,
			Title:       "Behind the Scenes Shorts",
			Tags:        []string{"shorts", "bts"},
			Category:    "video",
			SubCategory: gallery.NewSet("short-form"),
			ContentType: gallery.TypeMultiVideo,
			VideoURLs:   []string{"https://www.youtube.com/shorts/tPEE9ZwTmy0"},
			Description: "Vertical clips from our shoots.",
			ContentDate: time.Date(2024, 6, 18, 0, 0, 0, 0, time.UTC),
			Slug:        "behind-the-scenes-shorts",
			Role:        gallery.RoleBase,
		},
		{
			ID:          "content-shorts-series",
			DocType:     DocContent,
			ContentType: gallery.TypeMultiVideo,
			VideoURLs:   []string{"https://www.youtube.com/shorts/ZbZSe6N_BXs"},
			Role:        gallery.RoleAttach,
			AttachTo:    "content-shorts-series",
		},
		{
			ID:          "content-youtube-episode",
			DocType:     DocContent,
			Title:       "Studio Talk Episode 1",
			Tags:        []string{"talk", "youtube"},
			Category:    "video",
			SubCategory: gallery.NewSet("youtube"),
			ContentType: gallery.TypeSingleMedia,
			VideoURL:    "https://www.youtube.com/embed/M7lc1UVf-VE",
			Description: "We talk about lighting small spaces.",
			ContentDate: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
			Slug:        "studio-talk-episode-1",
		},
		{
			ID:          "content-editorial-spread",
			DocType:     DocContent,
			Title:       "Editorial Spread",
			Tags:        []string{"magazine", "layout"},
			Category:    "design",
			SubCategory: gallery.NewSet("editorial"),
			ContentType: gallery.TypeImageSlider,
			Images: []string{
				"/static/img/content/editorial-1.jpg",
				"/static/img/content/editorial-2.jpg",
			},
			Description: "Layouts for a quarterly print magazine.",
			ContentDate: time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC),
			Slug:        "editorial-spread",
		},
	}
}
