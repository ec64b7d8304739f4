package handlers

import (
	"html/template"

	"finitefield.org/studio-web/internal/cms"
	"finitefield.org/studio-web/internal/gallery"
)

// featuredLimit caps the work cards shown on the landing page.
const featuredLimit = 6

// HomeView is the landing page payload.
type HomeView struct {
	Headline string
	Featured []Card
	Clients  []cms.ClientLogo
}

// BuildHomeView picks the featured work and client wall for the landing page.
func BuildHomeView(work []gallery.Item, clients []cms.ClientLogo, about cms.About, lang string) HomeView {
	if len(work) > featuredLimit {
		work = work[:featuredLimit]
	}
	labels := gallery.LabelsFor(lang)
	cards := make([]Card, 0, len(work))
	for _, it := range work {
		cards = append(cards, newCard(cms.DocWork, it, labels, lang))
	}
	return HomeView{
		Headline: about.Headline,
		Featured: cards,
		Clients:  clients,
	}
}

// AboutView is the /about payload with the body already rendered.
type AboutView struct {
	Title    string
	Headline string
	Body     template.HTML
	Image    string
	Stats    []cms.Stat
}

// ContactView drives the inquiry form.
type ContactView struct {
	ProjectTypes []Option
	MaxUploadMB  int64
	Endpoint     string
	Download     string
}

// Option is a select option.
type Option struct {
	Value    string
	LabelKey string
}

// ProjectTypes lists the inquiry categories offered by the form.
var ProjectTypes = []Option{
	{Value: "video", LabelKey: "contact.type.video"},
	{Value: "design", LabelKey: "contact.type.design"},
	{Value: "photo", LabelKey: "contact.type.photo"},
	{Value: "other", LabelKey: "contact.type.other"},
}

// BuildContactView returns the form model for the given upload limit in bytes.
func BuildContactView(maxUpload int64) ContactView {
	mb := maxUpload >> 20
	if mb < 1 {
		mb = 1
	}
	return ContactView{
		ProjectTypes: ProjectTypes,
		MaxUploadMB:  mb,
		Endpoint:     "/api/contact",
		Download:     "/api/portfolio-download",
	}
}
