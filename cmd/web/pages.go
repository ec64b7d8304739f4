package main

import (
	"errors"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"finitefield.org/studio-web/internal/cms"
	handlersPkg "finitefield.org/studio-web/internal/handlers"
	mw "finitefield.org/studio-web/internal/middleware"
	"finitefield.org/studio-web/internal/nav"
	"finitefield.org/studio-web/internal/observability"
	"finitefield.org/studio-web/internal/richtext"
	"finitefield.org/studio-web/internal/seo"
)

const descriptionLimit = 160

// basePage fills the layout fields shared by every page.
func (a *app) basePage(r *http.Request, title, description string) handlersPkg.PageData {
	lang := mw.Lang(r)
	links, err := a.cms.SocialLinks(r.Context(), lang)
	if err != nil {
		observability.FromContext(r.Context()).Warn("social links", zap.Error(err))
	}

	vm := handlersPkg.PageData{
		Title:       title,
		Lang:        lang,
		Path:        r.URL.Path,
		Nav:         nav.Build(r.URL.Path),
		Breadcrumbs: nav.Breadcrumbs(r.URL.Path),
		Analytics:   handlersPkg.AnalyticsFromConfig(a.cfg),
		CSRFToken:   mw.CSRFToken(r),
		SiteName:    a.cfg.Site.Name,
		SocialLinks: links,
	}

	brand := a.cfg.Site.Name
	vm.SEO.Title = brand
	if title != "" {
		vm.SEO.Title = title + " | " + brand
	}
	vm.SEO.Description = description
	vm.SEO.Canonical = seo.Absolute(a.cfg.Site.URL, r.URL.Path)
	vm.SEO.OG.URL = vm.SEO.Canonical
	vm.SEO.OG.SiteName = brand
	vm.SEO.OG.Title = vm.SEO.Title
	vm.SEO.OG.Description = description
	vm.SEO.OG.Type = "website"
	vm.SEO.Twitter.Card = "summary_large_image"
	for _, alt := range seo.Alternates(vm.SEO.Canonical, a.bundle.Supported()) {
		vm.SEO.Alternates = append(vm.SEO.Alternates, struct{ Href, Hreflang string }{alt.Href, alt.Hreflang})
	}
	return vm
}

func (a *app) t(r *http.Request, key string) string {
	return a.bundle.T(mw.Lang(r), key)
}

func (a *app) home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := mw.Lang(r)
	logger := observability.FromContext(ctx)

	work, err := a.cms.Gallery(ctx, cms.DocWork, lang)
	if err != nil {
		logger.Error("home work", zap.Error(err))
		a.renderError(w, r, http.StatusInternalServerError)
		return
	}
	clients, err := a.cms.Clients(ctx, lang)
	if err != nil {
		logger.Warn("home clients", zap.Error(err))
	}
	about, err := a.cms.About(ctx, lang)
	if err != nil && !errors.Is(err, cms.ErrNotFound) {
		logger.Warn("home about", zap.Error(err))
	}

	vm := a.basePage(r, a.t(r, "page.home.title"), a.t(r, "page.home.description"))
	home := handlersPkg.BuildHomeView(work, clients, about, lang)
	vm.Home = &home
	if len(home.Featured) > 0 && home.Featured[0].Thumbnail != "" {
		vm.SEO.OG.Image = seo.Absolute(a.cfg.Site.URL, home.Featured[0].Thumbnail)
		vm.SEO.Twitter.Image = vm.SEO.OG.Image
	}

	sameAs := make([]string, 0, len(vm.SocialLinks))
	for _, l := range vm.SocialLinks {
		sameAs = append(sameAs, l.URL)
	}
	vm.SEO.JSONLD = append(vm.SEO.JSONLD,
		seo.JSON(seo.Organization(a.cfg.Site.Name, a.cfg.Site.URL, "", sameAs...)),
		seo.JSON(seo.WebSite(a.cfg.Site.Name, a.cfg.Site.URL, seo.Absolute(a.cfg.Site.URL, "/work?q="))),
	)
	a.render.page(w, r, http.StatusOK, "home", vm)
}

func (a *app) about(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := mw.Lang(r)
	about, err := a.cms.About(ctx, lang)
	if errors.Is(err, cms.ErrNotFound) {
		a.renderError(w, r, http.StatusNotFound)
		return
	}
	if err != nil {
		observability.FromContext(ctx).Error("about", zap.Error(err))
		a.renderError(w, r, http.StatusInternalServerError)
		return
	}

	body, err := richtext.Markdown(about.Body)
	if err != nil {
		observability.FromContext(ctx).Warn("about markdown", zap.Error(err))
		body = template.HTML(template.HTMLEscapeString(about.Body))
	}
	title := about.Title
	if title == "" {
		title = a.t(r, "page.about.title")
	}
	description := richtext.Excerpt(about.Body, descriptionLimit)
	if description == "" {
		description = a.t(r, "page.about.description")
	}

	vm := a.basePage(r, title, description)
	vm.About = &handlersPkg.AboutView{
		Title:    title,
		Headline: about.Headline,
		Body:     body,
		Image:    about.Image,
		Stats:    about.Stats,
	}
	if about.Image != "" {
		vm.SEO.OG.Image = seo.Absolute(a.cfg.Site.URL, about.Image)
	}
	a.render.page(w, r, http.StatusOK, "about", vm)
}

func (a *app) contactPage(w http.ResponseWriter, r *http.Request) {
	vm := a.basePage(r, a.t(r, "page.contact.title"), a.t(r, "page.contact.description"))
	view := handlersPkg.BuildContactView(a.cfg.Contact.MaxUpload)
	vm.Contact = &view
	a.render.page(w, r, http.StatusOK, "contact", vm)
}

// renderError answers with the error page, or plain text for htmx swaps.
func (a *app) renderError(w http.ResponseWriter, r *http.Request, status int) {
	key := "error.server"
	if status == http.StatusNotFound {
		key = "error.not_found"
	}
	if mw.IsHTMX(r.Context()) {
		http.Error(w, a.t(r, key), status)
		return
	}
	vm := a.basePage(r, a.t(r, key), "")
	vm.SEO.Robots = "noindex"
	vm.Breadcrumbs = nil
	a.render.page(w, r, status, "error", vm)
}
