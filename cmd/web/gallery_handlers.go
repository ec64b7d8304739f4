package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"finitefield.org/studio-web/internal/format"
	"finitefield.org/studio-web/internal/gallery"
	handlersPkg "finitefield.org/studio-web/internal/handlers"
	mw "finitefield.org/studio-web/internal/middleware"
	"finitefield.org/studio-web/internal/nav"
	"finitefield.org/studio-web/internal/observability"
	"finitefield.org/studio-web/internal/richtext"
	"finitefield.org/studio-web/internal/seo"
)

// galleryItems loads the normalized items of section; ok is false once an
// error response has been written.
func (a *app) galleryItems(w http.ResponseWriter, r *http.Request, section string) ([]gallery.Item, bool) {
	items, err := a.cms.Gallery(r.Context(), section, mw.Lang(r))
	if err != nil {
		observability.FromContext(r.Context()).Error("load gallery", zap.String("section", section), zap.Error(err))
		a.renderError(w, r, http.StatusInternalServerError)
		return nil, false
	}
	return items, true
}

// galleryPage renders a full gallery page. The overlay is rendered server side
// when the query selects an item.
func (a *app) galleryPage(section string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, ok := a.galleryItems(w, r, section)
		if !ok {
			return
		}
		lang := mw.Lang(r)
		state := gallery.StateFromQuery(r.URL.Query())
		view := handlersPkg.BuildGalleryView(section, items, state, a.dispatcher(lang), lang)

		vm := a.basePage(r, a.t(r, "page."+section+".title"), a.t(r, "page."+section+".description"))
		vm.Gallery = &view
		vm.Detail = view.Detail
		if state.Filtering() || state.SelectedID != "" {
			vm.SEO.Robots = "noindex, follow"
		}
		a.render.page(w, r, http.StatusOK, "gallery", vm)
	}
}

// galleryGrid renders the filtered grid fragment and pushes the page URL.
func (a *app) galleryGrid(section string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, ok := a.galleryItems(w, r, section)
		if !ok {
			return
		}
		lang := mw.Lang(r)
		state := gallery.StateFromQuery(r.URL.Query()).CloseDetail()
		view := handlersPkg.BuildGalleryView(section, items, state, a.dispatcher(lang), lang)

		push := "/" + section
		if q := state.Query().Encode(); q != "" {
			push += "?" + q
		}
		mw.PushURL(w, push)
		a.render.fragment(w, r, http.StatusOK, "frag_gallery_grid", handlersPkg.PageData{Lang: lang, Gallery: &view})
	}
}

// galleryOverlay renders the detail overlay for one item id.
func (a *app) galleryOverlay(section string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, ok := a.galleryItems(w, r, section)
		if !ok {
			return
		}
		lang := mw.Lang(r)
		state := gallery.StateFromQuery(r.URL.Query()).SelectItem(chi.URLParam(r, "id"))
		it, related, found := state.Detail(items)
		if !found {
			http.Error(w, a.t(r, "error.not_found"), http.StatusNotFound)
			return
		}
		dv := handlersPkg.BuildDetailView(section, it, related, a.dispatcher(lang), lang)
		dv.CloseHref = "/" + section
		if q := state.CloseDetail().Query().Encode(); q != "" {
			dv.CloseHref += "?" + q
		}
		mw.PushURL(w, "/"+section+"?"+state.Query().Encode())
		a.render.fragment(w, r, http.StatusOK, "frag_gallery_overlay", handlersPkg.PageData{Lang: lang, Detail: &dv})
	}
}

// galleryDetail renders the standalone page of an item addressed by slug or id.
func (a *app) galleryDetail(section string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, ok := a.galleryItems(w, r, section)
		if !ok {
			return
		}
		it, found := gallery.FindBySlug(items, chi.URLParam(r, "slug"))
		if !found {
			a.renderError(w, r, http.StatusNotFound)
			return
		}
		lang := mw.Lang(r)
		dv := handlersPkg.BuildDetailView(section, it, gallery.Related(it, items), a.dispatcher(lang), lang)

		description := richtext.Excerpt(it.Description, descriptionLimit)
		if description == "" {
			description = a.t(r, "page."+section+".description")
		}
		vm := a.basePage(r, it.Title, description)
		vm.Detail = &dv
		vm.Breadcrumbs = nav.Breadcrumbs(r.URL.Path, it.Title)

		image := ""
		if thumb := it.Thumbnail(); thumb != "" {
			image = seo.Absolute(a.cfg.Site.URL, thumb)
		}
		vm.SEO.OG.Image = image
		vm.SEO.Twitter.Image = image
		vm.SEO.OG.Type = "article"

		work := seo.Work{
			Name:        it.Title,
			Description: description,
			URL:         vm.SEO.Canonical,
			Image:       image,
			Date:        format.ISODate(it.Date()),
			Genre:       a.dispatcher(lang).Labels.Category(it.Category),
			Keywords:    it.Tags,
			Creator:     a.cfg.Site.Name,
		}
		if v, ok := a.resolver.Resolve(it.PrimaryVideo()); ok {
			vm.SEO.OG.Type = "video.other"
			vm.SEO.JSONLD = append(vm.SEO.JSONLD, seo.JSON(seo.VideoObject(work, v.EmbedURL, v.ThumbnailURL)))
		} else {
			vm.SEO.JSONLD = append(vm.SEO.JSONLD, seo.JSON(seo.CreativeWork(work)))
		}

		crumbs := make([]seo.BreadcrumbItem, 0, len(vm.Breadcrumbs))
		for _, c := range vm.Breadcrumbs {
			name := c.Label
			if c.LabelKey != "" {
				name = a.bundle.T(lang, c.LabelKey)
			}
			crumbs = append(crumbs, seo.BreadcrumbItem{Name: name, Item: seo.Absolute(a.cfg.Site.URL, c.Href)})
		}
		vm.SEO.JSONLD = append(vm.SEO.JSONLD, seo.JSON(seo.BreadcrumbList(crumbs)))

		a.render.page(w, r, http.StatusOK, "detail", vm)
	}
}
