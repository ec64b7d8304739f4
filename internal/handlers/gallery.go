package handlers

import (
	"net/url"
	"time"

	"finitefield.org/studio-web/internal/format"
	"finitefield.org/studio-web/internal/gallery"
	"finitefield.org/studio-web/internal/youtube"
)

// Card is one tile of a gallery grid.
type Card struct {
	ID            string
	Title         string
	Thumbnail     string
	CategoryLabel string
	SubLabels     []string
	Date          string
	DateISO       string
	Video         bool
	Shorts        bool

	// Href is the standalone detail page; OverlayURL loads the overlay fragment.
	Href       string
	OverlayURL string
}

// Chip is a sub-category filter toggle.
type Chip struct {
	Value  string
	Label  string
	Active bool
	Href   string
	HXGet  string
}

// GalleryView is the payload of the work, branded and content pages.
type GalleryView struct {
	Section  string
	Keyword  string
	Selected []string
	Chips    []Chip
	ResetURL string
	ResetHX  string
	Cards    []Card
	Total    int
	Empty    bool
	Action   string
	GridURL  string
	Detail   *DetailView
}

// DetailView is the overlay or standalone page for one item.
type DetailView struct {
	Section   string
	ID        string
	Title     string
	Date      string
	DateISO   string
	Permalink string
	CloseHref string
	Media     *gallery.View
	Related   []RelatedCard
	// ReopenDelayMs is how long the overlay stays closed before a related item opens.
	ReopenDelayMs int
}

// RelatedCard links to a related item from the detail view.
type RelatedCard struct {
	ID         string
	Title      string
	Thumbnail  string
	Date       string
	DateISO    string
	Href       string
	OverlayURL string
}

// BuildGalleryView derives the list view, filter chips and, when an item is
// selected, the detail overlay from state.
func BuildGalleryView(section string, items []gallery.Item, state gallery.State, d gallery.Dispatcher, lang string) GalleryView {
	labels := d.Labels
	base := "/" + section
	view := GalleryView{
		Section:  section,
		Keyword:  state.Keyword,
		Selected: append([]string(nil), state.Selected...),
		ResetURL: pageURL(base, state.ClearFilter().CloseDetail().Query()),
		ResetHX:  pageURL(base+"/grid", state.ClearFilter().CloseDetail().Query()),
		Action:   base,
		GridURL:  base + "/grid",
	}

	for _, v := range gallery.SubCategories(items) {
		next := state.ToggleSubCategory(v).CloseDetail().Query()
		view.Chips = append(view.Chips, Chip{
			Value:  v,
			Label:  labels.SubCategory(v),
			Active: state.Selected.Has(v),
			Href:   pageURL(base, next),
			HXGet:  pageURL(base+"/grid", next),
		})
	}

	visible := state.Visible(items)
	view.Total = len(visible)
	view.Empty = len(visible) == 0
	view.Cards = make([]Card, 0, len(visible))
	for _, it := range visible {
		view.Cards = append(view.Cards, newCard(section, it, labels, lang))
	}

	if it, related, ok := state.Detail(items); ok {
		dv := BuildDetailView(section, it, related, d, lang)
		dv.CloseHref = pageURL(base, state.CloseDetail().Query())
		view.Detail = &dv
	}
	return view
}

// BuildDetailView dispatches it to its media template and projects the related
// refs into cards. Media is nil for content types without a template.
func BuildDetailView(section string, it gallery.Item, related []gallery.RelatedRef, d gallery.Dispatcher, lang string) DetailView {
	base := "/" + section
	dv := DetailView{
		Section:       section,
		ID:            it.ID,
		Title:         it.Title,
		Date:          format.FmtDate(it.Date(), lang),
		DateISO:       format.ISODate(it.Date()),
		Permalink:     itemHref(base, it.Slug, it.ID),
		CloseHref:     base,
		ReopenDelayMs: int(gallery.ReopenDelay / time.Millisecond),
	}
	if v, ok := d.Dispatch(it); ok {
		dv.Media = &v
	}
	dv.Related = make([]RelatedCard, 0, len(related))
	for _, ref := range related {
		dv.Related = append(dv.Related, RelatedCard{
			ID:         ref.ID,
			Title:      ref.Title,
			Thumbnail:  ref.Thumbnail,
			Date:       format.FmtDate(ref.Date, lang),
			DateISO:    format.ISODate(ref.Date),
			Href:       itemHref(base, ref.Slug, ref.ID),
			OverlayURL: overlayURL(base, ref.ID),
		})
	}
	return dv
}

func newCard(section string, it gallery.Item, labels gallery.Labels, lang string) Card {
	base := "/" + section
	primary := it.PrimaryVideo()
	return Card{
		ID:            it.ID,
		Title:         it.Title,
		Thumbnail:     it.Thumbnail(),
		CategoryLabel: labels.Category(it.Category),
		SubLabels:     labels.SubCategoryList(it.SubCategory),
		Date:          format.FmtDate(it.Date(), lang),
		DateISO:       format.ISODate(it.Date()),
		Video:         youtube.ExtractID(primary) != "",
		Shorts:        youtube.IsShorts(primary),
		Href:          itemHref(base, it.Slug, it.ID),
		OverlayURL:    overlayURL(base, it.ID),
	}
}

func itemHref(base, slug, id string) string {
	if slug != "" {
		return base + "/" + url.PathEscape(slug)
	}
	return base + "/" + url.PathEscape(id)
}

func overlayURL(base, id string) string {
	return base + "/items/" + url.PathEscape(id)
}

func pageURL(path string, q url.Values) string {
	if enc := q.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}
