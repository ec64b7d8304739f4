package gallery

import (
	"time"

	"finitefield.org/studio-web/internal/youtube"
)

// Template names the partial that renders an item's media block.
type Template string

const (
	TemplateSingleMedia Template = "tpl_single_media"
	TemplateMultiVideo  Template = "tpl_multi_video"
	TemplateImageSlider Template = "tpl_image_slider"
	TemplateImageGrid   Template = "tpl_image_grid"
)

const (
	maxSingleMediaTiles = 6
	maxGridImages       = 4
)

// View is the template choice plus the props that template reads.
// Exactly one of the type-specific fields is set.
type View struct {
	Template Template
	Common   Common

	Single   *SingleMedia
	Carousel *Carousel
	Slider   *Slider
	Grid     *Grid
}

// Common carries the fields every template shows.
type Common struct {
	ID                string
	Slug              string
	Title             string
	Category          string
	CategoryLabel     string
	SubCategoryLabels []string
	Tags              []string
	Description       string
	Date              time.Time
}

// SingleMedia shows one 16:9 video, or up to six 4:3 image tiles when no
// video resolves.
type SingleMedia struct {
	Video      *youtube.Video
	Aspect     string
	Images     []string
	TileAspect string
}

// Carousel shows vertical (9:16) videos; controls appear with more than one.
type Carousel struct {
	Videos   []youtube.Video
	Aspect   string
	Controls bool
}

// Slider shows every image in order.
type Slider struct {
	Images []string
}

// Grid shows at most four images in two columns.
type Grid struct {
	Images  []string
	Columns int
}

// Dispatcher maps items to template views.
type Dispatcher struct {
	Resolver *youtube.Resolver
	Labels   Labels
}

// NewDispatcher builds a dispatcher for the given resolver and label table.
func NewDispatcher(resolver *youtube.Resolver, labels Labels) Dispatcher {
	if resolver == nil {
		resolver = &youtube.Resolver{}
	}
	return Dispatcher{Resolver: resolver, Labels: labels}
}

// Dispatch selects the template for it. ok is false for content types that have
// no template; callers render nothing in that case.
func (d Dispatcher) Dispatch(it Item) (View, bool) {
	resolver := d.Resolver
	if resolver == nil {
		resolver = &youtube.Resolver{}
	}
	view := View{Common: d.common(it)}

	switch it.ContentType {
	case TypeSingleMedia:
		view.Template = TemplateSingleMedia
		single := &SingleMedia{Aspect: "16:9", TileAspect: "4:3"}
		if v, ok := resolver.Resolve(it.PrimaryVideo()); ok {
			single.Video = &v
		} else {
			single.Images = capImages(it.AllImages(), maxSingleMediaTiles)
		}
		view.Single = single
	case TypeMultiVideo:
		view.Template = TemplateMultiVideo
		videos := make([]youtube.Video, 0, len(it.VideoURLs)+1)
		for _, raw := range videoList(it) {
			if v, ok := resolver.Resolve(raw); ok {
				videos = append(videos, v)
			}
		}
		view.Carousel = &Carousel{Videos: videos, Aspect: "9:16", Controls: len(videos) > 1}
	case TypeImageSlider:
		view.Template = TemplateImageSlider
		view.Slider = &Slider{Images: it.AllImages()}
	case TypeImageGrid:
		view.Template = TemplateImageGrid
		view.Grid = &Grid{Images: capImages(it.AllImages(), maxGridImages), Columns: 2}
	default:
		return View{}, false
	}
	return view, true
}

func (d Dispatcher) common(it Item) Common {
	return Common{
		ID:                it.ID,
		Slug:              it.Slug,
		Title:             it.Title,
		Category:          it.Category,
		CategoryLabel:     d.Labels.Category(it.Category),
		SubCategoryLabels: d.Labels.SubCategoryList(it.SubCategory),
		Tags:              append([]string(nil), it.Tags...),
		Description:       it.Description,
		Date:              it.Date(),
	}
}

func videoList(it Item) []string {
	out := make([]string, 0, len(it.VideoURLs)+1)
	if it.VideoURL != "" {
		out = append(out, it.VideoURL)
	}
	return append(out, it.VideoURLs...)
}

func capImages(images []string, limit int) []string {
	if len(images) > limit {
		images = images[:limit]
	}
	return append([]string(nil), images...)
}
